// Package notify publishes game-move events to NATS so other services
// (spectator UIs, logging pipelines) can follow a game without polling
// the session API.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avast/retry-go"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// MoveEvent is the payload published on a game's subject after every
// successful play or swap.
type MoveEvent struct {
	GameID    string `json:"game_id"`
	Player    int    `json:"player"`
	Swap      bool   `json:"swap"`
	SwapCount int    `json:"swap_count,omitempty"`
	Score     int    `json:"score"`
}

// Bus publishes MoveEvents. A nil *Bus is valid and publishes
// nothing, so callers can wire notification in only when configured.
type Bus struct {
	conn *nats.Conn
}

// Connect dials url (e.g. "nats://localhost:4222"). Pass an empty url
// to get a no-op Bus.
func Connect(url string) (*Bus, error) {
	if url == "" {
		return &Bus{}, nil
	}
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %q: %w", url, err)
	}
	return &Bus{conn: conn}, nil
}

// Close releases the underlying connection, if any.
func (b *Bus) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// subject returns the per-game subject moves are published on.
func subject(gameID string) string {
	return fmt.Sprintf("game.%s.moved", gameID)
}

// Publish sends event on the game's subject, making up to 3 attempts in
// all on publish failures. A nil or unconnected Bus is a no-op.
func (b *Bus) Publish(ctx context.Context, gameID string, event MoveEvent) error {
	if b == nil || b.conn == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling move event: %w", err)
	}

	return retry.Do(
		func() error { return b.conn.Publish(subject(gameID), payload) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Str("game_id", gameID).Uint("attempt", n).Msg("nats publish retry")
		}),
	)
}
