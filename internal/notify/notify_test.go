package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwirkleio/qwirkle/internal/notify"
)

func TestConnectWithEmptyURLIsNoOp(t *testing.T) {
	b, err := notify.Connect("")
	require.NoError(t, err)

	err = b.Publish(context.Background(), "game-1", notify.MoveEvent{Player: 0, Score: 3})
	assert.NoError(t, err)
	b.Close()
}

func TestNilBusPublishIsNoOp(t *testing.T) {
	var b *notify.Bus
	err := b.Publish(context.Background(), "game-1", notify.MoveEvent{})
	assert.NoError(t, err)
	b.Close()
}

func TestConnectToUnreachableServerFails(t *testing.T) {
	_, err := notify.Connect("nats://127.0.0.1:1")
	assert.Error(t, err)
}
