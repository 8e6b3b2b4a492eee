// Package transcript exports and re-imports a game's move history as
// a line-oriented text format, one record per line, in the spirit of
// the line-token transcripts used elsewhere in this ecosystem (a
// leading marker selects the record type, regex-parsed fields follow).
package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/tile"
)

var (
	// ErrMalformedLine is returned when a transcript line matches
	// neither the play nor the swap record pattern.
	ErrMalformedLine = errors.New("transcript: malformed line")
)

// playRegex matches: >0: (0,0)CIR,(0,1)SQR +2
// player, then comma-separated (row,col)ShapeColor placements, then score.
var playRegex = regexp.MustCompile(`^>(?P<player>[01]):\s+(?P<placements>\S+)\s+\+(?P<score>\d+)$`)

// swapRegex matches: >0: swap 3
var swapRegex = regexp.MustCompile(`^>(?P<player>[01]):\s+swap\s+(?P<count>\d+)$`)

var placementRegex = regexp.MustCompile(`\((?P<row>-?\d+),(?P<col>-?\d+)\)(?P<shape>[A-Za-z]{2})(?P<color>[A-Za-z])`)

var shapeCodes = map[string]tile.Shape{
	"CI": tile.Circle, "SQ": tile.Square, "DI": tile.Diamond,
	"CL": tile.Clover, "ST": tile.Star, "SB": tile.Starburst,
}
var shapeNamesByValue = map[tile.Shape]string{
	tile.Circle: "CI", tile.Square: "SQ", tile.Diamond: "DI",
	tile.Clover: "CL", tile.Star: "ST", tile.Starburst: "SB",
}

var colorCodes = map[string]tile.Color{
	"R": tile.Red, "O": tile.Orange, "Y": tile.Yellow,
	"G": tile.Green, "B": tile.Blue, "P": tile.Purple,
}
var colorNamesByValue = map[tile.Color]string{
	tile.Red: "R", tile.Orange: "O", tile.Yellow: "Y",
	tile.Green: "G", tile.Blue: "B", tile.Purple: "P",
}

// Write serializes history as one line per MoveRecord.
func Write(w io.Writer, history []game.MoveRecord) error {
	bw := bufio.NewWriter(w)
	for _, rec := range history {
		line, err := formatRecord(rec)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatRecord(rec game.MoveRecord) (string, error) {
	if rec.Swap {
		return fmt.Sprintf(">%d: swap %d", rec.Player, rec.SwapCount), nil
	}
	parts := make([]string, len(rec.Placements))
	for i, p := range rec.Placements {
		shape, ok := shapeNamesByValue[p.Tile.Shape]
		if !ok {
			return "", fmt.Errorf("transcript: unknown shape %v", p.Tile.Shape)
		}
		color, ok := colorNamesByValue[p.Tile.Color]
		if !ok {
			return "", fmt.Errorf("transcript: unknown color %v", p.Tile.Color)
		}
		parts[i] = fmt.Sprintf("(%d,%d)%s%s", p.Pos.Row, p.Pos.Col, shape, color)
	}
	return fmt.Sprintf(">%d: %s +%d", rec.Player, strings.Join(parts, ","), rec.Score), nil
}

// Read parses a transcript written by Write back into MoveRecords.
func Read(r io.Reader) ([]game.MoveRecord, error) {
	var history []game.MoveRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		history = append(history, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func parseLine(line string) (game.MoveRecord, error) {
	if m := swapRegex.FindStringSubmatch(line); m != nil {
		player, _ := strconv.Atoi(m[1])
		count, _ := strconv.Atoi(m[2])
		return game.MoveRecord{Player: player, Swap: true, SwapCount: count}, nil
	}
	m := playRegex.FindStringSubmatch(line)
	if m == nil {
		return game.MoveRecord{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	player, _ := strconv.Atoi(m[1])
	score, _ := strconv.Atoi(m[3])

	var placements []move.Placement
	for _, pm := range placementRegex.FindAllStringSubmatch(m[2], -1) {
		row, _ := strconv.Atoi(pm[1])
		col, _ := strconv.Atoi(pm[2])
		shape, ok := shapeCodes[strings.ToUpper(pm[3])]
		if !ok {
			return game.MoveRecord{}, fmt.Errorf("%w: unknown shape code in %q", ErrMalformedLine, line)
		}
		color, ok := colorCodes[strings.ToUpper(pm[4])]
		if !ok {
			return game.MoveRecord{}, fmt.Errorf("%w: unknown color code in %q", ErrMalformedLine, line)
		}
		placements = append(placements, move.Placement{
			Pos:  move.Position{Row: row, Col: col},
			Tile: tile.New(shape, color),
		})
	}
	if len(placements) == 0 {
		return game.MoveRecord{}, fmt.Errorf("%w: no placements in %q", ErrMalformedLine, line)
	}
	return game.MoveRecord{Player: player, Placements: placements, Score: score}, nil
}
