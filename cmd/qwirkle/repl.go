package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chzyer/readline"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/qwirkleio/qwirkle/game"
	"github.com/qwirkleio/qwirkle/internal/transcript"
	"github.com/qwirkleio/qwirkle/move"
	"github.com/qwirkleio/qwirkle/movegen"
)

// runRepl starts an interactive line-based session against a single
// local GameState: play/swap/board/hand/score/hint/quit.
func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "game seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rl, err := readline.New("qwirkle> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	g := game.NewGame(*seed)
	fmt.Fprintln(rl.Stdout(), "new game started; type 'help' for commands")

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}
		fields, err := shellquote.Split(line)
		if err != nil || len(fields) == 0 {
			continue
		}
		if !handleReplCommand(rl, g, fields) {
			return nil
		}
	}
}

func handleReplCommand(rl *readline.Instance, g *game.GameState, fields []string) bool {
	out := rl.Stdout()
	switch fields[0] {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(out, "commands: play <row> <col> <slot>..., swap <slot>..., hint, board, hand, score, save <path>, load <path>, quit")
	case "board":
		fmt.Fprintln(out, g.Board())
	case "hand":
		fmt.Fprintln(out, g.CurrentHand().TilesUnsafe())
	case "score":
		fmt.Fprintln(out, g.Scores())
	case "hint":
		moves := movegen.GenerateAllMoves(g.Board(), g.CurrentHand().TilesUnsafe())
		if len(moves) == 0 {
			fmt.Fprintln(out, "no legal move")
			break
		}
		fmt.Fprintln(out, moves[0])
	case "play":
		if err := replPlay(g, fields[1:]); err != nil {
			fmt.Fprintln(out, "error:", err)
			break
		}
		fmt.Fprintln(out, "ok; current player:", g.CurrentPlayer())
	case "swap":
		if !replSwap(g, fields[1:]) {
			fmt.Fprintln(out, "Cannot swap tiles")
			break
		}
		fmt.Fprintln(out, "ok; current player:", g.CurrentPlayer())
	case "save":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: save <path>")
			break
		}
		if err := replSave(g, fields[1]); err != nil {
			fmt.Fprintln(out, "error:", err)
			break
		}
		fmt.Fprintln(out, "saved", len(g.History()), "moves to", fields[1])
	case "load":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: load <path>")
			break
		}
		history, err := replLoad(fields[1])
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			break
		}
		fmt.Fprintln(out, "transcript contains", len(history), "moves")
		for _, rec := range history {
			fmt.Fprintln(out, rec)
		}
	default:
		fmt.Fprintln(out, "unknown command:", fields[0])
	}
	return true
}

// replPlay parses "<row> <col> <slot> [<row> <col> <slot> ...]" triples.
func replPlay(g *game.GameState, args []string) error {
	if len(args)%3 != 0 || len(args) == 0 {
		return fmt.Errorf("play takes triples of row col slot")
	}
	hand := g.CurrentHand().TilesUnsafe()
	var placements []move.Placement
	for i := 0; i < len(args); i += 3 {
		row, err := strconv.Atoi(args[i])
		if err != nil {
			return err
		}
		col, err := strconv.Atoi(args[i+1])
		if err != nil {
			return err
		}
		slot, err := strconv.Atoi(args[i+2])
		if err != nil {
			return err
		}
		if slot < 1 || slot > len(hand) {
			return fmt.Errorf("slot %d out of range", slot)
		}
		placements = append(placements, move.Placement{
			Pos: move.Position{Row: row, Col: col}, Tile: hand[slot-1],
		})
	}
	_, err := g.PlayTiles(placements)
	return err
}

// replSave writes the game's move history to path in the
// line-oriented transcript format.
func replSave(g *game.GameState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return transcript.Write(f, g.History())
}

// replLoad parses a transcript file back into its move records, for
// inspecting a saved game without replaying it into a live GameState.
func replLoad(path string) ([]game.MoveRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return transcript.Read(f)
}

func replSwap(g *game.GameState, args []string) bool {
	indices := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return false
		}
		indices = append(indices, n-1)
	}
	return g.SwapTiles(indices)
}
