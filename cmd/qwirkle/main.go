// Command qwirkle runs the Qwirkle engine's HTTP server, batch
// simulator, or an interactive REPL, chosen by subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: qwirkle <serve|simulate|repl> [flags]")
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Msg("qwirkle: command failed")
		os.Exit(1)
	}
}
