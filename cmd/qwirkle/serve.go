package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/estimator"
	"github.com/qwirkleio/qwirkle/internal/config"
	"github.com/qwirkleio/qwirkle/internal/notify"
	"github.com/qwirkleio/qwirkle/session"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address, e.g. localhost:8080")
	natsURL := fs.String("nats-url", "", "NATS server URL for move notifications, e.g. nats://localhost:4222")
	configPath := fs.String("config", "", "optional YAML config file, e.g. config.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadFile(*configPath)
	if *addr == "" {
		*addr = cfg.ListenAddr
	}
	if *natsURL != "" {
		cfg.NATSURL = *natsURL
	}

	bus, err := notify.Connect(cfg.NATSURL)
	if err != nil {
		return err
	}
	defer bus.Close()

	est, err := buildEstimator(cfg)
	if err != nil {
		return err
	}
	srv := session.NewServer(est, bus)

	scriptSource, err := loadScript(cfg.ScriptPath)
	if err != nil {
		return err
	}
	srv.SetDefaultStrategy(cfg.SolverStrategy, scriptSource)

	log.Info().Str("addr", *addr).Str("solver_strategy", cfg.SolverStrategy).Msg("qwirkle: serving")
	return http.ListenAndServe(*addr, srv.Mux())
}

// buildEstimator selects estimator.Remote when cfg.LambdaFunctionName
// is configured, per SPEC_FULL.md's "selected via config, never by
// default" rule; otherwise it builds the local Parallel estimator.
func buildEstimator(cfg config.Config) (estimator.Estimator, error) {
	if cfg.LambdaFunctionName == "" {
		return estimator.NewParallel(cfg.EstimatorSimulations), nil
	}
	remote, err := estimator.NewRemote(context.Background(), cfg.LambdaFunctionName, cfg.EstimatorSimulations)
	if err != nil {
		return nil, fmt.Errorf("building remote estimator: %w", err)
	}
	return remote, nil
}

// loadScript reads a Lua script file for the "scripted" solver
// strategy. An empty path is not an error; it just leaves scripted
// games falling back to greedy, per solver.SolverByNameWithScript.
func loadScript(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script file %q: %w", path, err)
	}
	return string(data), nil
}
