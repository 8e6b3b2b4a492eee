// Package config centralizes the knobs that vary between a local dev
// run, a test run, and a production deployment: listen address,
// default RNG seed, estimator playout count, and the optional
// NATS/Lambda integrations.
package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every externally-tunable setting. Zero values are
// deliberately chosen to be safe defaults.
type Config struct {
	// ListenAddr is the address cmd/qwirkle serve binds to.
	ListenAddr string

	// DefaultSeed is loaded from QWIRKLE_DEFAULT_SEED or the config
	// file. No entry point reads it: new games take their seed from the
	// request, and 0 there derives one from the current time.
	DefaultSeed int64

	// EstimatorSimulations is the Monte Carlo playout count per
	// win-probability request.
	EstimatorSimulations int

	// LogLevel is a zerolog level name (e.g. "debug", "info", "warn").
	// It is loaded but not applied; cmd/qwirkle fixes the level at info.
	LogLevel string

	// NATSURL, when non-empty, enables move-notification publishing.
	NATSURL string

	// LambdaFunctionName, when non-empty, routes win-probability
	// estimation to estimator.Remote instead of estimator.Parallel.
	LambdaFunctionName string

	// SolverStrategy names the default AI strategy ("greedy",
	// "random", "weighted", "scripted").
	SolverStrategy string

	// ScriptPath is the Lua source file for the "scripted" strategy.
	ScriptPath string
}

// Defaults returns a Config with the same values Load would produce
// from an empty environment.
func Defaults() Config {
	return Config{
		ListenAddr:           ":8080",
		DefaultSeed:          0,
		EstimatorSimulations: 400,
		LogLevel:             "info",
		SolverStrategy:       "greedy",
	}
}

// Load builds a Config from environment variables prefixed QWIRKLE_
// (e.g. QWIRKLE_LISTEN_ADDR), falling back to Defaults for anything
// unset.
func Load() Config {
	return LoadFile("")
}

// LoadFile behaves like Load, additionally merging a YAML config file
// at path if non-empty; file values lose to environment variables,
// matching viper's usual precedence.
func LoadFile(path string) Config {
	d := Defaults()

	v := viper.New()
	v.SetEnvPrefix("qwirkle")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: failed reading file, using defaults/env only")
		}
	}

	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("default_seed", d.DefaultSeed)
	v.SetDefault("estimator_simulations", d.EstimatorSimulations)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("solver_strategy", d.SolverStrategy)
	v.SetDefault("nats_url", d.NATSURL)
	v.SetDefault("lambda_function_name", d.LambdaFunctionName)
	v.SetDefault("script_path", d.ScriptPath)

	return Config{
		ListenAddr:           v.GetString("listen_addr"),
		DefaultSeed:          v.GetInt64("default_seed"),
		EstimatorSimulations: v.GetInt("estimator_simulations"),
		LogLevel:             v.GetString("log_level"),
		NATSURL:              v.GetString("nats_url"),
		LambdaFunctionName:   v.GetString("lambda_function_name"),
		SolverStrategy:       v.GetString("solver_strategy"),
		ScriptPath:           v.GetString("script_path"),
	}
}
