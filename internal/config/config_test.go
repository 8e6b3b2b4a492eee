package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwirkleio/qwirkle/internal/config"
)

func TestDefaultsMatchLoadOnEmptyEnvironment(t *testing.T) {
	assert.Equal(t, config.Defaults(), config.Load())
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	os.Setenv("QWIRKLE_LISTEN_ADDR", ":9999")
	os.Setenv("QWIRKLE_DEFAULT_SEED", "42")
	os.Setenv("QWIRKLE_SOLVER_STRATEGY", "weighted")
	defer func() {
		os.Unsetenv("QWIRKLE_LISTEN_ADDR")
		os.Unsetenv("QWIRKLE_DEFAULT_SEED")
		os.Unsetenv("QWIRKLE_SOLVER_STRATEGY")
	}()

	c := config.Load()
	assert.Equal(t, ":9999", c.ListenAddr)
	assert.Equal(t, int64(42), c.DefaultSeed)
	assert.Equal(t, "weighted", c.SolverStrategy)
}
