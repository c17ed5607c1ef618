package skyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults_AreValid(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}

func TestConfig_ValidateRejectsBadStagnationThreshold(t *testing.T) {
	cfg := Defaults()
	cfg.StagnationThreshold = 0
	err := cfg.Validate()
	assert.ErrorAs(t, err, &ErrInvalidConfig{})
}

func TestConfig_ValidateRejectsUnknownMode(t *testing.T) {
	cfg := Defaults()
	cfg.Modes = []string{"A", "Z"}
	err := cfg.Validate()
	assert.ErrorAs(t, err, &ErrInvalidConfig{})
}

func TestConfig_ValidateRejectsEmptyModes(t *testing.T) {
	cfg := Defaults()
	cfg.Modes = nil
	err := cfg.Validate()
	assert.ErrorAs(t, err, &ErrInvalidConfig{})
}
