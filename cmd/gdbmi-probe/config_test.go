package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultProbeConfig(t *testing.T) {
	cfg := defaultProbeConfig()
	assert.Equal(t, "gdb", cfg.GDBPath)
	assert.False(t, cfg.Verbose)
}
