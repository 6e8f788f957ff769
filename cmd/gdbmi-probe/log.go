package main

import "go.uber.org/zap"

// newLogger builds the probe's logger, grounded on the teacher repo's
// createLogger in cmd/cli/root.go: development mode for verbose runs,
// production (JSON, sampled) otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
