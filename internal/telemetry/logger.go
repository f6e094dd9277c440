// Package telemetry wires the core simulator's callback-based
// warning/error channels into go.uber.org/zap and
// prometheus/client_golang. Nothing in network, rate, ssa, sampler or
// rng imports this package or its dependencies directly — callers
// construct a Logger and a Metrics here, then pass
// network.Network.SetWarnFunc a closure built from them (spec.md
// SPEC_FULL §4.10).
package telemetry

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a development (console, debug-level) logger when
// verbose is true, or a production JSON logger otherwise, the same
// split the reference corpus's logging package makes on its
// "console"/"json" format switch.
func NewLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("telemetry: build logger: %w", err)
	}
	return logger, nil
}
