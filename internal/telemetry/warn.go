package telemetry

import (
	"go.uber.org/zap"

	"github.com/deep6ix/gillespie/network"
)

// WarnFunc adapts a *zap.Logger into a network.WarnFunc, so
// network.Network.SetWarnFunc(telemetry.WarnFunc(logger)) is all the
// wiring cmd/gillespie needs to log §7.3/§7.4 warnings.
func WarnFunc(logger *zap.Logger) network.WarnFunc {
	return func(w network.Warning) {
		logger.Warn(w.String(), zap.Int("warning_kind", int(w.Kind)))
	}
}
