package observability

import (
	"log/slog"

	"github.com/aretw0/hfsm/pkg/domain"
)

// LoggingHooks logs transitions at Info and state entries and exits at Debug.
func LoggingHooks(logger *slog.Logger) domain.Hooks {
	attrs := func(e *domain.MachineEvent) []any {
		return []any{"machine", e.MachineName, "state", e.StateName, "tick", e.Tick}
	}
	return domain.Hooks{
		OnEnter: func(e *domain.MachineEvent) {
			logger.Debug("state_enter", attrs(e)...)
		},
		OnExit: func(e *domain.MachineEvent) {
			logger.Debug("state_exit", attrs(e)...)
		},
		OnTransition: func(e *domain.MachineEvent) {
			logger.Info("transition",
				"machine", e.MachineName,
				"from", e.FromName,
				"to", e.StateName,
				"transition", e.TransitionName,
				"tick", e.Tick,
			)
		},
	}
}
