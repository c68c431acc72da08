package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered during tests so they can be
// invoked by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores the hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
