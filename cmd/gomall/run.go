package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run drives the fx application until the context is cancelled or the app
// requests its own shutdown.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}
