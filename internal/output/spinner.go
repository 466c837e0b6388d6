package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// RunWithSpinner executes action while drawing a spinner on stderr.
// Without a terminal the action simply runs. Returns the action's error.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	spinnerErr := spinner.New().
		Title(cfg.title).
		Action(func() {
			select {
			case <-ctx.Done():
			case err := <-errCh:
				errCh <- err
			}
		}).
		Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
