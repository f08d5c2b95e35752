package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/rbacmatcher/orgchart/cmd/orgchart/internal/cfg"
)

const spinnerInterval = 100 * time.Millisecond

// TimedSpinner displays a spinner with the title on w until the stop function
// is called.  The spinner is cleared on stop.  In debug mode, there's no
// spinner, as it would garble the log output.
func TimedSpinner(ctx context.Context, w io.Writer, title string) (stop func()) {
	if cfg.Log.Enabled(ctx, slog.LevelDebug) {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		bar := progressbar.NewOptions(
			-1,
			progressbar.OptionSetDescription(title),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWriter(w),
			progressbar.OptionClearOnFinish(),
		)
		_ = bar.RenderBlank()
		t := time.NewTicker(spinnerInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = bar.Finish()
				return
			case <-t.C:
				_ = bar.Add(1)
			}
		}
	}()
	return func() {
		cancel()
		<-finished
	}
}
