package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/engine"
	"github.com/refka/mediatray/internal/format"
)

var (
	notificationsFormat   string
	notificationsInterval float64
)

// notificationsCmd represents the notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Watch in-app notifications as they arrive",
	Long: `Watch in-app notifications as they arrive.

Connects to the change feed and prints one notification per new item
event, until interrupted.

USAGE:
    mediatray notifications [OPTIONS]

OPTIONS:
    --format=<format>  Output format: simple (default), table, compact, json
    --interval <secs>  Poll interval (default: 1)
    -h, --help         Show this help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cleanup, err := newEngine()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := eng.Start(cmd.Context()); err != nil {
			return err
		}

		interval := time.Duration(notificationsInterval * float64(time.Second))
		return WatchNotifications(cmd.Context(), eng, os.Stdout, interval, nil)
	},
}

// WatchNotifications polls the notification list and prints entries it has
// not shown yet, until interrupted (Ctrl+C) or the context is cancelled.
// A non-nil tick channel replaces the internal ticker.
func WatchNotifications(ctx context.Context, eng *engine.Engine, w io.Writer, interval time.Duration, tickChan <-chan time.Time) error {
	if interval <= 0 {
		interval = time.Second
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	colors.Info("Watching for notifications (Ctrl+C to stop)...")

	formatter := format.GetFormatter(notificationsFormat)
	seen := make(map[string]bool)

	if tickChan == nil {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tickChan = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nStopping...")
			return nil
		case <-tickChan:
			// List is newest first; print backlog oldest first.
			list := eng.Notifications()
			for i := len(list) - 1; i >= 0; i-- {
				n := list[i]
				if seen[n.ID] {
					continue
				}
				seen[n.ID] = true
				if err := formatter.FormatNotifications(list[i:i+1], w); err != nil {
					return err
				}
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(notificationsCmd)

	notificationsCmd.Flags().StringVar(&notificationsFormat, "format", "simple", "Output format: simple (default), table, compact, json")
	notificationsCmd.Flags().Float64Var(&notificationsInterval, "interval", 1.0, "Poll interval in seconds (default: 1)")
}
