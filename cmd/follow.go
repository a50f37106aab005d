package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/refka/mediatray/internal/backend"
	"github.com/refka/mediatray/internal/colors"
	"github.com/refka/mediatray/internal/domain"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Monitor the change feed in real-time",
	Long: `Monitor the change feed in real-time.

Prints every insert and update event as it arrives, until interrupted.

USAGE:
    mediatray follow`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newBackendClient()
		if err != nil {
			return err
		}
		return Follow(cmd.Context(), client, os.Stdout)
	},
}

// Follow streams change events to the writer until interrupted (Ctrl+C) or
// the context is cancelled.
func Follow(ctx context.Context, client backend.Client, w io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := client.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	colors.Info("Monitoring the change feed (Ctrl+C to stop)...")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nStopping...")
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				fmt.Fprintln(w, "Change feed closed")
				return nil
			}
			printEvent(event, w)
		}
	}
}

// printEvent prints a single change event with formatting.
func printEvent(event domain.RemoteEvent, w io.Writer) {
	reset := colors.Reset
	switch event.Type {
	case domain.EventInserted:
		fmt.Fprintf(w, "%s[inserted]%s %s  %s (%s)\n", colors.Green, reset,
			event.Item.ID, event.Item.Title, event.Item.Category)
	case domain.EventUpdated:
		fields := make([]string, 0, len(event.Fields))
		for field := range event.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		fmt.Fprintf(w, "%s[updated]%s  %s  fields=%v\n", colors.Cyan, reset, event.ID, fields)
	default:
		fmt.Fprintf(w, "[%s] %s\n", event.Type, event.ID)
	}
}

func init() {
	rootCmd.AddCommand(followCmd)
}
