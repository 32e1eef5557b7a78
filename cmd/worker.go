package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ananeya/asset-management-system/internal/core/events"
	"github.com/Ananeya/asset-management-system/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker processes",
	Long:  `Start and manage background workers like the notification worker.`,
}

// Notification worker command
var notificationWorkerCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Start the notification worker",
	Long:  `Subscribe to item lifecycle events and emit notifications`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotificationWorker()
	},
}

// registerNotificationHandlers wires the item lifecycle subscribers onto the
// bus. Notifications are log-only for now; a mail or chat sink would hang off
// the same subscriptions.
func registerNotificationHandlers(bus *events.EventBus, lg *slog.Logger) {
	notify := func(message string) events.Handler {
		return func(ctx context.Context, event events.Event) error {
			lg.Info(message,
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		}
	}

	bus.Subscribe(events.EventItemAssigned, notify("item assigned notification"))
	bus.Subscribe(events.EventItemReassigned, notify("item reassigned notification"))
	bus.Subscribe(events.EventIssueReported, notify("issue reported notification"))
}

func startNotificationWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	eventBus := events.NewEventBus(lg)
	registerNotificationHandlers(eventBus, lg)

	lg.Info("notification worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down notification worker", "signal", sig)
	lg.Info("notification worker shutdown complete")
}

func init() {
	workerCmd.AddCommand(notificationWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
