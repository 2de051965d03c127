package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"presskit/config"
	"presskit/events"
	"presskit/logger"

	"github.com/spf13/cobra"
)

// ErrNoBrokers is returned when the event tail has nothing to connect to.
var ErrNoBrokers = errors.New("no kafka brokers configured (set KAFKA_BROKERS or kafka.brokers)")

func newEventsCommand(opts *options) *cobra.Command {
	var brokers []string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail gateway run events from Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if len(brokers) > 0 {
				cfg.Kafka.Brokers = brokers
			}
			if len(cfg.Kafka.Brokers) == 0 {
				return ErrNoBrokers
			}

			log, err := logger.FromEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			out := cmd.OutOrStdout()
			consumer, err := events.NewConsumer(cfg.Kafka, func(_ context.Context, ev events.Event) error {
				return printEvent(out, ev)
			}, log)
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Run(cmd.Context())
		},
	}

	cmd.Flags().StringSliceVar(&brokers, "brokers", nil, "Kafka brokers (default from KAFKA_BROKERS or config)")

	return cmd
}

// printEvent writes one line per forwarded request
func printEvent(w io.Writer, ev events.Event) error {
	outcome := "ok"
	switch {
	case ev.Error != "":
		outcome = "error: " + ev.Error
	case ev.DecodeFallback:
		outcome = "non-JSON body"
	case !ev.OK:
		outcome = "not ok"
	}

	status := "---"
	if ev.StatusCode != 0 {
		status = fmt.Sprintf("%d", ev.StatusCode)
	}

	_, err := fmt.Fprintf(w, "%s  %s  %s  %6dms  %s\n",
		ev.At.Local().Format("15:04:05"), ev.RequestID, status, ev.DurationMS, outcome)
	return err
}
