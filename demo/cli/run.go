package cli

import (
	"errors"
	"fmt"
	"io"

	"presskit/logger"
	"presskit/runner"

	"github.com/spf13/cobra"
)

// ErrRunFailed is returned when a headless run ends in the failed state.
var ErrRunFailed = errors.New("run failed")

func newRunCommand(opts *options) *cobra.Command {
	var guidance string

	cmd := &cobra.Command{
		Use:   "run <video-url>",
		Short: "Generate a press release without the interactive UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.FromEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctrl, _, err := opts.controller(log)
			if err != nil {
				return err
			}

			url := ""
			if len(args) == 1 {
				url = args[0]
			}

			snap, err := ctrl.Submit(cmd.Context(), url, guidance)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), snap)
		},
	}

	cmd.Flags().StringVarP(&guidance, "prompt", "p", "", "Optional guidance for tone, audience or key points")

	return cmd
}

// printResult writes headlines then the document, or the failure message.
func printResult(w io.Writer, snap runner.Snapshot) error {
	if snap.Status == runner.StatusFailed {
		fmt.Fprintln(w, snap.Message)
		return fmt.Errorf("%w: %s", ErrRunFailed, snap.Failure)
	}

	fmt.Fprintln(w, "Suggested Headlines")
	for i, t := range snap.Titles {
		fmt.Fprintf(w, "  %d. %s\n", i+1, t)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Release")
	fmt.Fprintln(w, snap.Document)
	return nil
}
