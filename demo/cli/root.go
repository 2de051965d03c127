package cli

import (
	"fmt"

	"presskit/client"
	"presskit/config"
	"presskit/demo/tui"
	"presskit/logger"
	"presskit/runner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the flags shared by every command
type options struct {
	gatewayURL string
	configPath string
}

// NewRootCommand creates the root command. Without a subcommand it opens
// the interactive terminal UI.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "presskit",
		Short: "Turn a YouTube video into a press release",
		Long: `presskit sends a video URL and optional guidance to the gateway and
shows the generated press release with suggested headlines.

Examples:
  presskit                                        # interactive UI
  presskit run https://youtu.be/VIDEO_ID
  presskit run https://youtu.be/VIDEO_ID --prompt "upbeat, for investors"
  presskit --gateway http://gateway:8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log output would tear the full-screen UI.
			ctrl, gatewayURL, err := opts.controller(logger.Nop())
			if err != nil {
				return err
			}

			m, unsubscribe := tui.NewModel(ctrl, gatewayURL)
			defer unsubscribe()

			program := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("error running program: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.gatewayURL, "gateway", "", "Gateway base URL (default from GATEWAY_URL or config)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")

	cmd.AddCommand(newRunCommand(opts), newEventsCommand(opts))

	return cmd
}

// controller builds a run controller talking to the configured gateway
func (o *options) controller(log *zap.SugaredLogger) (*runner.Controller, string, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, "", err
	}

	gatewayURL := o.gatewayURL
	if gatewayURL == "" {
		gatewayURL = cfg.GatewayURL
	}

	gc := client.NewGatewayClient(gatewayURL)
	return runner.NewController(gc, log), gc.BaseURL(), nil
}
