package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/core/pipeline"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/ui/modal"
	"github.com/dingolabs/dingo/internal/ui/tui"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"console"},
	Short:   "Open the interactive console",
	Long: `Open the interactive console.

Pick an operation from the menu, fill in its form and submit it to the
backend. Results open in a scrollable panel and can be copied with "c".
Edits to the config file apply new console timings while it runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := newClient(cfg)

		// The console owns the terminal; log lines would corrupt the screen.
		restore := observability.DetachCLILogger()
		defer restore()

		return tui.Run(cmd.Context(), consoleOptions(cfg, client), viper.GetViper())
	},
}

func init() {
	uiCmd.Flags().Bool("stack-modals", false, "keep earlier forms open behind a newly opened one")
	_ = viper.BindPFlag("ui.stack_modals", uiCmd.Flags().Lookup("stack-modals"))
	rootCmd.AddCommand(uiCmd)
}

func consoleOptions(cfg *config.Config, client *api.Client) tui.Options {
	policy := modal.StackPolicyReplace
	if cfg.UI.StackModals {
		policy = modal.StackPolicyLegacy
	}
	return tui.Options{
		Pipeline:      pipeline.New(client),
		Prober:        client,
		Policy:        policy,
		Timings:       tui.TimingsFrom(cfg.UI),
		MarkdownStyle: cfg.UI.MarkdownStyle,
	}
}
