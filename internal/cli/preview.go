package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/oadl/heatsheet/pkg/pipeline"
)

// previewCommand creates the preview command, an interactive terminal
// view of a drawn payload.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		configFile string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "preview [payload]",
		Short: "Browse a results payload interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], configFile, noCache)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, input, configFile string, noCache bool) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	raw, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return err
	}

	result, err := runner.DrawRaw(cmd.Context(), raw, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewPreviewModel(result.Tree))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
