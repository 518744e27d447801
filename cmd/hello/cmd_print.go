package main

import (
	"context"
	"fmt"

	"hellonerd/cmd/hello/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	printStyle string
	printWidth int
)

// printCmd renders the settled page without a terminal program
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Fetch the message once and print the rendered page",
	Long: `Mounts the hello page without the interactive program: the request is
made once, the page settles to the message or "Error: <description>", and
the result is rendered as markdown to stdout.

Both outcomes exit 0; only configuration problems fail the command.`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().StringVar(&printStyle, "style", "auto", "Render style: auto, dark, light or notty")
	printCmd.Flags().IntVar(&printWidth, "width", 80, "Word wrap width")
}

func runPrint(cmd *cobra.Command, args []string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(printStyle, printWidth)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Debug("fetching", zap.String("url", client.URL()))
	page := ui.NewHelloPageModel(ctx, client, ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)), ui.PageOptions{
		Heading: cfg.UI.Heading,
		Label:   cfg.UI.Label,
	}).Settle()
	logger.Debug("settled",
		zap.Stringer("phase", page.State().Phase()),
		zap.Int64("requests", client.CallCount()),
	)

	out, err := renderer.Render(ui.Markdown(page.Heading(), page.Label(), page.State()))
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
