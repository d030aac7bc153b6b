package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/config"
	"backline/internal/equipment"
	"backline/internal/notifications"
	"backline/internal/rider"
)

func newRiderCommand(ctx *commandContext) *cobra.Command {
	riderCmd := &cobra.Command{
		Use:   "rider",
		Short: "Technical rider documents",
	}
	riderCmd.AddCommand(newRiderExportCommand(ctx))
	return riderCmd
}

func newRiderExportCommand(ctx *commandContext) *cobra.Command {
	var noOpen bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate the rider and open it for printing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.OutputDir
			if trimmed := strings.TrimSpace(outDir); trimmed != "" {
				if dir, err = config.ExpandPath(trimmed); err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
			}
			deliverer := riderDeliverer(ctx, cfg, dir, cfg.Rider.OpenAfterExport && !noOpen)

			return ctx.withRepository(func(repo *equipment.Repository) error {
				exporter := rider.NewExporter(cfg, repo, deliverer, notifications.NewService(cfg), ctx.log())
				res, err := exporter.Export(commandCtx(cmd))
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"path":          res.Delivery.Path,
						"opened":        res.Delivery.Opened,
						"pages":         res.Document.Pages,
						"summary":       res.Summary,
						"correlationId": res.CorrelationID,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Rider written to %s (%d pages, %d channels)\n", res.Delivery.Path, res.Document.Pages, res.Summary.Channels)
				if res.Delivery.Opened {
					fmt.Fprintln(out, "Opened in the browser for printing")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "Only save the rider; do not open it for printing")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for the rider file; defaults to the output directory")
	return cmd
}

// riderDeliverer saves into dir and, when open is set, also hands a print
// surface under dir/.surfaces to the browser.
func riderDeliverer(ctx *commandContext, cfg *config.Config, dir string, open bool) rider.Deliverer {
	save := rider.FileDeliverer{Dir: dir}
	if !open {
		return save
	}
	return rider.Chain{
		save,
		rider.BrowserDeliverer{
			Dir:     filepath.Join(dir, ".surfaces"),
			Timeout: cfg.SurfaceTimeout(),
			Opener:  rider.OpenerCommand(cfg.Rider.Opener),
			Logger:  ctx.log(),
		},
	}
}
