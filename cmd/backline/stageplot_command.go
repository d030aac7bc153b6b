package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/fileutil"
	"backline/internal/icons"
	"backline/internal/logging"
	"backline/internal/notifications"
	"backline/internal/scene"
	"backline/internal/stage"
	"backline/internal/textutil"
)

func newStagePlotCommand(ctx *commandContext) *cobra.Command {
	var format, outPath string
	var scale float64

	cmd := &cobra.Command{
		Use:   "stageplot",
		Short: "Render the stage plot as SVG or PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "svg" && format != "png" {
				return fmt.Errorf("unsupported format %q (use svg or png)", format)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				runCtx := commandCtx(cmd)
				snap, err := repo.Snapshot(runCtx)
				if err != nil {
					return err
				}
				set, err := icons.LoadSet(runCtx, icons.NewFetcher(cfg.Paths.IconDir), ctx.log())
				if err != nil {
					return err
				}
				sc := stage.Layout(snap, set, stage.OptionsFromConfig(cfg))
				render := func(w io.Writer) error {
					if format == "png" {
						return scene.RenderPNG(w, sc, scale)
					}
					return scene.RenderSVG(w, sc)
				}

				if outPath == "-" {
					return render(cmd.OutOrStdout())
				}
				target := strings.TrimSpace(outPath)
				if target == "" {
					slug := textutil.SanitizeFileName(strings.ToLower(cfg.Band.Name), "band")
					target = filepath.Join(cfg.Paths.OutputDir, slug+"-stage."+format)
				}
				if err := fileutil.WriteAtomic(target, 0o644, render); err != nil {
					return fmt.Errorf("write stage plot: %w", err)
				}
				notifier := notifications.NewService(cfg)
				if err := notifier.Publish(runCtx, notifications.EventStagePlotSaved, notifications.Payload{"path": target}); err != nil {
					ctx.log().Debug("notification failed", logging.Error(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stage plot written to %s\n", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Output format (svg or png)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (- for stdout); defaults to the output directory")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG pixels per view unit")
	return cmd
}
