package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/fileutil"
	"backline/internal/logging"
	"backline/internal/notifications"
)

func newSnapshotCommand(ctx *commandContext) *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or import the whole inventory as YAML",
	}
	snapshotCmd.AddCommand(newSnapshotExportCommand(ctx))
	snapshotCmd.AddCommand(newSnapshotImportCommand(ctx))
	return snapshotCmd
}

func newSnapshotExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory to a YAML document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				runCtx := commandCtx(cmd)
				target := strings.TrimSpace(outPath)
				if target == "" || target == "-" {
					return repo.ExportYAML(runCtx, cmd.OutOrStdout())
				}
				err := fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
					return repo.ExportYAML(runCtx, w)
				})
				if err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Inventory written to %s\n", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file; defaults to stdout")
	return cmd
}

func newSnapshotImportCommand(ctx *commandContext) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge a YAML document into the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open snapshot: %w", err)
				}
				defer file.Close()
				in = file
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				runCtx := commandCtx(cmd)
				result, err := repo.ImportYAML(runCtx, in, replace)
				if err != nil {
					return err
				}
				notifier := notifications.NewService(cfg)
				payload := notifications.Payload{"added": result.Added, "updated": result.Updated}
				if err := notifier.Publish(runCtx, notifications.EventSnapshotImported, payload); err != nil {
					ctx.log().Debug("notification failed", logging.Error(err))
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported inventory: %d added, %d updated\n", result.Added, result.Updated)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Discard the stored inventory before importing")
	return cmd
}
