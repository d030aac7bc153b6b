package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/config"
	"backline/internal/deps"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set band.name (or export BACKLINE_BAND_NAME) before exporting a rider.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTarget resolves the --path flag, falling back to the default location.
func initTarget(flag string) (string, error) {
	if flag = strings.TrimSpace(flag); flag == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flag)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

type validateReport struct {
	Path         string        `json:"path"`
	Exists       bool          `json:"exists"`
	Band         string        `json:"band"`
	OutputDir    string        `json:"outputDir"`
	Lookup       bool          `json:"lookup"`
	Valid        bool          `json:"valid"`
	Dependencies []deps.Status `json:"dependencies"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and check directories and helper programs",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loaded here rather than in the root hook so the error names
			// the offending key instead of aborting every command.
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			report := validateReport{
				Path:         path,
				Exists:       exists,
				Band:         cfg.Band.Name,
				OutputDir:    cfg.Paths.OutputDir,
				Lookup:       cfg.Lookup.Enabled,
				Valid:        true,
				Dependencies: deps.CheckBinaries(deps.RiderRequirements(cfg)),
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", report.Path)
			if !report.Exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Band: %s\n", report.Band)
			fmt.Fprintf(out, "Output directory: %s\n", report.OutputDir)
			fmt.Fprintf(out, "Lookup enabled: %s\n", yesNo(report.Lookup))
			fmt.Fprintln(out, strings.Join(dependencyLines(report.Dependencies, shouldColorize(out)), "\n"))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
