package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/textutil"
)

// printAdded reports a newly stored record.
func printAdded(cmd *cobra.Command, ctx *commandContext, kind, id, name string, record any) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, record)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", kind, name, id)
	return nil
}

// recordFlags binds the editable fields of a record kind to command flags.
// apply copies flag values onto rec: every flag when all is set, otherwise
// only the flags given on the command line.
type recordFlags[T any] interface {
	register(cmd *cobra.Command)
	bindName(cmd *cobra.Command)
	apply(cmd *cobra.Command, rec *T, all bool) error
}

// nameFlag backs the --name flag of update commands.
type nameFlag struct{ name string }

func (n *nameFlag) bindName(cmd *cobra.Command) {
	cmd.Flags().StringVar(&n.name, "name", "", "New display name")
}

// copyFlag reports whether the named flag should be copied onto a record.
func copyFlag(cmd *cobra.Command, all bool) func(string) bool {
	return func(name string) bool { return all || cmd.Flags().Changed(name) }
}

func findByID[T interface{ EntityID() string }](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

type updateFunc[T any] func(r *equipment.Repository, ctx context.Context, rec T) error

// newUpdateCommand edits a stored record in place. Fields whose flags are
// not given keep their stored values.
func newUpdateCommand[T interface{ EntityID() string }](ctx *commandContext, kind string, flags recordFlags[T], records func(equipment.Snapshot) []T, update updateFunc[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: fmt.Sprintf("Update a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				rec, ok := findByID(records(snap), id)
				if !ok {
					return fmt.Errorf("%s %q: %w", kind, id, equipment.ErrNotFound)
				}
				if err := flags.apply(cmd, &rec, false); err != nil {
					return err
				}
				if err := update(repo, commandCtx(cmd), rec); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", kind, id)
				return nil
			})
		},
	}
	flags.bindName(cmd)
	flags.register(cmd)
	return cmd
}

type removeFunc func(r *equipment.Repository, ctx context.Context, id string) error

func newRemoveCommand(ctx *commandContext, kind string, remove removeFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Remove a %s", kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withRepository(func(repo *equipment.Repository) error {
				if err := remove(repo, commandCtx(cmd), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", kind, id)
				return nil
			})
		},
	}
}

// printList writes records as JSON or as a table. rightAligned holds the
// zero-based indexes of numeric columns.
func printList(cmd *cobra.Command, ctx *commandContext, records any, empty string, headers []string, rows [][]string, rightAligned ...int) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, records)
	}
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}
	fmt.Fprintln(out, renderTable(headers, rows, shouldColorize(out), rightAligned...))
	return nil
}

func monoStereoFlag(stereo bool) equipment.MonoStereo {
	if stereo {
		return equipment.Stereo
	}
	return equipment.Mono
}

func parsePosition(value string) equipment.StagePosition {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "none" {
		return ""
	}
	return equipment.StagePosition(value)
}

func memberName(idx *equipment.Index, id string) string {
	return textutil.OrDash(idx.MemberName(id))
}
