package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"backline/internal/channels"
	"backline/internal/equipment"
	"backline/internal/textutil"
)

func newChannelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "Print the derived console channel list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				entries := channels.Derive(snap)
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"channels": entries,
						"summary":  channels.Summarize(entries),
					})
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No channels yet.")
					return nil
				}
				fmt.Fprintln(out, renderChannels(entries, shouldColorize(out)))
				s := channels.Summarize(entries)
				fmt.Fprintf(out, "%d channels, %d stereo, %d need phantom power\n", s.Channels, s.Stereo, s.Phantom)
				return nil
			})
		},
	}
}

func renderChannels(entries []channels.Entry, colorize bool) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		mic := "—"
		if e.Mic != nil {
			mic = e.Mic.Name
			if e.Mic.Brand != "" || e.Mic.Model != "" {
				mic = textutil.OrDash(e.Mic.Brand + " " + e.Mic.Model)
			}
		}
		phantom := ""
		if e.PhantomPower {
			phantom = "+48V"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Number),
			e.Source,
			textutil.OrDash(e.Member),
			textutil.OrDash(e.Amplifier),
			mic,
			e.MonoStereo.Short(),
			phantom,
			e.Notes,
		})
	}
	return renderTable(
		[]string{"#", "Source", "Member", "Amplifier", "Mic", "M/S", "48V", "Notes"},
		rows,
		colorize,
		0,
	)
}
