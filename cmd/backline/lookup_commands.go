package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/lookup"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Search public music catalogs",
	}
	lookupCmd.AddCommand(newLookupSongCommand(ctx))
	lookupCmd.AddCommand(newLookupBPMCommand(ctx))
	return lookupCmd
}

func newLookupSongCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "song TERM...",
		Short: "Search songs by title and artist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := lookup.NewFromConfig(ctx.configValue(), ctx.log())
			tracks := client.SearchSongs(commandCtx(cmd), strings.Join(args, " "))
			if ctx.jsonOutput() {
				if tracks == nil {
					tracks = []lookup.Track{}
				}
				return writeJSON(cmd, tracks)
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No songs found.")
				return nil
			}
			rows := make([][]string, 0, len(tracks))
			for _, t := range tracks {
				d := t.Duration()
				rows = append(rows, []string{t.Title, t.Artist, t.Album, fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)})
			}
			fmt.Fprintln(out, renderTable([]string{"Title", "Artist", "Album", "Length"}, rows, shouldColorize(out), 3))
			return nil
		},
	}
}

func newLookupBPMCommand(ctx *commandContext) *cobra.Command {
	var title, artist string

	cmd := &cobra.Command{
		Use:   "bpm",
		Short: "Look up a song's tempo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("--title is required")
			}
			client := lookup.NewFromConfig(ctx.configValue(), ctx.log())
			bpm := client.BPM(commandCtx(cmd), title, artist)
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"title": title, "artist": artist, "bpm": bpm})
			}
			if bpm == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Tempo unknown")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d BPM\n", bpm)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Song title")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name")
	return cmd
}
