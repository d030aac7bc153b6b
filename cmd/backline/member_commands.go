package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/textutil"
)

func newMemberCommand(ctx *commandContext) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage band members",
	}
	memberCmd.AddCommand(newMemberAddCommand(ctx))
	memberCmd.AddCommand(newMemberListCommand(ctx))
	memberCmd.AddCommand(newMemberSetPositionCommand(ctx))
	memberCmd.AddCommand(newUpdateCommand[equipment.BandMember](ctx, "member", &memberFlags{},
		func(s equipment.Snapshot) []equipment.BandMember { return s.Members },
		(*equipment.Repository).UpdateMember))
	memberCmd.AddCommand(newRemoveCommand(ctx, "member", (*equipment.Repository).DeleteMember))
	return memberCmd
}

type memberFlags struct {
	nameFlag
	roles                     []string
	position, vocalMic, notes string
}

func (f *memberFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.roles, "role", "r", nil, "Role (vocalist, guitarist, bassist, drummer, keyboardist, other); repeatable")
	cmd.Flags().StringVar(&f.position, "position", "", "Stage position such as front-center")
	cmd.Flags().StringVar(&f.vocalMic, "vocal-mic", "", "Microphone id the member sings into")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *memberFlags) apply(cmd *cobra.Command, m *equipment.BandMember, all bool) error {
	set := copyFlag(cmd, all)
	if set("name") {
		m.Name = f.name
	}
	if set("role") {
		m.Roles = nil
		for _, role := range f.roles {
			m.Roles = append(m.Roles, equipment.MemberRole(strings.ToLower(strings.TrimSpace(role))))
		}
	}
	if set("position") {
		m.StagePosition = parsePosition(f.position)
	}
	if set("vocal-mic") {
		m.VocalMicID = f.vocalMic
	}
	if set("notes") {
		m.Notes = f.notes
	}
	return nil
}

func newMemberAddCommand(ctx *commandContext) *cobra.Command {
	var flags memberFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a band member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var member equipment.BandMember
			flags.name = args[0]
			if err := flags.apply(cmd, &member, true); err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				added, err := repo.AddMember(commandCtx(cmd), member)
				if err != nil {
					return err
				}
				return printAdded(cmd, ctx, "member", added.ID, added.Name, added)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newMemberListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List band members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				members := slices.Clone(snap.Members)
				equipment.SortMembers(members)
				idx := snap.Index()
				rows := make([][]string, 0, len(members))
				for _, m := range members {
					labels := make([]string, 0, len(m.Roles))
					for _, role := range m.Roles {
						labels = append(labels, role.Label())
					}
					vocal := "—"
					if mic, ok := idx.Microphone(m.VocalMicID); ok {
						vocal = mic.Name
					}
					rows = append(rows, []string{m.ID, m.Name, strings.Join(labels, ", "), m.StagePosition.Label(), vocal, textutil.OrDash(m.Notes)})
				}
				return printList(cmd, ctx, members, "No band members yet.",
					[]string{"ID", "Name", "Roles", "Position", "Vocal mic", "Notes"}, rows)
			})
		},
	}
}

func newMemberSetPositionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-position ID POSITION",
		Short: "Move a member to a stage cell (use none to clear)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := parsePosition(args[1])
			return ctx.withRepository(func(repo *equipment.Repository) error {
				if err := repo.SetMemberPosition(commandCtx(cmd), args[0], pos); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Member %s now at %s\n", args[0], pos.Label())
				return nil
			})
		},
	}
}
