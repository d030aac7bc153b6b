package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
)

func newInstrumentCommand(ctx *commandContext) *cobra.Command {
	instrumentCmd := &cobra.Command{
		Use:     "instrument",
		Aliases: []string{"inst"},
		Short:   "Manage instruments",
	}
	instrumentCmd.AddCommand(newInstrumentAddCommand(ctx))
	instrumentCmd.AddCommand(newInstrumentListCommand(ctx))
	instrumentCmd.AddCommand(newUpdateCommand[equipment.Instrument](ctx, "instrument", &instrumentFlags{},
		func(s equipment.Snapshot) []equipment.Instrument { return s.Instruments },
		(*equipment.Repository).UpdateInstrument))
	instrumentCmd.AddCommand(newRemoveCommand(ctx, "instrument", (*equipment.Repository).DeleteInstrument))
	return instrumentCmd
}

type instrumentFlags struct {
	nameFlag
	kind, routing, memberID, ampID string
	brand, model, notes            string
	stereo                         bool
}

func (f *instrumentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(equipment.InstrumentGuitar), "Instrument type (guitar, bass, drums, keyboard, other)")
	cmd.Flags().StringVar(&f.routing, "routing", string(equipment.InstrumentDI), "Signal routing (amp, di, mesa)")
	cmd.Flags().StringVar(&f.memberID, "member", "", "Owning member id")
	cmd.Flags().StringVar(&f.ampID, "amp", "", "Amplifier id when routed through an amp")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&f.model, "model", "", "Model")
	cmd.Flags().BoolVar(&f.stereo, "stereo", false, "Stereo output (ignored for amp routing)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *instrumentFlags) apply(cmd *cobra.Command, inst *equipment.Instrument, all bool) error {
	set := copyFlag(cmd, all)
	if set("name") {
		inst.Name = f.name
	}
	if set("type") {
		inst.Type = equipment.InstrumentType(strings.ToLower(strings.TrimSpace(f.kind)))
	}
	if set("routing") {
		inst.Routing = equipment.InstrumentRouting(strings.ToLower(strings.TrimSpace(f.routing)))
	}
	if set("member") {
		inst.MemberID = f.memberID
	}
	if set("amp") {
		inst.AmpID = f.ampID
	}
	if set("brand") {
		inst.Brand = f.brand
	}
	if set("model") {
		inst.Model = f.model
	}
	if set("stereo") {
		inst.MonoStereo = monoStereoFlag(f.stereo)
	}
	if set("notes") {
		inst.Notes = f.notes
	}
	return nil
}

func newInstrumentAddCommand(ctx *commandContext) *cobra.Command {
	var flags instrumentFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var inst equipment.Instrument
			flags.name = args[0]
			if err := flags.apply(cmd, &inst, true); err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				added, err := repo.AddInstrument(commandCtx(cmd), inst)
				if err != nil {
					return err
				}
				return printAdded(cmd, ctx, "instrument", added.ID, added.Name, added)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newInstrumentListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List instruments in channel order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				insts := slices.Clone(snap.Instruments)
				equipment.SortInstruments(insts)
				idx := snap.Index()
				rows := make([][]string, 0, len(insts))
				for _, inst := range insts {
					amp := "—"
					if a, ok := idx.Amplifier(inst.AmpID); ok && inst.Routing == equipment.InstrumentViaAmp {
						amp = a.Name
					}
					rows = append(rows, []string{inst.ID, inst.Name, inst.Type.Label(), memberName(idx, inst.MemberID), inst.Routing.Label(), amp})
				}
				return printList(cmd, ctx, insts, "No instruments yet.",
					[]string{"ID", "Name", "Type", "Member", "Routing", "Amplifier"}, rows)
			})
		},
	}
}
