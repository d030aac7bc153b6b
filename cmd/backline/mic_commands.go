package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
)

func newMicCommand(ctx *commandContext) *cobra.Command {
	micCmd := &cobra.Command{
		Use:     "mic",
		Aliases: []string{"microphone"},
		Short:   "Manage microphones",
	}
	micCmd.AddCommand(newMicAddCommand(ctx))
	micCmd.AddCommand(newMicListCommand(ctx))
	micCmd.AddCommand(newMicAssignCommand(ctx))
	micCmd.AddCommand(newUpdateCommand[equipment.Microphone](ctx, "microphone", &micFlags{},
		func(s equipment.Snapshot) []equipment.Microphone { return s.Microphones },
		(*equipment.Repository).UpdateMicrophone))
	micCmd.AddCommand(newRemoveCommand(ctx, "microphone", (*equipment.Repository).DeleteMicrophone))
	return micCmd
}

type micFlags struct {
	nameFlag
	kind, brand, model, pattern, usage string
	assignKind, assignTo, notes        string
	phantom, stereo                    bool
}

func (f *micFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(equipment.MicDynamic), "Microphone type (dynamic, condenser, ribbon)")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&f.model, "model", "", "Model")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Polar pattern (cardioid, supercardioid, hypercardioid, omnidirectional, figure-8)")
	cmd.Flags().StringVar(&f.usage, "usage", "", "Usage (instrument, vocal, drums-kick, drums-snare, drums-overhead, drums-pack, ambient)")
	cmd.Flags().BoolVar(&f.phantom, "phantom", false, "Needs +48V phantom power")
	cmd.Flags().BoolVar(&f.stereo, "stereo", false, "Stereo capsule")
	cmd.Flags().StringVar(&f.assignKind, "assign", "", "Assign to a member, amplifier or instrument")
	cmd.Flags().StringVar(&f.assignTo, "to", "", "Id of the assignment target")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *micFlags) apply(cmd *cobra.Command, mic *equipment.Microphone, all bool) error {
	set := copyFlag(cmd, all)
	if set("assign") || set("to") {
		kind, target := string(mic.Assignment.Kind()), mic.Assignment.ID()
		if set("assign") {
			kind = f.assignKind
		}
		if set("to") {
			target = f.assignTo
		}
		assignment, err := equipment.ParseAssignment(kind, target)
		if err != nil {
			return err
		}
		mic.Assignment = assignment
	}
	if set("name") {
		mic.Name = f.name
	}
	if set("type") {
		mic.Type = equipment.MicType(strings.ToLower(strings.TrimSpace(f.kind)))
	}
	if set("brand") {
		mic.Brand = f.brand
	}
	if set("model") {
		mic.Model = f.model
	}
	if set("pattern") {
		mic.PolarPattern = equipment.PolarPattern(strings.ToLower(strings.TrimSpace(f.pattern)))
	}
	if set("usage") {
		mic.Usage = equipment.MicUsage(strings.ToLower(strings.TrimSpace(f.usage)))
	}
	if set("phantom") {
		mic.PhantomPower = f.phantom
	}
	if set("stereo") {
		mic.MonoStereo = monoStereoFlag(f.stereo)
	}
	if set("notes") {
		mic.Notes = f.notes
	}
	return nil
}

func newMicAddCommand(ctx *commandContext) *cobra.Command {
	var flags micFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a microphone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mic equipment.Microphone
			flags.name = args[0]
			if err := flags.apply(cmd, &mic, true); err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				added, err := repo.AddMicrophone(commandCtx(cmd), mic)
				if err != nil {
					return err
				}
				return printAdded(cmd, ctx, "microphone", added.ID, added.Name, added)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newMicListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List microphones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				mics := slices.Clone(snap.Microphones)
				equipment.SortMicrophones(mics)
				idx := snap.Index()
				rows := make([][]string, 0, len(mics))
				for _, mic := range mics {
					usage := "—"
					if mic.Usage != "" {
						usage = mic.Usage.Label()
					}
					rows = append(rows, []string{mic.ID, mic.Name, mic.Type.Label(), yesNo(mic.PhantomPower), usage, describeAssignment(idx, mic)})
				}
				return printList(cmd, ctx, mics, "No microphones yet.",
					[]string{"ID", "Name", "Type", "+48V", "Usage", "Assigned to"}, rows)
			})
		},
	}
}

func newMicAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign MIC_ID KIND [TARGET_ID]",
		Short: "Point a microphone at a member, amplifier or instrument (KIND none unassigns)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 3 {
				target = args[2]
			}
			assignment, err := equipment.ParseAssignment(args[1], target)
			if err != nil {
				return err
			}
			if !assignment.IsNone() && strings.TrimSpace(target) == "" {
				return fmt.Errorf("assigning to %s requires a target id", args[1])
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				if err := repo.AssignMicrophone(commandCtx(cmd), args[0], assignment); err != nil {
					return err
				}
				if assignment.IsNone() {
					fmt.Fprintf(cmd.OutOrStdout(), "Microphone %s unassigned\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Microphone %s assigned to %s\n", args[0], assignment)
				return nil
			})
		},
	}
}

func describeAssignment(idx *equipment.Index, mic equipment.Microphone) string {
	a := idx.EffectiveAssignment(mic)
	switch a.Kind() {
	case equipment.AssignMember:
		return "Member: " + idx.MemberName(a.ID())
	case equipment.AssignAmplifier:
		if amp, ok := idx.Amplifier(a.ID()); ok {
			return "Amp: " + amp.Name
		}
	case equipment.AssignInstrument:
		if inst, ok := idx.Instrument(a.ID()); ok {
			return "Instrument: " + inst.Name
		}
	}
	return "—"
}
