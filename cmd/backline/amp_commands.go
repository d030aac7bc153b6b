package main

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/rider"
)

func newAmpCommand(ctx *commandContext) *cobra.Command {
	ampCmd := &cobra.Command{
		Use:     "amp",
		Aliases: []string{"amplifier"},
		Short:   "Manage amplifiers",
	}
	ampCmd.AddCommand(newAmpAddCommand(ctx))
	ampCmd.AddCommand(newAmpListCommand(ctx))
	ampCmd.AddCommand(newUpdateCommand[equipment.Amplifier](ctx, "amplifier", &ampFlags{},
		func(s equipment.Snapshot) []equipment.Amplifier { return s.Amplifiers },
		(*equipment.Repository).UpdateAmplifier))
	ampCmd.AddCommand(newRemoveCommand(ctx, "amplifier", (*equipment.Repository).DeleteAmplifier))
	return ampCmd
}

type ampFlags struct {
	nameFlag
	kind, routing, memberID, position string
	brand, model, cabinet             string
	speakerBrand, speakerModel        string
	speakerConfig, notes              string
	wattage                           int
	stereo                            bool
}

func (f *ampFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(equipment.AmpGuitar), "Amplifier type (guitar, bass, keyboard)")
	cmd.Flags().StringVar(&f.routing, "routing", string(equipment.AmpMic), "Signal routing (mic, di, mesa)")
	cmd.Flags().StringVar(&f.memberID, "member", "", "Owning member id")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&f.model, "model", "", "Model")
	cmd.Flags().IntVar(&f.wattage, "wattage", 0, "Power rating in watts")
	cmd.Flags().StringVar(&f.position, "position", "", "Stage position when not standing with its owner")
	cmd.Flags().StringVar(&f.cabinet, "cabinet", "", "Cabinet brand")
	cmd.Flags().StringVar(&f.speakerBrand, "speaker-brand", "", "Speaker brand")
	cmd.Flags().StringVar(&f.speakerModel, "speaker-model", "", "Speaker model")
	cmd.Flags().StringVar(&f.speakerConfig, "speaker-config", "", "Speaker layout such as 4x12 or custom")
	cmd.Flags().BoolVar(&f.stereo, "stereo", false, "Stereo output")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *ampFlags) apply(cmd *cobra.Command, amp *equipment.Amplifier, all bool) error {
	set := copyFlag(cmd, all)
	if set("name") {
		amp.Name = f.name
	}
	if set("type") {
		amp.Type = equipment.AmpType(strings.ToLower(strings.TrimSpace(f.kind)))
	}
	if set("routing") {
		amp.Routing = equipment.AmpRouting(strings.ToLower(strings.TrimSpace(f.routing)))
	}
	if set("member") {
		amp.MemberID = f.memberID
	}
	if set("brand") {
		amp.Brand = f.brand
	}
	if set("model") {
		amp.Model = f.model
	}
	if set("wattage") {
		amp.Wattage = f.wattage
	}
	if set("position") {
		amp.StagePosition = parsePosition(f.position)
	}
	if set("cabinet") {
		amp.CabinetBrand = f.cabinet
	}
	if set("speaker-brand") {
		amp.SpeakerBrand = f.speakerBrand
	}
	if set("speaker-model") {
		amp.SpeakerModel = f.speakerModel
	}
	if set("speaker-config") {
		amp.SpeakerConfig = equipment.SpeakerConfig(strings.ToLower(strings.TrimSpace(f.speakerConfig)))
	}
	if set("stereo") {
		amp.MonoStereo = monoStereoFlag(f.stereo)
	}
	if set("notes") {
		amp.Notes = f.notes
	}
	return nil
}

func newAmpAddCommand(ctx *commandContext) *cobra.Command {
	var flags ampFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an amplifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amp equipment.Amplifier
			flags.name = args[0]
			if err := flags.apply(cmd, &amp, true); err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				added, err := repo.AddAmplifier(commandCtx(cmd), amp)
				if err != nil {
					return err
				}
				return printAdded(cmd, ctx, "amplifier", added.ID, added.Name, added)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newAmpListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List amplifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				amps := slices.Clone(snap.Amplifiers)
				equipment.SortAmplifiers(amps)
				idx := snap.Index()
				rows := make([][]string, 0, len(amps))
				for _, amp := range amps {
					mics := len(idx.MicsAssignedTo(equipment.AmplifierAssignment(amp.ID)))
					rows = append(rows, []string{amp.ID, rider.AmpDescription(amp), amp.Type.Label(), memberName(idx, amp.MemberID), amp.Routing.Label(), strconv.Itoa(mics)})
				}
				return printList(cmd, ctx, amps, "No amplifiers yet.",
					[]string{"ID", "Amplifier", "Type", "Member", "Routing", "Mics"}, rows, 5)
			})
		},
	}
}
