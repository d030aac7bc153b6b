package main

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"backline/internal/equipment"
	"backline/internal/rider"
)

func newPACommand(ctx *commandContext) *cobra.Command {
	paCmd := &cobra.Command{
		Use:   "pa",
		Short: "Manage PA and sound system equipment",
	}
	paCmd.AddCommand(newPAAddCommand(ctx))
	paCmd.AddCommand(newPAListCommand(ctx))
	paCmd.AddCommand(newUpdateCommand[equipment.PaEquipment](ctx, "pa equipment", &paFlags{},
		func(s equipment.Snapshot) []equipment.PaEquipment { return s.PA },
		(*equipment.Repository).UpdatePA))
	paCmd.AddCommand(newRemoveCommand(ctx, "pa equipment", (*equipment.Repository).DeletePA))
	return paCmd
}

type paFlags struct {
	nameFlag
	category, brand, model, monitorType, notes string
	quantity, channels, auxSends, wattage      int
	wireless                                   bool
}

func (f *paFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", string(equipment.PaOther), "Category (console, main-speaker, subwoofer, monitor, di-box, power-amp, other)")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand")
	cmd.Flags().StringVar(&f.model, "model", "", "Model")
	cmd.Flags().IntVarP(&f.quantity, "quantity", "q", 1, "Number of units")
	cmd.Flags().IntVar(&f.channels, "channels", 0, "Console input channels")
	cmd.Flags().IntVar(&f.auxSends, "aux", 0, "Console aux sends")
	cmd.Flags().IntVar(&f.wattage, "wattage", 0, "Power rating in watts")
	cmd.Flags().StringVar(&f.monitorType, "monitor-type", "", "Monitor type (speaker, iem)")
	cmd.Flags().BoolVar(&f.wireless, "wireless", false, "Wireless in-ear system")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *paFlags) apply(cmd *cobra.Command, item *equipment.PaEquipment, all bool) error {
	set := copyFlag(cmd, all)
	if set("name") {
		item.Name = f.name
	}
	if set("category") {
		item.Category = equipment.PaCategory(strings.ToLower(strings.TrimSpace(f.category)))
	}
	if set("brand") {
		item.Brand = f.brand
	}
	if set("model") {
		item.Model = f.model
	}
	if set("quantity") {
		item.Quantity = f.quantity
	}
	if set("channels") {
		item.Channels = f.channels
	}
	if set("aux") {
		item.AuxSends = f.auxSends
	}
	if set("wattage") {
		item.Wattage = f.wattage
	}
	if set("monitor-type") {
		item.MonitorType = equipment.MonitorType(strings.ToLower(strings.TrimSpace(f.monitorType)))
	}
	if set("wireless") {
		item.IEMWireless = f.wireless
	}
	if set("notes") {
		item.Notes = f.notes
	}
	return nil
}

func newPAAddCommand(ctx *commandContext) *cobra.Command {
	var flags paFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a PA item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item equipment.PaEquipment
			flags.name = args[0]
			if err := flags.apply(cmd, &item, true); err != nil {
				return err
			}
			return ctx.withRepository(func(repo *equipment.Repository) error {
				added, err := repo.AddPA(commandCtx(cmd), item)
				if err != nil {
					return err
				}
				return printAdded(cmd, ctx, "pa equipment", added.ID, added.Name, added)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newPAListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List PA equipment by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(func(repo *equipment.Repository) error {
				snap, err := repo.Snapshot(commandCtx(cmd))
				if err != nil {
					return err
				}
				items := slices.Clone(snap.PA)
				equipment.SortPA(items)
				rows := make([][]string, 0, len(items))
				for _, p := range items {
					rows = append(rows, []string{p.ID, p.Category.Label(), rider.PADescription(p), strconv.Itoa(p.Quantity)})
				}
				return printList(cmd, ctx, items, "No PA equipment yet.",
					[]string{"ID", "Category", "Item", "Qty"}, rows, 3)
			})
		},
	}
}
