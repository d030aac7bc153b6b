package stage

import (
	"cmp"
	"slices"

	"backline/internal/equipment"
	"backline/internal/scene"
)

// SlotKind tells instrument slots from synthetic vocal slots.
type SlotKind string

const (
	SlotInstrument SlotKind = "instrument"
	SlotVocal      SlotKind = "vocal"
)

// Slot is one instrument, or a singer without an instrument, placed on
// stage.
type Slot struct {
	Kind       SlotKind
	Position   equipment.StagePosition
	Center     scene.Point
	Member     equipment.BandMember
	Instrument equipment.Instrument
}

// IsDrums reports whether the slot holds a drum kit.
func (s Slot) IsDrums() bool {
	return s.Kind == SlotInstrument && s.Instrument.Type == equipment.InstrumentDrums
}

// Size returns the glyph size drawn for the slot.
func (s Slot) Size() float64 {
	if s.IsDrums() {
		return DrumSize
	}
	return InstrumentSize
}

// AmpSlot is an amplifier placed on stage.
type AmpSlot struct {
	Position equipment.StagePosition
	Center   scene.Point
	Amp      equipment.Amplifier
	Mics     []equipment.Microphone
}

// Miked reports whether the amp is routed through an assigned microphone.
func (a AmpSlot) Miked() bool {
	return a.Amp.Routing == equipment.AmpMic && len(a.Mics) > 0
}

// MicCenter returns where the amp's microphone sits: in front of its face,
// level with the speaker a third of the way down.
func (a AmpSlot) MicCenter() scene.Point {
	return scene.Point{X: a.Center.X + AmpSize/2 + MicSize/2 + 2, Y: a.Center.Y + AmpSize/3.0}
}

// DrumMic is a kit microphone placed beside its kit.
type DrumMic struct {
	Mic    equipment.Microphone
	KitID  string
	Center scene.Point
	// Above is set for odd indices; those glyphs are drawn flipped.
	Above bool
}

// Plan is the placement of every stage-resident item.
type Plan struct {
	Grid     Grid
	Slots    []Slot
	Amps     []AmpSlot
	DrumMics []DrumMic
}

// Slot returns the placed slot for an instrument.
func (p *Plan) Slot(instrumentID string) (Slot, bool) {
	for _, s := range p.Slots {
		if s.Kind == SlotInstrument && s.Instrument.ID == instrumentID {
			return s, true
		}
	}
	return Slot{}, false
}

// Amp returns the placed slot for an amplifier.
func (p *Plan) Amp(ampID string) (AmpSlot, bool) {
	for _, a := range p.Amps {
		if a.Amp.ID == ampID {
			return a, true
		}
	}
	return AmpSlot{}, false
}

// Place assigns every instrument, singer, amplifier and kit microphone in
// snap to a point on the stage. Items without a resolvable position are left
// off.
func Place(snap equipment.Snapshot, opts Options) *Plan {
	opts = opts.normalized()
	idx := snap.Index()
	plan := &Plan{Grid: NewGrid(opts.DepthBands)}

	members := slices.Clone(snap.Members)
	equipment.SortMembers(members)
	rank := make(map[string]int, len(members))
	for i, m := range members {
		if _, seen := rank[m.ID]; !seen {
			rank[m.ID] = i
		}
	}

	cells := make(map[equipment.StagePosition][]Slot)
	instruments := slices.Clone(snap.Instruments)
	slices.SortStableFunc(instruments, func(a, b equipment.Instrument) int {
		return cmp.Or(
			cmp.Compare(rank[a.MemberID], rank[b.MemberID]),
			cmp.Compare(a.ChannelOrder, b.ChannelOrder),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
	for _, inst := range instruments {
		pos := idx.InstrumentPosition(inst)
		if pos == "" {
			continue
		}
		owner, _ := idx.Member(inst.MemberID)
		cells[pos] = append(cells[pos], Slot{Kind: SlotInstrument, Position: pos, Member: owner, Instrument: inst})
	}
	for _, m := range members {
		if !m.StagePosition.Valid() || len(idx.InstrumentsOf(m.ID)) > 0 {
			continue
		}
		if _, ok := idx.VocalMic(m); !ok {
			continue
		}
		cells[m.StagePosition] = append(cells[m.StagePosition], Slot{Kind: SlotVocal, Position: m.StagePosition, Member: m})
	}

	ampCells := make(map[equipment.StagePosition][]AmpSlot)
	amps := slices.Clone(snap.Amplifiers)
	equipment.SortAmplifiers(amps)
	for _, amp := range amps {
		if !amp.StagePosition.Valid() {
			continue
		}
		mics := idx.MicsAssignedTo(equipment.AmplifierAssignment(amp.ID))
		ampCells[amp.StagePosition] = append(ampCells[amp.StagePosition], AmpSlot{Position: amp.StagePosition, Amp: amp, Mics: mics})
	}

	for _, pos := range equipment.AllPositions() {
		center, ok := plan.Grid.Cell(pos)
		if !ok {
			continue
		}
		slots := cells[pos]
		for i, off := range ClusterOffsets(len(slots)) {
			slots[i].Center = scene.Point{X: center.X + off.X, Y: center.Y + off.Y}
			plan.Slots = append(plan.Slots, slots[i])
		}
		ampSlots := ampCells[pos]
		for i, off := range ClusterOffsets(len(ampSlots)) {
			ampSlots[i].Center = scene.Point{X: center.X + off.X, Y: center.Y + off.Y}
			plan.Amps = append(plan.Amps, ampSlots[i])
		}
	}

	for _, slot := range plan.Slots {
		if !slot.IsDrums() {
			continue
		}
		plan.DrumMics = append(plan.DrumMics, placeDrumMics(slot, idx.DrumMics(slot.Instrument.ID))...)
	}
	return plan
}

// placeDrumMics stacks kit microphones on the kit's right: even indices
// below the centre line, odd indices above, each pair further out.
func placeDrumMics(kit Slot, mics []equipment.Microphone) []DrumMic {
	out := make([]DrumMic, 0, len(mics))
	x := kit.Center.X + DrumSize/2 + MicSize/2 + 4
	for i, mic := range mics {
		pair := float64(i / 2)
		dy := DrumSize/3.0 + pair*drumMicPairStep
		above := i%2 == 1
		if above {
			dy = -dy
		}
		out = append(out, DrumMic{
			Mic:    mic,
			KitID:  kit.Instrument.ID,
			Center: scene.Point{X: x, Y: kit.Center.Y + dy},
			Above:  above,
		})
	}
	return out
}
