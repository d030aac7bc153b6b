package channels

import (
	"cmp"
	"fmt"
	"strings"

	"backline/internal/equipment"
)

// unplaced collects sources whose stage position is unset or unknown.
const unplaced equipment.StagePosition = ""

type group struct {
	instruments []Entry
	vocals      []Entry
}

// Derive builds the numbered channel list for snap. It never fails: missing
// or dangling references simply produce no channel.
func Derive(snap equipment.Snapshot) []Entry {
	snap = snap.Clone()
	idx := snap.Index()

	groups := make(map[equipment.StagePosition]*group)
	at := func(pos equipment.StagePosition) *group {
		if !pos.Valid() {
			pos = unplaced
		}
		g, ok := groups[pos]
		if !ok {
			g = &group{}
			groups[pos] = g
		}
		return g
	}

	equipment.SortInstruments(snap.Instruments)
	ampsSeen := make(map[string]bool)
	for _, inst := range snap.Instruments {
		pos := idx.InstrumentPosition(inst)
		entries := instrumentEntries(idx, inst, ampsSeen)
		for i := range entries {
			entries[i].Position = pos
		}
		g := at(pos)
		g.instruments = append(g.instruments, entries...)
	}

	vocalMics := make(map[string]bool)
	equipment.SortMembers(snap.Members)
	for _, member := range snap.Members {
		mic, ok := idx.VocalMic(member)
		if !ok || vocalMics[mic.ID] {
			continue
		}
		vocalMics[mic.ID] = true
		g := at(member.StagePosition)
		g.vocals = append(g.vocals, vocalEntry(member, mic))
	}

	var out []Entry
	for _, pos := range append(equipment.AllPositions(), unplaced) {
		g, ok := groups[pos]
		if !ok {
			continue
		}
		out = append(out, g.instruments...)
		out = append(out, g.vocals...)
	}
	out = append(out, ambientEntries(snap.Microphones, vocalMics)...)

	for i := range out {
		out[i].Number = i + 1
	}
	return out
}

func instrumentEntries(idx *equipment.Index, inst equipment.Instrument, ampsSeen map[string]bool) []Entry {
	base := Entry{
		Source:     inst.Name,
		MemberID:   inst.MemberID,
		Member:     idx.MemberName(inst.MemberID),
		Kind:       KindInstrument,
		MonoStereo: cmp.Or(inst.MonoStereo, equipment.Mono),
	}

	if inst.Type == equipment.InstrumentDrums {
		if entries := drumEntries(idx, inst, base); len(entries) > 0 {
			return entries
		}
	}

	switch inst.Routing {
	case equipment.InstrumentDI:
		base.Amplifier = AmpColumnDI
		base.Notes = NoteDI
		return []Entry{base}
	case equipment.InstrumentDirect:
		base.Amplifier = AmpColumnDirect
		base.Notes = NoteDirect
		return []Entry{base}
	case equipment.InstrumentViaAmp:
		if inst.Type == equipment.InstrumentDrums {
			return nil
		}
		amp, ok := idx.Amplifier(inst.AmpID)
		if !ok || ampsSeen[amp.ID] {
			return nil
		}
		ampsSeen[amp.ID] = true
		return ampEntries(idx, amp, base)
	}
	return nil
}

// ampEntries expands the channels of an amplifier. Instruments sharing the
// amp are listed together in the source column.
func ampEntries(idx *equipment.Index, amp equipment.Amplifier, base Entry) []Entry {
	var names []string
	for _, inst := range idx.InstrumentsForAmp(amp.ID) {
		names = append(names, inst.Name)
	}
	if len(names) > 0 {
		base.Source = strings.Join(names, " / ")
	}
	base.Kind = KindAmplifier
	base.Amplifier = AmpLabel(amp)
	base.MonoStereo = cmp.Or(amp.MonoStereo, equipment.Mono)

	switch amp.Routing {
	case equipment.AmpDI:
		base.Notes = NoteDI
		return []Entry{base}
	case equipment.AmpDirect:
		base.Notes = NoteDirect
		return []Entry{base}
	case equipment.AmpMic:
		mics := idx.MicsAssignedTo(equipment.AmplifierAssignment(amp.ID))
		out := make([]Entry, 0, len(mics))
		for _, mic := range mics {
			e := base
			if len(mics) > 1 {
				e.Source = base.Source + " · " + mic.Name
			}
			e.Mic = micDetails(mic)
			e.PhantomPower = mic.PhantomPower
			e.MonoStereo = cmp.Or(mic.MonoStereo, base.MonoStereo)
			out = append(out, e)
		}
		return out
	}
	return nil
}

// AmpLabel formats the amplifier column: name plus wattage when known.
func AmpLabel(amp equipment.Amplifier) string {
	if amp.Wattage > 0 {
		return fmt.Sprintf("%s %dW", amp.Name, amp.Wattage)
	}
	return amp.Name
}

func drumEntries(idx *equipment.Index, kit equipment.Instrument, base Entry) []Entry {
	mics := idx.MicsAssignedTo(equipment.InstrumentAssignment(kit.ID))
	if len(mics) == 0 {
		return nil
	}
	equipment.SortDrumMics(mics)

	totals := make(map[string]int)
	for _, mic := range mics {
		totals[mic.Usage.Label()]++
	}
	seen := make(map[string]int)

	out := make([]Entry, 0, len(mics))
	for _, mic := range mics {
		label := mic.Usage.Label()
		seen[label]++
		if totals[label] > 1 {
			label = fmt.Sprintf("%s %d", label, seen[label])
		}
		e := base
		e.Kind = KindDrums
		e.Source = kit.Name + " · " + label
		e.Amplifier = ""
		e.Mic = micDetails(mic)
		e.PhantomPower = mic.PhantomPower
		e.MonoStereo = cmp.Or(mic.MonoStereo, equipment.Mono)
		out = append(out, e)
	}
	return out
}

func vocalEntry(member equipment.BandMember, mic equipment.Microphone) Entry {
	e := Entry{
		Source:       member.Name,
		Member:       member.Name,
		MemberID:     member.ID,
		Kind:         KindVocal,
		Position:     member.StagePosition,
		MonoStereo:   cmp.Or(mic.MonoStereo, equipment.Mono),
		PhantomPower: mic.PhantomPower,
		Mic:          micDetails(mic),
	}
	if !e.Position.Valid() {
		e.Position = unplaced
	}
	if !member.HasRole(equipment.RoleVocalist) {
		e.Notes = NoteBacking
	}
	return e
}

func ambientEntries(mics []equipment.Microphone, vocalMics map[string]bool) []Entry {
	var ambient []equipment.Microphone
	for _, mic := range mics {
		// A mic whose target was deleted is dropped, not promoted to ambient.
		if mic.Usage != equipment.UsageAmbient || vocalMics[mic.ID] || !mic.Assignment.IsNone() {
			continue
		}
		ambient = append(ambient, mic)
	}
	equipment.SortMicrophones(ambient)

	out := make([]Entry, 0, len(ambient))
	for _, mic := range ambient {
		out = append(out, Entry{
			Source:       mic.Name,
			Kind:         KindAmbient,
			MonoStereo:   cmp.Or(mic.MonoStereo, equipment.Mono),
			PhantomPower: mic.PhantomPower,
			Mic:          micDetails(mic),
			Notes:        "Ambient",
		})
	}
	return out
}
