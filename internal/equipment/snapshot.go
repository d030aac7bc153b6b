package equipment

import (
	"cmp"
	"slices"
)

// Snapshot is a read-only copy of the whole inventory.
type Snapshot struct {
	Members     []BandMember  `json:"members" yaml:"members"`
	Instruments []Instrument  `json:"instruments" yaml:"instruments"`
	Amplifiers  []Amplifier   `json:"amplifiers" yaml:"amplifiers"`
	Microphones []Microphone  `json:"microphones" yaml:"microphones"`
	PA          []PaEquipment `json:"pa" yaml:"pa"`
}

// IsEmpty reports whether the snapshot holds no stage entities.
func (s Snapshot) IsEmpty() bool {
	return len(s.Members) == 0 && len(s.Instruments) == 0 && len(s.Amplifiers) == 0 && len(s.Microphones) == 0
}

// Index resolves ids against a snapshot. Every lookup treats an empty or
// dangling id as absent.
type Index struct {
	members     map[string]BandMember
	instruments map[string]Instrument
	amplifiers  map[string]Amplifier
	microphones map[string]Microphone
	snap        Snapshot
}

// Index builds the lookup maps for s. When ids collide the first record wins.
func (s Snapshot) Index() *Index {
	return &Index{
		members:     byID(s.Members),
		instruments: byID(s.Instruments),
		amplifiers:  byID(s.Amplifiers),
		microphones: byID(s.Microphones),
		snap:        s,
	}
}

type identified interface {
	EntityID() string
}

func byID[T identified](items []T) map[string]T {
	out := make(map[string]T, len(items))
	for _, item := range items {
		if item.EntityID() == "" {
			continue
		}
		if _, dup := out[item.EntityID()]; !dup {
			out[item.EntityID()] = item
		}
	}
	return out
}

func lookup[T any](m map[string]T, id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	v, ok := m[id]
	return v, ok
}

func (x *Index) Member(id string) (BandMember, bool)     { return lookup(x.members, id) }
func (x *Index) Instrument(id string) (Instrument, bool) { return lookup(x.instruments, id) }
func (x *Index) Amplifier(id string) (Amplifier, bool)   { return lookup(x.amplifiers, id) }
func (x *Index) Microphone(id string) (Microphone, bool) { return lookup(x.microphones, id) }

// MemberName returns the owning member's name, or "" when unresolved.
func (x *Index) MemberName(id string) string {
	m, ok := x.Member(id)
	if !ok {
		return ""
	}
	return m.Name
}

// EffectiveAssignment returns mic's assignment, or the zero Assignment when
// its target no longer exists.
func (x *Index) EffectiveAssignment(mic Microphone) Assignment {
	a := mic.Assignment
	var ok bool
	switch a.Kind() {
	case AssignMember:
		_, ok = x.Member(a.ID())
	case AssignAmplifier:
		_, ok = x.Amplifier(a.ID())
	case AssignInstrument:
		_, ok = x.Instrument(a.ID())
	}
	if !ok {
		return Assignment{}
	}
	return a
}

// MicsAssignedTo returns microphones whose effective assignment equals a,
// ordered by name then id.
func (x *Index) MicsAssignedTo(a Assignment) []Microphone {
	if a.IsNone() {
		return nil
	}
	var out []Microphone
	for _, mic := range x.snap.Microphones {
		if x.EffectiveAssignment(mic) == a {
			out = append(out, mic)
		}
	}
	SortMicrophones(out)
	return out
}

// VocalMic resolves a member's vocal microphone: VocalMicID first, then the
// first microphone assigned to the member.
func (x *Index) VocalMic(member BandMember) (Microphone, bool) {
	if mic, ok := x.Microphone(member.VocalMicID); ok {
		return mic, true
	}
	assigned := x.MicsAssignedTo(MemberAssignment(member.ID))
	if len(assigned) == 0 {
		return Microphone{}, false
	}
	return assigned[0], true
}

// InstrumentsOf returns the member's instruments in channel order.
func (x *Index) InstrumentsOf(memberID string) []Instrument {
	if memberID == "" {
		return nil
	}
	var out []Instrument
	for _, inst := range x.snap.Instruments {
		if inst.MemberID == memberID {
			out = append(out, inst)
		}
	}
	SortInstruments(out)
	return out
}

// InstrumentsForAmp returns the instruments routed into amp, in channel order.
func (x *Index) InstrumentsForAmp(ampID string) []Instrument {
	if ampID == "" {
		return nil
	}
	var out []Instrument
	for _, inst := range x.snap.Instruments {
		if inst.Routing == InstrumentViaAmp && inst.AmpID == ampID {
			out = append(out, inst)
		}
	}
	SortInstruments(out)
	return out
}

// InstrumentPosition returns the stage cell of the instrument's owner.
func (x *Index) InstrumentPosition(inst Instrument) StagePosition {
	owner, ok := x.Member(inst.MemberID)
	if !ok || !owner.StagePosition.Valid() {
		return ""
	}
	return owner.StagePosition
}

// SortMembers orders members by sort order, name and id.
func SortMembers(items []BandMember) {
	slices.SortStableFunc(items, func(a, b BandMember) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// SortInstruments orders instruments by channel order, name and id.
func SortInstruments(items []Instrument) {
	slices.SortStableFunc(items, func(a, b Instrument) int {
		return cmp.Or(cmp.Compare(a.ChannelOrder, b.ChannelOrder), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// SortAmplifiers orders amplifiers by name and id.
func SortAmplifiers(items []Amplifier) {
	slices.SortStableFunc(items, func(a, b Amplifier) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// SortMicrophones orders microphones by name and id.
func SortMicrophones(items []Microphone) {
	slices.SortStableFunc(items, func(a, b Microphone) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

func drumRank(u MicUsage) int {
	switch u {
	case UsageDrumsKick:
		return 0
	case UsageDrumsSnare:
		return 1
	case UsageDrumsPack:
		return 2
	case UsageDrumsOverhead:
		return 3
	}
	return 4
}

// SortDrumMics orders kit microphones kick, snare, pack, overhead, then the
// rest, breaking ties by name and id.
func SortDrumMics(mics []Microphone) {
	slices.SortStableFunc(mics, func(a, b Microphone) int {
		return cmp.Or(cmp.Compare(drumRank(a.Usage), drumRank(b.Usage)), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// DrumMics returns the microphones effectively assigned to a kit in drum
// order.
func (x *Index) DrumMics(kitID string) []Microphone {
	mics := x.MicsAssignedTo(InstrumentAssignment(kitID))
	SortDrumMics(mics)
	return mics
}

// SortPA orders PA equipment by category display order, name and id.
func SortPA(items []PaEquipment) {
	rank := func(c PaCategory) int {
		if i := slices.Index(PaCategories(), c); i >= 0 {
			return i
		}
		return len(PaCategories())
	}
	slices.SortStableFunc(items, func(a, b PaEquipment) int {
		return cmp.Or(cmp.Compare(rank(a.Category), rank(b.Category)), cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// Clone returns a deep copy so callers may sort without touching s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Members:     slices.Clone(s.Members),
		Instruments: slices.Clone(s.Instruments),
		Amplifiers:  slices.Clone(s.Amplifiers),
		Microphones: slices.Clone(s.Microphones),
		PA:          slices.Clone(s.PA),
	}
	for i := range out.Members {
		out.Members[i].Roles = slices.Clone(out.Members[i].Roles)
	}
	return out
}
