package channels_test

import (
	"reflect"
	"testing"

	"backline/internal/channels"
	"backline/internal/equipment"
	"backline/internal/testsupport"
)

func TestDeriveScenario(t *testing.T) {
	entries := channels.Derive(testsupport.ScenarioSnapshot())
	if len(entries) != 2 {
		t.Fatalf("expected 2 channels, got %d: %+v", len(entries), entries)
	}

	guitar := entries[0]
	if guitar.Number != 1 || guitar.Source != "Les Paul" || guitar.Amplifier != "Amp 1" {
		t.Fatalf("unexpected first channel %+v", guitar)
	}
	if guitar.Notes != channels.NoteDI || guitar.Mic != nil || guitar.PhantomPower {
		t.Fatalf("amp routed via DI should be a DI-style channel: %+v", guitar)
	}
	if guitar.Position != equipment.PositionBackLeft || guitar.Member != "Guitarist" {
		t.Fatalf("unexpected guitar placement %+v", guitar)
	}

	vocal := entries[1]
	if vocal.Number != 2 || vocal.Source != "Singer" || vocal.Kind != channels.KindVocal {
		t.Fatalf("unexpected second channel %+v", vocal)
	}
	if vocal.Mic == nil || vocal.Mic.Name != "Mic A" || vocal.Mic.Type != equipment.MicDynamic {
		t.Fatalf("expected vocal mic details, got %+v", vocal.Mic)
	}
	if vocal.Notes != "" {
		t.Fatalf("lead vocalist should not be marked as backing: %q", vocal.Notes)
	}
}

func TestDeriveFullBandOrdering(t *testing.T) {
	entries := channels.Derive(testsupport.FullBandSnapshot())
	var got []string
	for _, e := range entries {
		got = append(got, e.Source)
	}
	want := []string{
		"Les Paul",
		"Kit · Kick",
		"Kit · Snare",
		"Kit · Overhead 1",
		"Kit · Overhead 2",
		"Jazz Bass",
		"Bassist",
		"Nord Stage",
		"Singer",
		"Crowd",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected channel order\n got: %q\nwant: %q", got, want)
	}

	byName := make(map[string]channels.Entry)
	for _, e := range entries {
		byName[e.Source] = e
	}
	if e := byName["Jazz Bass"]; e.Amplifier != "Ampeg SVT 300W" || e.Mic == nil || e.Mic.Model != "MD421" {
		t.Fatalf("miked amp channel wrong: %+v", e)
	}
	if e := byName["Nord Stage"]; e.MonoStereo != equipment.Stereo || e.Amplifier != channels.AmpColumnDI {
		t.Fatalf("stereo DI keyboard wrong: %+v", e)
	}
	if e := byName["Kit · Overhead 1"]; !e.PhantomPower || e.Mic.Name != "OH L" {
		t.Fatalf("overhead channel wrong: %+v", e)
	}
	if e := byName["Crowd"]; e.Kind != channels.KindAmbient || e.Position != "" {
		t.Fatalf("ambient channel wrong: %+v", e)
	}

	sum := channels.Summarize(entries)
	if sum.Channels != 10 || sum.Stereo != 2 || sum.Phantom != 3 || sum.ByKind[channels.KindDrums] != 4 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestDeriveIsStableAndContiguous(t *testing.T) {
	snap := testsupport.FullBandSnapshot()
	first := channels.Derive(snap)

	// Reordering the stored records must not change the result.
	shuffled := snap.Clone()
	for i, j := 0, len(shuffled.Microphones)-1; i < j; i, j = i+1, j-1 {
		shuffled.Microphones[i], shuffled.Microphones[j] = shuffled.Microphones[j], shuffled.Microphones[i]
	}
	for i, j := 0, len(shuffled.Instruments)-1; i < j; i, j = i+1, j-1 {
		shuffled.Instruments[i], shuffled.Instruments[j] = shuffled.Instruments[j], shuffled.Instruments[i]
	}
	second := channels.Derive(shuffled)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derive is not stable:\n%+v\n%+v", first, second)
	}
	for i, e := range first {
		if e.Number != i+1 {
			t.Fatalf("channel %d numbered %d", i, e.Number)
		}
	}
}

func TestDeriveToleratesDanglingReferences(t *testing.T) {
	snap := testsupport.ScenarioSnapshot()
	snap.Microphones = append(snap.Microphones,
		equipment.Microphone{ID: "orphan", Name: "Orphan", Type: equipment.MicDynamic, Assignment: equipment.InstrumentAssignment("deleted-kit")},
		equipment.Microphone{ID: "orphan-amb", Name: "Room", Type: equipment.MicCondenser, Usage: equipment.UsageAmbient, Assignment: equipment.MemberAssignment("deleted-member")},
	)
	snap.Instruments = append(snap.Instruments,
		equipment.Instrument{ID: "ghost-amp", Name: "Tele", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentViaAmp, AmpID: "deleted-amp", MemberID: "deleted-member"},
	)

	entries := channels.Derive(snap)
	var sources []string
	for _, e := range entries {
		sources = append(sources, e.Source)
	}
	want := []string{"Les Paul", "Singer"}
	if !reflect.DeepEqual(sources, want) {
		t.Fatalf("got %q, want %q", sources, want)
	}
}

func TestDeriveKeepsOnlyUnassignedAmbientMics(t *testing.T) {
	snap := equipment.Snapshot{
		Microphones: []equipment.Microphone{
			{ID: "amb-ghost", Name: "Amb", Type: equipment.MicCondenser, Usage: equipment.UsageAmbient, Assignment: equipment.InstrumentAssignment("deleted")},
			{ID: "amb-free", Name: "Crowd", Type: equipment.MicCondenser, Usage: equipment.UsageAmbient, PhantomPower: true},
		},
	}
	got := channels.Derive(snap)
	if len(got) != 1 {
		t.Fatalf("expected only the unassigned ambient mic, got %+v", got)
	}
	if got[0].Source != "Crowd" || got[0].Kind != channels.KindAmbient || got[0].Number != 1 {
		t.Fatalf("unexpected ambient entry %+v", got[0])
	}
}

func TestDeriveSharedVocalMicYieldsOneChannel(t *testing.T) {
	snap := equipment.Snapshot{
		Members: []equipment.BandMember{
			{ID: "a", Name: "Ann", Roles: []equipment.MemberRole{equipment.RoleVocalist}, VocalMicID: "m1", SortOrder: 1},
			{ID: "b", Name: "Bob", Roles: []equipment.MemberRole{equipment.RoleVocalist}, VocalMicID: "m1", SortOrder: 2},
		},
		Microphones: []equipment.Microphone{
			{ID: "m1", Name: "SM58", Type: equipment.MicDynamic, Usage: equipment.UsageVocal},
		},
	}
	got := channels.Derive(snap)
	if len(got) != 1 {
		t.Fatalf("expected one channel for one microphone, got %+v", got)
	}
	if got[0].Source != "Ann" || got[0].Kind != channels.KindVocal {
		t.Fatalf("expected the first member to own the mic, got %+v", got[0])
	}
}

func TestDeriveOmitsUnmikedAmpAndSharesAmp(t *testing.T) {
	snap := equipment.Snapshot{
		Amplifiers: []equipment.Amplifier{{ID: "a1", Name: "JCM800", Routing: equipment.AmpMic}},
		Instruments: []equipment.Instrument{
			{ID: "g1", Name: "Strat", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentViaAmp, AmpID: "a1", ChannelOrder: 1},
			{ID: "g2", Name: "Tele", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentViaAmp, AmpID: "a1", ChannelOrder: 2},
		},
	}
	if got := channels.Derive(snap); len(got) != 0 {
		t.Fatalf("unmiked amp must not produce channels, got %+v", got)
	}

	snap.Microphones = []equipment.Microphone{
		{ID: "m2", Name: "Room", Type: equipment.MicCondenser, Assignment: equipment.AmplifierAssignment("a1")},
		{ID: "m1", Name: "Close", Type: equipment.MicDynamic, Assignment: equipment.AmplifierAssignment("a1")},
	}
	got := channels.Derive(snap)
	if len(got) != 2 {
		t.Fatalf("expected one channel per amp mic, got %+v", got)
	}
	if got[0].Source != "Strat / Tele · Close" || got[1].Source != "Strat / Tele · Room" {
		t.Fatalf("unexpected sources %q, %q", got[0].Source, got[1].Source)
	}
	if got[0].Position != "" {
		t.Fatalf("ownerless instruments belong to the unplaced group, got %q", got[0].Position)
	}
}

func TestDeriveBackingVocalAndElectronicKit(t *testing.T) {
	snap := equipment.Snapshot{
		Members: []equipment.BandMember{
			{ID: "d", Name: "Drummer", Roles: []equipment.MemberRole{equipment.RoleDrummer}, StagePosition: equipment.PositionBackCenter},
		},
		Instruments: []equipment.Instrument{
			{ID: "kit", MemberID: "d", Name: "TD-27", Type: equipment.InstrumentDrums, Routing: equipment.InstrumentDI, MonoStereo: equipment.Stereo},
		},
		Microphones: []equipment.Microphone{
			{ID: "v", Name: "Headset", Type: equipment.MicCondenser, PhantomPower: true, Assignment: equipment.MemberAssignment("d")},
		},
	}
	got := channels.Derive(snap)
	if len(got) != 2 {
		t.Fatalf("expected kit and vocal channels, got %+v", got)
	}
	if got[0].Source != "TD-27" || got[0].Notes != channels.NoteDI || got[0].MonoStereo != equipment.Stereo {
		t.Fatalf("electronic kit should be a single DI channel: %+v", got[0])
	}
	if got[1].Notes != channels.NoteBacking || !got[1].PhantomPower {
		t.Fatalf("drummer vocal should be a backing vocal: %+v", got[1])
	}
}

func TestDeriveEmptySnapshot(t *testing.T) {
	if got := channels.Derive(equipment.Snapshot{}); len(got) != 0 {
		t.Fatalf("expected no channels, got %+v", got)
	}
}
