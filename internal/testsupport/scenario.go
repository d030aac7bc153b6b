package testsupport

import "backline/internal/equipment"

// Fixed ids used by ScenarioSnapshot.
const (
	SingerID    = "member-singer"
	GuitaristID = "member-guitarist"
	LesPaulID   = "instrument-les-paul"
	Amp1ID      = "amp-1"
	MicAID      = "mic-a"
)

// ScenarioSnapshot returns the two-channel reference band: a singer at front
// center with a dynamic vocal mic, and a guitarist at back left whose Les Paul
// feeds an amp that reaches the console through a DI.
func ScenarioSnapshot() equipment.Snapshot {
	return equipment.Snapshot{
		Members: []equipment.BandMember{
			{
				ID:            SingerID,
				Name:          "Singer",
				Roles:         []equipment.MemberRole{equipment.RoleVocalist},
				StagePosition: equipment.PositionFrontCenter,
				VocalMicID:    MicAID,
				SortOrder:     1,
			},
			{
				ID:            GuitaristID,
				Name:          "Guitarist",
				Roles:         []equipment.MemberRole{equipment.RoleGuitarist},
				StagePosition: equipment.PositionBackLeft,
				SortOrder:     2,
			},
		},
		Instruments: []equipment.Instrument{
			{
				ID:           LesPaulID,
				MemberID:     GuitaristID,
				Name:         "Les Paul",
				Type:         equipment.InstrumentGuitar,
				Routing:      equipment.InstrumentViaAmp,
				AmpID:        Amp1ID,
				ChannelOrder: 1,
			},
		},
		Amplifiers: []equipment.Amplifier{
			{
				ID:            Amp1ID,
				MemberID:      GuitaristID,
				Name:          "Amp 1",
				Type:          equipment.AmpGuitar,
				Routing:       equipment.AmpDI,
				StagePosition: equipment.PositionBackLeft,
			},
		},
		Microphones: []equipment.Microphone{
			{
				ID:         MicAID,
				Name:       "Mic A",
				Type:       equipment.MicDynamic,
				MonoStereo: equipment.Mono,
				Usage:      equipment.UsageVocal,
			},
		},
	}
}

// FullBandSnapshot extends ScenarioSnapshot with a singing bassist whose amp is
// miked, a miked drum kit, a stereo keyboard on DI, an ambient mic and some PA
// equipment.
func FullBandSnapshot() equipment.Snapshot {
	snap := ScenarioSnapshot()
	snap.Members = append(snap.Members,
		equipment.BandMember{ID: "member-bassist", Name: "Bassist", Roles: []equipment.MemberRole{equipment.RoleBassist, equipment.RoleVocalist}, StagePosition: equipment.PositionBackRight, VocalMicID: "mic-b", SortOrder: 3},
		equipment.BandMember{ID: "member-drummer", Name: "Drummer", Roles: []equipment.MemberRole{equipment.RoleDrummer}, StagePosition: equipment.PositionBackCenter, SortOrder: 4},
		equipment.BandMember{ID: "member-keys", Name: "Keys", Roles: []equipment.MemberRole{equipment.RoleKeyboardist}, StagePosition: equipment.PositionFrontLeft, SortOrder: 5},
	)
	snap.Instruments = append(snap.Instruments,
		equipment.Instrument{ID: "instrument-jazz-bass", MemberID: "member-bassist", Name: "Jazz Bass", Type: equipment.InstrumentBass, Routing: equipment.InstrumentViaAmp, AmpID: "amp-2", ChannelOrder: 2},
		equipment.Instrument{ID: "instrument-kit", MemberID: "member-drummer", Name: "Kit", Type: equipment.InstrumentDrums, Routing: equipment.InstrumentDirect, ChannelOrder: 3},
		equipment.Instrument{ID: "instrument-nord", MemberID: "member-keys", Name: "Nord Stage", Type: equipment.InstrumentKeyboard, Routing: equipment.InstrumentDI, MonoStereo: equipment.Stereo, ChannelOrder: 4},
	)
	snap.Amplifiers = append(snap.Amplifiers,
		equipment.Amplifier{ID: "amp-2", MemberID: "member-bassist", Name: "Ampeg SVT", Type: equipment.AmpBass, Wattage: 300, Routing: equipment.AmpMic, StagePosition: equipment.PositionBackRight, SpeakerConfig: "8x10"},
	)
	snap.Microphones = append(snap.Microphones,
		equipment.Microphone{ID: "mic-b", Name: "Mic B", Brand: "Shure", Model: "SM58", Type: equipment.MicDynamic, MonoStereo: equipment.Mono, Usage: equipment.UsageVocal},
		equipment.Microphone{ID: "mic-kick", Name: "Kick In", Brand: "AKG", Model: "D112", Type: equipment.MicDynamic, MonoStereo: equipment.Mono, Usage: equipment.UsageDrumsKick, Assignment: equipment.InstrumentAssignment("instrument-kit")},
		equipment.Microphone{ID: "mic-snare", Name: "Snare Top", Brand: "Shure", Model: "SM57", Type: equipment.MicDynamic, MonoStereo: equipment.Mono, Usage: equipment.UsageDrumsSnare, Assignment: equipment.InstrumentAssignment("instrument-kit")},
		equipment.Microphone{ID: "mic-oh-l", Name: "OH L", Brand: "Rode", Model: "NT5", Type: equipment.MicCondenser, PhantomPower: true, MonoStereo: equipment.Mono, Usage: equipment.UsageDrumsOverhead, Assignment: equipment.InstrumentAssignment("instrument-kit")},
		equipment.Microphone{ID: "mic-oh-r", Name: "OH R", Brand: "Rode", Model: "NT5", Type: equipment.MicCondenser, PhantomPower: true, MonoStereo: equipment.Mono, Usage: equipment.UsageDrumsOverhead, Assignment: equipment.InstrumentAssignment("instrument-kit")},
		equipment.Microphone{ID: "mic-svt", Name: "Bass Cab", Brand: "Sennheiser", Model: "MD421", Type: equipment.MicDynamic, MonoStereo: equipment.Mono, Usage: equipment.UsageInstrument, Assignment: equipment.AmplifierAssignment("amp-2")},
		equipment.Microphone{ID: "mic-amb", Name: "Crowd", Type: equipment.MicCondenser, PhantomPower: true, MonoStereo: equipment.Stereo, Usage: equipment.UsageAmbient},
	)
	snap.PA = []equipment.PaEquipment{
		{ID: "pa-desk", Category: equipment.PaConsole, Name: "X32", Brand: "Behringer", Quantity: 1, Channels: 32, AuxSends: 16},
		{ID: "pa-iem", Category: equipment.PaMonitor, Name: "PSM300", Brand: "Shure", Quantity: 3, MonitorType: equipment.MonitorIEM, IEMWireless: true},
		{ID: "pa-wedge", Category: equipment.PaMonitor, Name: "Wedge", Quantity: 2, MonitorType: equipment.MonitorSpeaker},
	}
	return snap
}
