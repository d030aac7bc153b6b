package equipment

import (
	"slices"
	"strings"

	"backline/internal/textutil"
)

// MemberRole is what a band member does on stage.
type MemberRole string

const (
	RoleVocalist    MemberRole = "vocalist"
	RoleGuitarist   MemberRole = "guitarist"
	RoleBassist     MemberRole = "bassist"
	RoleDrummer     MemberRole = "drummer"
	RoleKeyboardist MemberRole = "keyboardist"
	RoleOther       MemberRole = "other"
)

var memberRoles = []MemberRole{RoleVocalist, RoleGuitarist, RoleBassist, RoleDrummer, RoleKeyboardist, RoleOther}

func (r MemberRole) Valid() bool   { return slices.Contains(memberRoles, r) }
func (r MemberRole) Label() string { return textutil.TitleCase(string(r)) }

// InstrumentType classifies an instrument.
type InstrumentType string

const (
	InstrumentGuitar   InstrumentType = "guitar"
	InstrumentBass     InstrumentType = "bass"
	InstrumentDrums    InstrumentType = "drums"
	InstrumentKeyboard InstrumentType = "keyboard"
	InstrumentOther    InstrumentType = "other"
)

var instrumentTypes = []InstrumentType{InstrumentGuitar, InstrumentBass, InstrumentDrums, InstrumentKeyboard, InstrumentOther}

func (t InstrumentType) Valid() bool   { return slices.Contains(instrumentTypes, t) }
func (t InstrumentType) Label() string { return textutil.TitleCase(string(t)) }

// InstrumentRouting is how an instrument's signal reaches the console.
type InstrumentRouting string

const (
	InstrumentViaAmp InstrumentRouting = "amp"
	InstrumentDI     InstrumentRouting = "di"
	// InstrumentDirect plugs straight into the mixing desk ("mesa").
	InstrumentDirect InstrumentRouting = "mesa"
)

func (r InstrumentRouting) Valid() bool {
	return r == InstrumentViaAmp || r == InstrumentDI || r == InstrumentDirect
}

func (r InstrumentRouting) Label() string {
	switch r {
	case InstrumentViaAmp:
		return "Via amplifier"
	case InstrumentDI:
		return "DI (direct injection)"
	case InstrumentDirect:
		return "Direct to console"
	}
	return string(r)
}

// AmpType classifies an amplifier.
type AmpType string

const (
	AmpGuitar   AmpType = "guitar"
	AmpBass     AmpType = "bass"
	AmpKeyboard AmpType = "keyboard"
)

func (t AmpType) Valid() bool   { return t == AmpGuitar || t == AmpBass || t == AmpKeyboard }
func (t AmpType) Label() string { return textutil.TitleCase(string(t)) }

// AmpRouting is how an amplifier's signal reaches the console.
type AmpRouting string

const (
	AmpMic    AmpRouting = "mic"
	AmpDI     AmpRouting = "di"
	AmpDirect AmpRouting = "mesa"
)

func (r AmpRouting) Valid() bool { return r == AmpMic || r == AmpDI || r == AmpDirect }

func (r AmpRouting) Label() string {
	switch r {
	case AmpMic:
		return "Microphone"
	case AmpDI:
		return "DI box"
	case AmpDirect:
		return "Direct to console"
	}
	return string(r)
}

// MonoStereo is a signal's channel width.
type MonoStereo string

const (
	Mono   MonoStereo = "mono"
	Stereo MonoStereo = "stereo"
)

func (m MonoStereo) Valid() bool { return m == Mono || m == Stereo }

// Short returns the M/S marker printed in the channel list.
func (m MonoStereo) Short() string {
	if m == Stereo {
		return "S"
	}
	return "M"
}

// MicType is a microphone's transducer type.
type MicType string

const (
	MicDynamic   MicType = "dynamic"
	MicCondenser MicType = "condenser"
	MicRibbon    MicType = "ribbon"
)

func (t MicType) Valid() bool   { return t == MicDynamic || t == MicCondenser || t == MicRibbon }
func (t MicType) Label() string { return textutil.TitleCase(string(t)) }

// PolarPattern is a microphone's pickup pattern.
type PolarPattern string

const (
	PolarCardioid      PolarPattern = "cardioid"
	PolarSupercardioid PolarPattern = "supercardioid"
	PolarHypercardioid PolarPattern = "hypercardioid"
	PolarOmni          PolarPattern = "omnidirectional"
	PolarFigure8       PolarPattern = "figure-8"
)

var polarPatterns = []PolarPattern{PolarCardioid, PolarSupercardioid, PolarHypercardioid, PolarOmni, PolarFigure8}

func (p PolarPattern) Valid() bool   { return slices.Contains(polarPatterns, p) }
func (p PolarPattern) Label() string { return textutil.TitleCase(string(p)) }

// MicUsage tags what a microphone is meant to capture.
type MicUsage string

const (
	UsageInstrument    MicUsage = "instrument"
	UsageVocal         MicUsage = "vocal"
	UsageDrumsOverhead MicUsage = "drums-overhead"
	UsageDrumsSnare    MicUsage = "drums-snare"
	UsageDrumsKick     MicUsage = "drums-kick"
	UsageDrumsPack     MicUsage = "drums-pack"
	UsageAmbient       MicUsage = "ambient"
)

var micUsages = []MicUsage{UsageInstrument, UsageVocal, UsageDrumsOverhead, UsageDrumsSnare, UsageDrumsKick, UsageDrumsPack, UsageAmbient}

func (u MicUsage) Valid() bool { return slices.Contains(micUsages, u) }

// Label returns the short usage name used as a drum channel suffix.
func (u MicUsage) Label() string {
	switch u {
	case UsageDrumsOverhead:
		return "Overhead"
	case UsageDrumsSnare:
		return "Snare"
	case UsageDrumsKick:
		return "Kick"
	case UsageDrumsPack:
		return "Pack"
	case "":
		return "Mic"
	}
	return textutil.TitleCase(string(u))
}

// IsDrums reports whether the usage belongs to a drum kit.
func (u MicUsage) IsDrums() bool {
	return u == UsageDrumsOverhead || u == UsageDrumsSnare || u == UsageDrumsKick || u == UsageDrumsPack
}

// SpeakerConfig describes an amplifier cabinet's speaker layout.
type SpeakerConfig string

var speakerConfigs = []SpeakerConfig{"1x12", "2x12", "4x12", "1x15", "2x15", "4x10", "8x10", "2x10", "custom"}

func (c SpeakerConfig) Valid() bool { return slices.Contains(speakerConfigs, c) }

func (c SpeakerConfig) Label() string {
	if c == "custom" {
		return "Custom"
	}
	count, size, ok := strings.Cut(string(c), "x")
	if !ok || count == "" || size == "" {
		return string(c)
	}
	return count + "×" + size + `"`
}

// PaCategory groups PA equipment in the rider.
type PaCategory string

const (
	PaConsole     PaCategory = "console"
	PaMainSpeaker PaCategory = "main-speaker"
	PaSubwoofer   PaCategory = "subwoofer"
	PaMonitor     PaCategory = "monitor"
	PaDIBox       PaCategory = "di-box"
	PaPowerAmp    PaCategory = "power-amp"
	PaOther       PaCategory = "other"
)

// PaCategories returns every category in rider display order.
func PaCategories() []PaCategory {
	return []PaCategory{PaConsole, PaMainSpeaker, PaSubwoofer, PaMonitor, PaDIBox, PaPowerAmp, PaOther}
}

func (c PaCategory) Valid() bool { return slices.Contains(PaCategories(), c) }

func (c PaCategory) Label() string {
	switch c {
	case PaConsole:
		return "Mixing console"
	case PaDIBox:
		return "DI box"
	case PaMonitor:
		return "Monitors"
	}
	return textutil.SentenceCase(string(c))
}

// MonitorType distinguishes wedges from in-ear monitors.
type MonitorType string

const (
	MonitorSpeaker MonitorType = "speaker"
	MonitorIEM     MonitorType = "iem"
)

func (t MonitorType) Valid() bool { return t == MonitorSpeaker || t == MonitorIEM }

func (t MonitorType) Label() string {
	switch t {
	case MonitorSpeaker:
		return "Stage speaker"
	case MonitorIEM:
		return "In-ear monitor (IEM)"
	}
	return string(t)
}
