package channels

import "backline/internal/equipment"

// Kind says which part of the rig a channel comes from.
type Kind string

const (
	KindInstrument Kind = "instrument"
	KindAmplifier  Kind = "amplifier"
	KindDrums      Kind = "drums"
	KindVocal      Kind = "vocal"
	KindAmbient    Kind = "ambient"
)

// Column text used in the amplifier column.
const (
	AmpColumnDI     = "DI Box"
	AmpColumnDirect = "—"
)

// Notes attached to channels that have no microphone.
const (
	NoteDI      = "DI"
	NoteDirect  = "Direct"
	NoteBacking = "Backing vocal"
)

// MicDetails describes the microphone feeding a channel.
type MicDetails struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Brand        string                 `json:"brand,omitempty"`
	Model        string                 `json:"model,omitempty"`
	Type         equipment.MicType      `json:"type"`
	PolarPattern equipment.PolarPattern `json:"polarPattern,omitempty"`
}

// Entry is one console input.
type Entry struct {
	Number       int                     `json:"number"`
	Source       string                  `json:"source"`
	Member       string                  `json:"member,omitempty"`
	MemberID     string                  `json:"memberId,omitempty"`
	Amplifier    string                  `json:"amplifier,omitempty"`
	Kind         Kind                    `json:"kind"`
	Position     equipment.StagePosition `json:"position,omitempty"`
	MonoStereo   equipment.MonoStereo    `json:"monoStereo"`
	PhantomPower bool                    `json:"phantomPower"`
	Mic          *MicDetails             `json:"mic,omitempty"`
	Notes        string                  `json:"notes,omitempty"`
}

// Summary totals a channel list.
type Summary struct {
	Channels int          `json:"channels"`
	Stereo   int          `json:"stereo"`
	Phantom  int          `json:"phantom"`
	Miked    int          `json:"miked"`
	ByKind   map[Kind]int `json:"byKind"`
}

// Summarize counts channels by width, phantom power and kind.
func Summarize(entries []Entry) Summary {
	s := Summary{Channels: len(entries), ByKind: make(map[Kind]int)}
	for _, e := range entries {
		if e.MonoStereo == equipment.Stereo {
			s.Stereo++
		}
		if e.PhantomPower {
			s.Phantom++
		}
		if e.Mic != nil {
			s.Miked++
		}
		s.ByKind[e.Kind]++
	}
	return s
}

func micDetails(mic equipment.Microphone) *MicDetails {
	return &MicDetails{
		ID:           mic.ID,
		Name:         mic.Name,
		Brand:        mic.Brand,
		Model:        mic.Model,
		Type:         mic.Type,
		PolarPattern: mic.PolarPattern,
	}
}
