package equipment

import (
	"slices"
	"strings"
)

// BandMember is a performer and where they stand.
type BandMember struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Roles         []MemberRole  `json:"roles" yaml:"roles" validate:"min=1,dive,enum"`
	StagePosition StagePosition `json:"stagePosition,omitempty" yaml:"stage_position,omitempty" validate:"omitempty,enum"`
	VocalMicID    string        `json:"vocalMicId,omitempty" yaml:"vocal_mic_id,omitempty"`
	Notes         string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	SortOrder     int           `json:"sortOrder" yaml:"sort_order"`
}

// HasRole reports whether the member plays role.
func (m BandMember) HasRole(role MemberRole) bool {
	return slices.Contains(m.Roles, role)
}

// Instrument is a sound source played by a member.
type Instrument struct {
	ID       string            `json:"id" yaml:"id"`
	MemberID string            `json:"memberId,omitempty" yaml:"member_id,omitempty"`
	Name     string            `json:"name" yaml:"name" validate:"required"`
	Type     InstrumentType    `json:"type" yaml:"type" validate:"enum"`
	Brand    string            `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model    string            `json:"model,omitempty" yaml:"model,omitempty"`
	Routing  InstrumentRouting `json:"routing" yaml:"routing" validate:"enum"`
	// AmpID is only meaningful when Routing is InstrumentViaAmp.
	AmpID string `json:"ampId,omitempty" yaml:"amp_id,omitempty"`
	// MonoStereo is only meaningful when Routing is not InstrumentViaAmp.
	MonoStereo   MonoStereo `json:"monoStereo,omitempty" yaml:"mono_stereo,omitempty" validate:"omitempty,enum"`
	ChannelOrder int        `json:"channelOrder" yaml:"channel_order"`
	Notes        string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Amplifier is a backline amp or cabinet.
type Amplifier struct {
	ID            string        `json:"id" yaml:"id"`
	MemberID      string        `json:"memberId,omitempty" yaml:"member_id,omitempty"`
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Type          AmpType       `json:"type" yaml:"type" validate:"enum"`
	Brand         string        `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model         string        `json:"model,omitempty" yaml:"model,omitempty"`
	Wattage       int           `json:"wattage,omitempty" yaml:"wattage,omitempty" validate:"gte=0"`
	Routing       AmpRouting    `json:"routing" yaml:"routing" validate:"enum"`
	MonoStereo    MonoStereo    `json:"monoStereo,omitempty" yaml:"mono_stereo,omitempty" validate:"omitempty,enum"`
	StagePosition StagePosition `json:"stagePosition,omitempty" yaml:"stage_position,omitempty" validate:"omitempty,enum"`
	Notes         string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	CabinetBrand  string        `json:"cabinetBrand,omitempty" yaml:"cabinet_brand,omitempty"`
	SpeakerBrand  string        `json:"speakerBrand,omitempty" yaml:"speaker_brand,omitempty"`
	SpeakerModel  string        `json:"speakerModel,omitempty" yaml:"speaker_model,omitempty"`
	SpeakerConfig SpeakerConfig `json:"speakerConfig,omitempty" yaml:"speaker_config,omitempty" validate:"omitempty,enum"`
}

// Microphone is a mic in the band's inventory.
type Microphone struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name" validate:"required"`
	Brand        string       `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model        string       `json:"model,omitempty" yaml:"model,omitempty"`
	Type         MicType      `json:"type" yaml:"type" validate:"enum"`
	PolarPattern PolarPattern `json:"polarPattern,omitempty" yaml:"polar_pattern,omitempty" validate:"omitempty,enum"`
	PhantomPower bool         `json:"phantomPower" yaml:"phantom_power"`
	MonoStereo   MonoStereo   `json:"monoStereo" yaml:"mono_stereo" validate:"enum"`
	Notes        string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Usage        MicUsage     `json:"usage,omitempty" yaml:"usage,omitempty" validate:"omitempty,enum"`
	Assignment   Assignment   `json:"assignment" yaml:"assignment,omitempty"`
}

// BrandModel joins brand and model for display.
func (m Microphone) BrandModel() string {
	return joinNonEmpty(m.Brand, m.Model)
}

// BrandModel joins brand and model for display.
func (i Instrument) BrandModel() string { return joinNonEmpty(i.Brand, i.Model) }

// BrandModel joins brand and model for display.
func (a Amplifier) BrandModel() string { return joinNonEmpty(a.Brand, a.Model) }

// BrandModel joins brand and model for display.
func (p PaEquipment) BrandModel() string { return joinNonEmpty(p.Brand, p.Model) }

// PaEquipment is house or band-supplied sound system gear.
type PaEquipment struct {
	ID          string      `json:"id" yaml:"id"`
	Category    PaCategory  `json:"category" yaml:"category" validate:"enum"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Brand       string      `json:"brand,omitempty" yaml:"brand,omitempty"`
	Model       string      `json:"model,omitempty" yaml:"model,omitempty"`
	Quantity    int         `json:"quantity" yaml:"quantity" validate:"gte=1"`
	Channels    int         `json:"channels,omitempty" yaml:"channels,omitempty" validate:"gte=0"`
	AuxSends    int         `json:"auxSends,omitempty" yaml:"aux_sends,omitempty" validate:"gte=0"`
	Wattage     int         `json:"wattage,omitempty" yaml:"wattage,omitempty" validate:"gte=0"`
	Notes       string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	MonitorType MonitorType `json:"monitorType,omitempty" yaml:"monitor_type,omitempty" validate:"omitempty,enum"`
	IEMWireless bool        `json:"iemWireless" yaml:"iem_wireless"`
}

func (m BandMember) EntityID() string  { return m.ID }
func (i Instrument) EntityID() string  { return i.ID }
func (a Amplifier) EntityID() string   { return a.ID }
func (m Microphone) EntityID() string  { return m.ID }
func (p PaEquipment) EntityID() string { return p.ID }

func (m *BandMember) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Notes = strings.TrimSpace(m.Notes)
	m.VocalMicID = strings.TrimSpace(m.VocalMicID)
	var roles []MemberRole
	for _, role := range m.Roles {
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	m.Roles = roles
}

func (i *Instrument) normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.MemberID = strings.TrimSpace(i.MemberID)
	i.AmpID = strings.TrimSpace(i.AmpID)
	if i.Routing == "" {
		i.Routing = InstrumentDI
	}
	if i.Routing == InstrumentViaAmp {
		i.MonoStereo = ""
	} else {
		i.AmpID = ""
		if i.MonoStereo == "" {
			i.MonoStereo = Mono
		}
	}
}

func (a *Amplifier) normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.MemberID = strings.TrimSpace(a.MemberID)
	if a.Routing == "" {
		a.Routing = AmpMic
	}
}

func (m *Microphone) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	if m.MonoStereo == "" {
		m.MonoStereo = Mono
	}
}

func (p *PaEquipment) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if p.Category != PaMonitor {
		p.MonitorType = ""
		p.IEMWireless = false
	}
	if p.MonitorType != MonitorIEM {
		p.IEMWireless = false
	}
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
