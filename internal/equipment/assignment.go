package equipment

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AssignmentKind names the entity type a microphone is assigned to.
type AssignmentKind string

const (
	AssignNone       AssignmentKind = ""
	AssignMember     AssignmentKind = "member"
	AssignAmplifier  AssignmentKind = "amplifier"
	AssignInstrument AssignmentKind = "instrument"
)

// Assignment says what a microphone captures. The zero value is no assignment.
// Construct values with MemberAssignment, AmplifierAssignment or
// InstrumentAssignment so a kind never travels without an id.
type Assignment struct {
	kind AssignmentKind
	id   string
}

// MemberAssignment assigns a microphone to a band member.
func MemberAssignment(id string) Assignment { return newAssignment(AssignMember, id) }

// AmplifierAssignment assigns a microphone to an amplifier's speaker.
func AmplifierAssignment(id string) Assignment { return newAssignment(AssignAmplifier, id) }

// InstrumentAssignment assigns a microphone to an instrument, typically a kit.
func InstrumentAssignment(id string) Assignment { return newAssignment(AssignInstrument, id) }

func newAssignment(kind AssignmentKind, id string) Assignment {
	id = strings.TrimSpace(id)
	if id == "" {
		return Assignment{}
	}
	return Assignment{kind: kind, id: id}
}

// ParseAssignment builds an assignment from its textual kind. An empty or
// "none" kind yields the zero value.
func ParseAssignment(kind, id string) (Assignment, error) {
	switch AssignmentKind(strings.ToLower(strings.TrimSpace(kind))) {
	case AssignNone, "none":
		return Assignment{}, nil
	case AssignMember:
		return MemberAssignment(id), nil
	case AssignAmplifier:
		return AmplifierAssignment(id), nil
	case AssignInstrument:
		return InstrumentAssignment(id), nil
	}
	return Assignment{}, fmt.Errorf("unknown assignment type %q", kind)
}

func (a Assignment) Kind() AssignmentKind { return a.kind }
func (a Assignment) ID() string           { return a.id }
func (a Assignment) IsNone() bool         { return a.kind == AssignNone }

// IsZero lets yaml omitempty drop unassigned microphones.
func (a Assignment) IsZero() bool { return a.IsNone() }

func (a Assignment) String() string {
	if a.IsNone() {
		return "none"
	}
	return string(a.kind) + ":" + a.id
}

type assignmentWire struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id" yaml:"id"`
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	if a.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal(assignmentWire{Type: string(a.kind), ID: a.id})
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	var wire *assignmentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode assignment: %w", err)
	}
	if wire == nil {
		*a = Assignment{}
		return nil
	}
	parsed, err := ParseAssignment(wire.Type, wire.ID)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Assignment) MarshalYAML() (any, error) {
	if a.IsNone() {
		return nil, nil
	}
	return assignmentWire{Type: string(a.kind), ID: a.id}, nil
}

func (a *Assignment) UnmarshalYAML(node *yaml.Node) error {
	var wire assignmentWire
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("decode assignment: %w", err)
	}
	parsed, err := ParseAssignment(wire.Type, wire.ID)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
