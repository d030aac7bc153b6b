package equipment

import "backline/internal/textutil"

// StagePosition is one of the nine depth × width stage cells.
type StagePosition string

const (
	PositionBackLeft    StagePosition = "back-left"
	PositionBackCenter  StagePosition = "back-center"
	PositionBackRight   StagePosition = "back-right"
	PositionMidLeft     StagePosition = "mid-left"
	PositionMidCenter   StagePosition = "mid-center"
	PositionMidRight    StagePosition = "mid-right"
	PositionFrontLeft   StagePosition = "front-left"
	PositionFrontCenter StagePosition = "front-center"
	PositionFrontRight  StagePosition = "front-right"
)

// Depth is a stage band measured from upstage towards the audience.
type Depth int

const (
	DepthNone Depth = iota - 1
	DepthBack
	DepthMid
	DepthFront
)

// Width is a stage band measured from stage left to stage right.
type Width int

const (
	WidthNone Width = iota - 1
	WidthLeft
	WidthCenter
	WidthRight
)

var allPositions = []StagePosition{
	PositionBackLeft, PositionBackCenter, PositionBackRight,
	PositionMidLeft, PositionMidCenter, PositionMidRight,
	PositionFrontLeft, PositionFrontCenter, PositionFrontRight,
}

// AllPositions returns the nine cells in traversal order: back to front, then
// left to right within a depth band.
func AllPositions() []StagePosition {
	out := make([]StagePosition, len(allPositions))
	copy(out, allPositions)
	return out
}

// PositionAt returns the cell for a depth and width band.
func PositionAt(d Depth, w Width) StagePosition {
	if d < DepthBack || d > DepthFront || w < WidthLeft || w > WidthRight {
		return ""
	}
	return allPositions[int(d)*3+int(w)]
}

// Valid reports whether p is one of the nine cells.
func (p StagePosition) Valid() bool {
	return p.index() >= 0
}

// Depth returns the depth band, or DepthNone for an unset or unknown cell.
func (p StagePosition) Depth() Depth {
	i := p.index()
	if i < 0 {
		return DepthNone
	}
	return Depth(i / 3)
}

// Width returns the width band, or WidthNone for an unset or unknown cell.
func (p StagePosition) Width() Width {
	i := p.index()
	if i < 0 {
		return WidthNone
	}
	return Width(i % 3)
}

// Order returns p's index in traversal order, or -1.
func (p StagePosition) Order() int {
	return p.index()
}

func (p StagePosition) Label() string {
	if !p.Valid() {
		return "—"
	}
	return textutil.SentenceCase(string(p))
}

func (p StagePosition) index() int {
	for i, candidate := range allPositions {
		if candidate == p {
			return i
		}
	}
	return -1
}
