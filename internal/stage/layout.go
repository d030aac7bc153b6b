package stage

import (
	"math"
	"unicode/utf8"

	"backline/internal/equipment"
	"backline/internal/icons"
	"backline/internal/scene"
	"backline/internal/textutil"
)

// Node roles used on the stage plot.
const (
	RoleBackground   = "background"
	RoleCaption      = "caption"
	RoleStage        = "stage"
	RoleDivider      = "divider"
	RoleMarking      = "marking"
	RoleCableAmp     = "cable-amp"
	RoleCableConsole = "cable-console"
	RoleExit         = "exit"
	RoleInstrument   = "instrument"
	RoleAmplifier    = "amplifier"
	RoleLabel        = "label"
	RoleDILead       = "di-lead"
	RoleDI           = "di"
	RoleAmpMicLead   = "amp-mic-lead"
	RoleAmpMic       = "amp-mic"
	RoleDrumMicLead  = "drum-mic-lead"
	RoleDrumMic      = "drum-mic"
)

// ExitLabel marks where the console snake leaves the stage.
const ExitLabel = "→ Console"

var (
	ampCable     = scene.Style{Stroke: "#777777", StrokeWidth: 1.5, Dash: []float64{6, 3}}
	consoleCable = scene.Style{Stroke: "#111111", StrokeWidth: 1.5}
	leadCable    = scene.Style{Stroke: "#111111", StrokeWidth: 1.5}
)

// Layout draws the stage plot for snap. Missing glyphs leave blank space.
func Layout(snap equipment.Snapshot, set icons.Set, opts Options) *scene.Scene {
	opts = opts.normalized()
	plan := Place(snap, opts)
	idx := snap.Index()
	l := &layout{
		b:    scene.NewBuilder(CanvasWidth, CanvasHeight, PageWidthMM, PageHeightMM),
		set:  set,
		opts: opts,
		plan: plan,
		idx:  idx,
	}
	l.background()
	l.stage()
	l.cables()
	l.instruments()
	l.amplifiers()
	l.diBoxes()
	l.ampMics()
	l.drumMics()
	return l.b.Build()
}

type layout struct {
	b    *scene.Builder
	set  icons.Set
	opts Options
	plan *Plan
	idx  *equipment.Index
}

func (l *layout) background() {
	l.b.On(scene.LayerBackground)
	l.b.AddRect(RoleBackground, 0, 0, CanvasWidth, CanvasHeight, 0, scene.Style{Fill: "#ffffff"})
	caption := "STAGE PLOT"
	if l.opts.BandName != "" {
		caption += " · " + l.opts.BandName
	}
	l.b.AddText(RoleCaption, scene.Text{
		At: scene.Point{X: CanvasWidth / 2, Y: 17}, Value: caption, Size: 9, Anchor: "middle", Fill: "#c0c0c0",
	})
}

func (l *layout) stage() {
	l.b.On(scene.LayerStage)
	l.b.AddRect(RoleStage, StageX, StageY, StageW, StageH, 3, scene.Style{Fill: "#f2f2f2", Stroke: "#333333", StrokeWidth: 2})
	for _, x := range l.plan.Grid.Dividers() {
		l.b.AddLine(RoleDivider,
			scene.Point{X: x, Y: StageY + 1}, scene.Point{X: x, Y: StageY + StageH - 1},
			scene.Style{Stroke: "#d0d0d0", StrokeWidth: 1, Dash: []float64{5, 5}})
	}
	corner := scene.Text{Size: 10, Fill: "#c8c8c8"}
	corner.At, corner.Value = scene.Point{X: StageX + 12, Y: StageY + 20}, "Stage Left ▸"
	l.b.AddText(RoleMarking, corner)
	corner.At, corner.Value = scene.Point{X: StageX + 12, Y: StageY + StageH - 7}, "◂ Stage Right"
	l.b.AddText(RoleMarking, corner)

	midY := float64(StageY + StageH/2)
	side := scene.Text{Size: 18, Weight: "bold", Anchor: "middle", Fill: "#555555", Rotate: -90}
	side.At, side.Value = scene.Point{X: 30, Y: midY}, "BACK"
	l.b.AddText(RoleMarking, side)
	side.At, side.Value = scene.Point{X: CanvasWidth - 30, Y: midY}, "AUDIENCE"
	l.b.AddText(RoleMarking, side)
}

func (l *layout) cables() {
	l.b.On(scene.LayerCables)
	centerY := l.plan.Grid.CenterY()
	toConsole := 0
	trunk := func(from scene.Point) {
		l.b.AddCable(RoleCableConsole, scene.Cable{
			Points: []scene.Point{from, {X: TrunkX, Y: from.Y}, {X: TrunkX, Y: centerY}},
			Style:  consoleCable,
		})
		toConsole++
	}

	for _, slot := range l.plan.Slots {
		if slot.Kind != SlotInstrument {
			continue
		}
		inst := slot.Instrument
		switch inst.Routing {
		case equipment.InstrumentViaAmp:
			amp, ok := l.plan.Amp(inst.AmpID)
			if !ok {
				continue
			}
			start := scene.Point{X: slot.Center.X + slot.Size()/2, Y: slot.Center.Y}
			end := scene.Point{X: amp.Center.X, Y: amp.Center.Y - AmpSize/2}
			ctrl := max(math.Abs(end.X-start.X), math.Abs(end.Y-start.Y))*0.5 + 60
			l.b.AddCable(RoleCableAmp, scene.Cable{
				Points: []scene.Point{start, {X: start.X + ctrl, Y: start.Y}, {X: end.X, Y: end.Y - ctrl}, end},
				Curved: true,
				Style:  ampCable,
			})
		case equipment.InstrumentDI, equipment.InstrumentDirect:
			if slot.IsDrums() && l.hasDrumMics(inst.ID) {
				continue
			}
			startX := slot.Center.X + slot.Size()/2
			if inst.Routing == equipment.InstrumentDI {
				startX += 6 + DISize
			}
			trunk(scene.Point{X: startX, Y: slot.Center.Y})
		}
	}

	for _, amp := range l.plan.Amps {
		switch {
		case amp.Miked():
			mic := amp.MicCenter()
			trunk(scene.Point{X: mic.X + MicSize/2, Y: mic.Y})
		case amp.Amp.Routing != equipment.AmpMic:
			trunk(scene.Point{X: amp.Center.X + AmpSize/2, Y: amp.Center.Y})
		}
	}

	for _, dm := range l.plan.DrumMics {
		kit, _ := l.plan.Slot(dm.KitID)
		l.b.AddLine(RoleDrumMicLead,
			scene.Point{X: kit.Center.X + DrumSize/2, Y: dm.Center.Y},
			scene.Point{X: dm.Center.X - MicSize/2, Y: dm.Center.Y},
			leadCable)
		trunk(scene.Point{X: dm.Center.X + MicSize/2, Y: dm.Center.Y})
	}

	if toConsole == 0 {
		return
	}
	edge := float64(StageX + StageW)
	l.b.AddLine(RoleExit, scene.Point{X: TrunkX, Y: centerY}, scene.Point{X: edge - 4, Y: centerY},
		scene.Style{Stroke: "#111111", StrokeWidth: 3})
	l.b.AddPolygon(RoleExit, []scene.Point{
		{X: edge, Y: centerY}, {X: edge - 10, Y: centerY - 5}, {X: edge - 10, Y: centerY + 5},
	}, scene.Style{Fill: "#111111"})
	l.b.AddText(RoleExit, scene.Text{
		At: scene.Point{X: TrunkX - 4, Y: centerY - 6}, Value: ExitLabel, Size: 8, Weight: "bold", Anchor: "end", Fill: "#111111",
	})
}

func (l *layout) instruments() {
	l.b.On(scene.LayerInstruments)
	for _, slot := range l.plan.Slots {
		key := instrumentIcon(slot)
		l.b.AddIcon(RoleInstrument, scene.Icon{
			Key: string(key), Markup: l.set.Get(key), Center: slot.Center, Size: slot.Size(), Rotate: -90,
		})
		l.chip(slot.Member.Name, slot.Center, slot.Size())
	}
}

func (l *layout) amplifiers() {
	l.b.On(scene.LayerAmplifiers)
	for _, amp := range l.plan.Amps {
		key := icons.GuitarAmp
		if amp.Amp.Type == equipment.AmpBass {
			key = icons.BassAmp
		}
		l.b.AddIcon(RoleAmplifier, scene.Icon{
			Key: string(key), Markup: l.set.Get(key), Center: amp.Center, Size: AmpSize, Rotate: -90,
		})
		l.chip(l.ampLabel(amp.Amp), amp.Center, AmpSize)
	}
}

func (l *layout) diBoxes() {
	l.b.On(scene.LayerDIBoxes)
	for _, slot := range l.plan.Slots {
		if slot.Kind != SlotInstrument || slot.Instrument.Routing != equipment.InstrumentDI {
			continue
		}
		if slot.IsDrums() && l.hasDrumMics(slot.Instrument.ID) {
			continue
		}
		face := slot.Center.X + slot.Size()/2
		diX := face + 6
		l.b.AddLine(RoleDILead, scene.Point{X: face, Y: slot.Center.Y}, scene.Point{X: diX, Y: slot.Center.Y}, leadCable)
		l.b.AddIcon(RoleDI, scene.Icon{
			Key:    string(icons.DIBox),
			Markup: l.set.Get(icons.DIBox),
			Center: scene.Point{X: diX + DISize/2, Y: slot.Center.Y},
			Size:   DISize,
			Rotate: 90,
		})
	}
}

func (l *layout) ampMics() {
	l.b.On(scene.LayerAmpMics)
	for _, amp := range l.plan.Amps {
		if !amp.Miked() {
			continue
		}
		mic := amp.MicCenter()
		l.b.AddLine(RoleAmpMicLead,
			scene.Point{X: amp.Center.X + AmpSize/2, Y: mic.Y},
			scene.Point{X: mic.X - MicSize/2, Y: mic.Y},
			leadCable)
		key, markup := l.micGlyph()
		l.b.AddIcon(RoleAmpMic, scene.Icon{Key: string(key), Markup: markup, Center: mic, Size: MicSize, Rotate: -90})
	}
}

func (l *layout) drumMics() {
	l.b.On(scene.LayerDrumMics)
	for _, dm := range l.plan.DrumMics {
		key, markup := l.micGlyph()
		l.b.AddIcon(RoleDrumMic, scene.Icon{
			Key: string(key), Markup: markup, Center: dm.Center, Size: MicSize, Rotate: -90, FlipY: dm.Above,
		})
	}
}

// chip labels an item on its stage-left side, reading bottom to top.
func (l *layout) chip(text string, center scene.Point, size float64) {
	text = textutil.Truncate(text, l.opts.LabelBudget)
	if text == "" {
		return
	}
	w := min(float64(utf8.RuneCountInString(text)*6+14), maxChipWidth)
	l.b.AddLabel(RoleLabel, scene.Label{
		Center:   scene.Point{X: center.X - size/2 - chipGap, Y: center.Y},
		Text:     text,
		W:        w,
		H:        chipHeight,
		Radius:   6,
		Rotate:   -90,
		Size:     10,
		Fill:     "#333333",
		TextFill: "#ffffff",
	})
}

func (l *layout) ampLabel(amp equipment.Amplifier) string {
	if owner, ok := l.idx.Member(amp.MemberID); ok {
		if first := textutil.FirstName(owner.Name); first != "" {
			return first + " amp"
		}
	}
	return amp.Name
}

func (l *layout) micGlyph() (icons.Key, string) {
	if markup := l.set.Get(icons.AmpMic); markup != "" {
		return icons.AmpMic, markup
	}
	return icons.VocalMic, l.set.Get(icons.VocalMic)
}

func (l *layout) hasDrumMics(kitID string) bool {
	for _, dm := range l.plan.DrumMics {
		if dm.KitID == kitID {
			return true
		}
	}
	return false
}

func instrumentIcon(slot Slot) icons.Key {
	if slot.Kind == SlotVocal {
		return icons.VocalMic
	}
	switch slot.Instrument.Type {
	case equipment.InstrumentBass:
		return icons.Bass
	case equipment.InstrumentDrums:
		return icons.Drums
	case equipment.InstrumentKeyboard:
		return icons.Keyboard
	}
	return icons.Guitar
}
