package rider

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strconv"
	"strings"
	"time"

	"backline/internal/channels"
	"backline/internal/equipment"
	"backline/internal/icons"
	"backline/internal/scene"
	"backline/internal/textutil"
)

//go:embed templates/rider.html.tmpl
var templateFS embed.FS

// Section headings on the equipment page.
const (
	HeadingInstruments = "Instruments"
	HeadingAmplifiers  = "Amplifiers"
	HeadingMicrophones = "Microphones"
	HeadingBacking     = "Backing vocals"
	HeadingPA          = "PA / Sound System"
)

// Pages is the page count of every assembled rider.
const Pages = 4

const (
	monoGlyph   = `<svg width="16" height="16" viewBox="0 0 16 16"><circle cx="8" cy="8" r="7" fill="none" stroke="#111" stroke-width="2"/><circle cx="8" cy="8" r="2.5" fill="#111"/></svg>`
	stereoGlyph = `<svg width="28" height="16" viewBox="0 0 28 16"><circle cx="6" cy="8" r="6" fill="none" stroke="#111" stroke-width="2"/><circle cx="6" cy="8" r="2" fill="#111"/><circle cx="22" cy="8" r="6" fill="none" stroke="#111" stroke-width="2"/><circle cx="22" cy="8" r="2" fill="#111"/></svg>`
)

var riderTemplate = template.Must(template.New("rider.html.tmpl").Funcs(template.FuncMap{
	"monoGlyph":   func() template.HTML { return template.HTML(monoGlyph) },
	"stereoGlyph": func() template.HTML { return template.HTML(stereoGlyph) },
}).ParseFS(templateFS, "templates/rider.html.tmpl"))

// Meta holds the cover page text.
type Meta struct {
	Band     string
	Title    string
	Subtitle string
	// Language is a BCP 47 tag for the lang attribute and the cover date.
	Language string
	Date     time.Time
}

// Input is everything a rider is assembled from.
type Input struct {
	Meta     Meta
	Snapshot equipment.Snapshot
	Channels []channels.Entry
	// StageSVG is the rendered stage plot, embedded verbatim.
	StageSVG string
	// Icons decorate the instrument list. Missing glyphs are skipped.
	Icons icons.Set
}

// Document is an assembled rider.
type Document struct {
	Title    string
	Band     string
	HTML     []byte
	Pages    int
	Channels int
}

// Assemble renders the rider document. It fails only when the stage plot is
// missing or the template cannot execute.
func Assemble(in Input) (*Document, error) {
	if strings.TrimSpace(in.StageSVG) == "" {
		return nil, errors.New("assemble rider: stage plot is empty")
	}
	view := buildView(in)

	var buf bytes.Buffer
	if err := riderTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("assemble rider: %w", err)
	}
	return &Document{
		Title:    view.Title,
		Band:     view.Band,
		HTML:     buf.Bytes(),
		Pages:    Pages,
		Channels: len(in.Channels),
	}, nil
}

type view struct {
	Lang      string
	Band      string
	Title     string
	Subtitle  string
	Date      string
	StageSVG  template.HTML
	Channels  []channelRow
	Left      []section
	Right     []section
	PAHeading string
	PA        []section
}

type channelRow struct {
	Number    int
	Member    string
	Amplifier string
	Source    string
	MicBrand  string
	MicModel  string
	MicType   string
	Stereo    bool
	Phantom   bool
	Notes     string
}

type section struct {
	Title string
	Items []item
}

type item struct {
	Text string
	Icon template.URL
}

func buildView(in Input) view {
	meta := in.Meta
	v := view{
		Lang:      meta.Language,
		Band:      cmpOr(meta.Band, "Band"),
		Title:     cmpOr(meta.Title, "Technical Rider"),
		Subtitle:  meta.Subtitle,
		Date:      FormatDate(meta.Date, meta.Language),
		StageSVG:  template.HTML(in.StageSVG),
		Channels:  channelRows(in.Channels),
		PAHeading: HeadingPA,
	}
	if v.Lang == "" {
		v.Lang = "en"
	}

	snap := in.Snapshot
	v.Left = nonEmpty(
		section{Title: HeadingInstruments, Items: instrumentItems(snap, in.Icons)},
		section{Title: HeadingAmplifiers, Items: amplifierItems(snap)},
	)
	v.Right = nonEmpty(
		section{Title: HeadingMicrophones, Items: microphoneItems(snap)},
		section{Title: HeadingBacking, Items: backingItems(snap)},
	)
	v.PA = paSections(snap)
	return v
}

func channelRows(entries []channels.Entry) []channelRow {
	rows := make([]channelRow, 0, len(entries))
	for _, e := range entries {
		row := channelRow{
			Number:    e.Number,
			Member:    textutil.OrDash(e.Member),
			Amplifier: textutil.OrDash(e.Amplifier),
			Source:    e.Source,
			MicBrand:  "—",
			MicModel:  "—",
			MicType:   "—",
			Stereo:    e.MonoStereo == equipment.Stereo,
			Phantom:   e.PhantomPower,
			Notes:     e.Notes,
		}
		if e.Mic != nil {
			row.MicBrand = textutil.OrDash(e.Mic.Brand)
			row.MicModel = textutil.OrDash(cmpOr(e.Mic.Model, e.Mic.Name))
			if e.Mic.Type != "" {
				row.MicType = e.Mic.Type.Label()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func instrumentItems(snap equipment.Snapshot, set icons.Set) []item {
	insts := slices.Clone(snap.Instruments)
	equipment.SortInstruments(insts)
	out := make([]item, 0, len(insts))
	for _, inst := range insts {
		text := inst.Name
		if bm := inst.BrandModel(); bm != "" {
			text += " — " + bm
		}
		it := item{Text: text}
		if markup := set.Get(instrumentIcon(inst.Type)); markup != "" {
			it.Icon = template.URL(scene.DataURI(markup))
		}
		out = append(out, it)
	}
	return out
}

func amplifierItems(snap equipment.Snapshot) []item {
	amps := slices.Clone(snap.Amplifiers)
	equipment.SortAmplifiers(amps)
	out := make([]item, 0, len(amps))
	for _, amp := range amps {
		out = append(out, item{Text: AmpDescription(amp)})
	}
	return out
}

// AmpDescription renders an amplifier line: name, wattage, brand and model,
// then cabinet details in parentheses.
func AmpDescription(amp equipment.Amplifier) string {
	text := amp.Name
	if amp.Wattage > 0 {
		text += " " + strconv.Itoa(amp.Wattage) + "W"
	}
	if bm := amp.BrandModel(); bm != "" {
		text += " — " + bm
	}
	if amp.CabinetBrand != "" || amp.SpeakerConfig != "" {
		var cab []string
		for _, part := range []string{amp.CabinetBrand, amp.SpeakerConfig.Label(), amp.SpeakerBrand, amp.SpeakerModel} {
			if part != "" {
				cab = append(cab, part)
			}
		}
		text += " (" + strings.Join(cab, " ") + ")"
	}
	return text
}

func microphoneItems(snap equipment.Snapshot) []item {
	mics := slices.Clone(snap.Microphones)
	equipment.SortMicrophones(mics)
	out := make([]item, 0, len(mics))
	for _, mic := range mics {
		text := mic.Name + " — " + mic.Type.Label()
		if mic.PhantomPower {
			text += " (+48V)"
		}
		if mic.Usage != "" {
			text += " [" + mic.Usage.Label() + "]"
		}
		out = append(out, item{Text: text})
	}
	return out
}

// backingItems lists members who sing without being the band's vocalists.
// The mic is resolved the same way as for the channel list.
func backingItems(snap equipment.Snapshot) []item {
	idx := snap.Index()
	members := slices.Clone(snap.Members)
	equipment.SortMembers(members)
	var out []item
	for _, m := range members {
		if m.HasRole(equipment.RoleVocalist) {
			continue
		}
		mic, ok := idx.VocalMic(m)
		if !ok {
			continue
		}
		text := m.Name + " (backing) — " + mic.Name
		if bm := mic.BrandModel(); bm != "" {
			text += " · " + bm
		}
		out = append(out, item{Text: text})
	}
	return out
}

func paSections(snap equipment.Snapshot) []section {
	items := slices.Clone(snap.PA)
	equipment.SortPA(items)
	var out []section
	for _, cat := range equipment.PaCategories() {
		var group []item
		for _, p := range items {
			if p.Category == cat {
				group = append(group, item{Text: PADescription(p)})
			}
		}
		if len(group) > 0 {
			out = append(out, section{Title: cat.Label(), Items: group})
		}
	}
	return out
}

// PADescription renders a PA line: quantity, name, brand and model, then
// console or monitor details.
func PADescription(p equipment.PaEquipment) string {
	var b strings.Builder
	if p.Quantity > 1 {
		fmt.Fprintf(&b, "%dx ", p.Quantity)
	}
	b.WriteString(p.Name)
	if bm := p.BrandModel(); bm != "" {
		b.WriteString(" — " + bm)
	}
	if p.Wattage > 0 {
		fmt.Fprintf(&b, " %dW", p.Wattage)
	}
	if p.Category == equipment.PaConsole && p.Channels > 0 {
		fmt.Fprintf(&b, " (%d ch", p.Channels)
		if p.AuxSends > 0 {
			fmt.Fprintf(&b, ", %d aux", p.AuxSends)
		}
		b.WriteString(")")
	}
	if p.Category == equipment.PaMonitor && p.MonitorType != "" {
		switch p.MonitorType {
		case equipment.MonitorIEM:
			if p.IEMWireless {
				b.WriteString(" [IEM wireless]")
			} else {
				b.WriteString(" [IEM wired]")
			}
		default:
			b.WriteString(" [Speaker]")
		}
	}
	return b.String()
}

func nonEmpty(sections ...section) []section {
	out := sections[:0]
	for _, s := range sections {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func instrumentIcon(t equipment.InstrumentType) icons.Key {
	switch t {
	case equipment.InstrumentBass:
		return icons.Bass
	case equipment.InstrumentDrums:
		return icons.Drums
	case equipment.InstrumentKeyboard:
		return icons.Keyboard
	}
	return icons.Guitar
}

func cmpOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
