package stage_test

import (
	"strings"
	"testing"

	"backline/internal/equipment"
	"backline/internal/icons"
	"backline/internal/scene"
	"backline/internal/stage"
	"backline/internal/testsupport"
)

func fullSet() icons.Set {
	set := icons.Set{}
	for _, key := range icons.Keys() {
		set[key] = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`
	}
	return set
}

func TestEmptyStageHasOnlyMarkings(t *testing.T) {
	sc := stage.Layout(equipment.Snapshot{}, fullSet(), stage.DefaultOptions())

	if sc.Width != stage.CanvasWidth || sc.Height != stage.CanvasHeight {
		t.Fatalf("unexpected canvas %vx%v", sc.Width, sc.Height)
	}
	if got := sc.WithRole(stage.RoleStage); len(got) != 1 {
		t.Fatalf("expected one stage rectangle, got %d", len(got))
	}
	for _, layer := range []scene.Layer{
		scene.LayerCables, scene.LayerInstruments, scene.LayerAmplifiers,
		scene.LayerDIBoxes, scene.LayerAmpMics, scene.LayerDrumMics,
	} {
		if nodes := sc.NodesIn(layer); len(nodes) != 0 {
			t.Fatalf("expected empty %s layer, got %d nodes", layer, len(nodes))
		}
	}
	if got := sc.WithRole(stage.RoleDivider); len(got) != 2 {
		t.Fatalf("expected two dividers, got %d", len(got))
	}
}

func TestClusterOffsetsAreFixedAndDistinct(t *testing.T) {
	want := map[int][]scene.Point{
		1: {{}},
		2: {{X: -90}, {X: 90}},
		3: {{X: -120}, {}, {X: 120}},
		4: {{X: -90, Y: -80}, {X: 90, Y: -80}, {X: -90, Y: 80}, {X: 90, Y: 80}},
		5: {{X: -130}, {}, {X: 130}, {X: -130, Y: 130}, {Y: 130}},
	}
	for n := 1; n <= 5; n++ {
		got := stage.ClusterOffsets(n)
		if len(got) != n {
			t.Fatalf("n=%d: expected %d offsets, got %d", n, n, len(got))
		}
		seen := make(map[scene.Point]bool)
		for i, p := range got {
			if p != want[n][i] {
				t.Fatalf("n=%d offset %d: got %+v want %+v", n, i, p, want[n][i])
			}
			if seen[p] {
				t.Fatalf("n=%d: duplicate offset %+v", n, p)
			}
			seen[p] = true
		}
		if again := stage.ClusterOffsets(n); len(again) != n || again[n-1] != got[n-1] {
			t.Fatalf("n=%d: offsets not deterministic", n)
		}
	}
	pair := stage.ClusterOffsets(2)
	if pair[0].X != -pair[1].X || pair[0].Y != pair[1].Y {
		t.Fatalf("expected symmetric pair, got %+v", pair)
	}
	if stage.ClusterOffsets(0) != nil {
		t.Fatal("expected no offsets for zero items")
	}
}

func TestGridCells(t *testing.T) {
	three := stage.NewGrid(3)
	cases := []struct {
		pos  equipment.StagePosition
		want scene.Point
	}{
		{equipment.PositionBackLeft, scene.Point{X: 173, Y: 205}},
		{equipment.PositionMidCenter, scene.Point{X: 400, Y: 559}},
		{equipment.PositionFrontRight, scene.Point{X: 627, Y: 913}},
	}
	for _, tc := range cases {
		got, ok := three.Cell(tc.pos)
		if !ok || got != tc.want {
			t.Fatalf("%s: got %+v (%v) want %+v", tc.pos, got, ok, tc.want)
		}
	}
	if _, ok := three.Cell(""); ok {
		t.Fatal("expected unset position to have no cell")
	}
	if _, ok := three.Cell("upstage"); ok {
		t.Fatal("expected unknown position to have no cell")
	}

	two := stage.NewGrid(2)
	mid, _ := two.Cell(equipment.PositionMidCenter)
	front, _ := two.Cell(equipment.PositionFrontCenter)
	if mid != front {
		t.Fatalf("expected mid to fold into front with two bands, got %+v and %+v", mid, front)
	}
	if len(two.Dividers()) != 1 {
		t.Fatalf("expected one divider with two bands, got %v", two.Dividers())
	}
}

func TestScenarioLayout(t *testing.T) {
	opts := stage.DefaultOptions()
	opts.BandName = "Test Band"
	sc := stage.Layout(testsupport.ScenarioSnapshot(), fullSet(), opts)

	curves := sc.WithRole(stage.RoleCableAmp)
	if len(curves) != 1 || curves[0].Kind != scene.KindCurve {
		t.Fatalf("expected one instrument to amp curve, got %+v", curves)
	}
	want := []scene.Point{{X: 238, Y: 205}, {X: 330.5, Y: 205}, {X: 173, Y: 57.5}, {X: 173, Y: 150}}
	for i, p := range curves[0].Points {
		if p != want[i] {
			t.Fatalf("curve point %d: got %+v want %+v", i, p, want[i])
		}
	}

	console := sc.WithRole(stage.RoleCableConsole)
	if len(console) != 1 {
		t.Fatalf("expected the DI amp cable only, got %d", len(console))
	}
	last := console[0].Points[len(console[0].Points)-1]
	if last.X != stage.TrunkX || last.Y != 559 {
		t.Fatalf("expected cable to end on the trunk centre, got %+v", last)
	}
	exit := sc.WithRole(stage.RoleExit)
	if len(exit) != 3 || exit[2].Text != stage.ExitLabel {
		t.Fatalf("expected exit arrow with label, got %+v", exit)
	}

	instruments := sc.WithRole(stage.RoleInstrument)
	if len(instruments) != 2 {
		t.Fatalf("expected guitar and vocal slot icons, got %d", len(instruments))
	}
	if instruments[0].Key != string(icons.Guitar) || instruments[1].Key != string(icons.VocalMic) {
		t.Fatalf("unexpected icon keys %q %q", instruments[0].Key, instruments[1].Key)
	}
	if instruments[1].Center() != (scene.Point{X: 627, Y: 559}) {
		t.Fatalf("expected singer at front-center, got %+v", instruments[1].Center())
	}

	var labels []string
	for _, n := range sc.WithRole(stage.RoleLabel) {
		labels = append(labels, n.Text)
	}
	if strings.Join(labels, ",") != "Guitarist,Singer,Guitarist amp" {
		t.Fatalf("unexpected labels %v", labels)
	}
	captions := sc.WithRole(stage.RoleCaption)
	if len(captions) != 1 || captions[0].Text != "STAGE PLOT · Test Band" {
		t.Fatalf("unexpected caption %+v", captions)
	}
}

func TestFullBandLayout(t *testing.T) {
	sc := stage.Layout(testsupport.FullBandSnapshot(), fullSet(), stage.DefaultOptions())

	if got := len(sc.WithRole(stage.RoleCableAmp)); got != 2 {
		t.Fatalf("expected two amp cables, got %d", got)
	}
	// keyboard DI, DI amp, miked bass amp, four drum mics
	if got := len(sc.WithRole(stage.RoleCableConsole)); got != 7 {
		t.Fatalf("expected seven console cables, got %d", got)
	}
	if got := len(sc.WithRole(stage.RoleDI)); got != 1 {
		t.Fatalf("expected one DI box, got %d", got)
	}
	if got := len(sc.WithRole(stage.RoleAmpMic)); got != 1 {
		t.Fatalf("expected one amp mic, got %d", got)
	}
	amps := sc.WithRole(stage.RoleAmplifier)
	if len(amps) != 2 || amps[1].Key != string(icons.BassAmp) {
		t.Fatalf("unexpected amplifiers %+v", amps)
	}

	mics := sc.WithRole(stage.RoleDrumMic)
	if len(mics) != 4 {
		t.Fatalf("expected four drum mics, got %d", len(mics))
	}
	kitY := 559.0
	for i, m := range mics {
		c := m.Center()
		if c.X != 290 {
			t.Fatalf("drum mic %d: expected x 290, got %v", i, c.X)
		}
		above := i%2 == 1
		if m.FlipY != above {
			t.Fatalf("drum mic %d: flip %v, want %v", i, m.FlipY, above)
		}
		if above != (c.Y < kitY) {
			t.Fatalf("drum mic %d: y %v on wrong side of kit", i, c.Y)
		}
	}
	if !(mics[2].Center().Y > mics[0].Center().Y) || !(mics[3].Center().Y < mics[1].Center().Y) {
		t.Fatal("expected second pair further from the kit than the first")
	}
}

func TestLayerOrderFollowsRenderingOrder(t *testing.T) {
	sc := stage.Layout(testsupport.FullBandSnapshot(), fullSet(), stage.DefaultOptions())
	var prev scene.Layer
	for i, n := range sc.Nodes() {
		if i > 0 && n.Layer < prev {
			t.Fatalf("node %d on %s painted after %s", i, n.Layer, prev)
		}
		prev = n.Layer
	}
	firstCable, firstIcon := -1, -1
	for i, n := range sc.Nodes() {
		if firstCable < 0 && n.Layer == scene.LayerCables {
			firstCable = i
		}
		if firstIcon < 0 && n.Kind == scene.KindIcon {
			firstIcon = i
		}
	}
	if firstCable < 0 || firstIcon < firstCable {
		t.Fatalf("expected cables before icons, got cable %d icon %d", firstCable, firstIcon)
	}
}

func TestMissingGlyphsLeaveBlankSpace(t *testing.T) {
	sc := stage.Layout(testsupport.FullBandSnapshot(), icons.Set{}, stage.DefaultOptions())
	for _, n := range sc.Nodes() {
		if n.Kind == scene.KindIcon {
			t.Fatalf("expected no icons without glyphs, got %+v", n)
		}
	}
	if len(sc.WithRole(stage.RoleLabel)) == 0 || len(sc.WithRole(stage.RoleCableConsole)) == 0 {
		t.Fatal("expected labels and cables to survive missing glyphs")
	}
}

func TestAmpMicFallsBackToVocalGlyph(t *testing.T) {
	set := fullSet()
	delete(set, icons.AmpMic)
	sc := stage.Layout(testsupport.FullBandSnapshot(), set, stage.DefaultOptions())
	for _, n := range sc.WithRole(stage.RoleDrumMic) {
		if n.Key != string(icons.VocalMic) {
			t.Fatalf("expected vocal mic fallback, got %q", n.Key)
		}
	}
}

func TestLabelsTruncateAndAmpFallsBackToName(t *testing.T) {
	snap := equipment.Snapshot{
		Members: []equipment.BandMember{{
			ID: "m", Name: "Bartholomew Longname", Roles: []equipment.MemberRole{equipment.RoleGuitarist},
			StagePosition: equipment.PositionMidLeft,
		}},
		Instruments: []equipment.Instrument{{ID: "i", MemberID: "m", Name: "Tele", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentDirect}},
		Amplifiers:  []equipment.Amplifier{{ID: "a", Name: "Spare Combo", Type: equipment.AmpGuitar, Routing: equipment.AmpMic, StagePosition: equipment.PositionMidRight}},
	}
	sc := stage.Layout(snap, fullSet(), stage.DefaultOptions())
	labels := sc.WithRole(stage.RoleLabel)
	if len(labels) != 2 {
		t.Fatalf("expected two labels, got %d", len(labels))
	}
	if labels[0].Text != "Bartholomew L…" {
		t.Fatalf("unexpected truncated label %q", labels[0].Text)
	}
	if labels[0].W != 98 {
		t.Fatalf("unexpected chip width %v", labels[0].W)
	}
	if labels[1].Text != "Spare Combo" {
		t.Fatalf("expected amp name for ownerless amp, got %q", labels[1].Text)
	}
	// an unmiked mic-routed amp has no console run
	if got := len(sc.WithRole(stage.RoleCableConsole)); got != 1 {
		t.Fatalf("expected only the direct instrument cable, got %d", got)
	}
}

func TestDanglingReferencesAreSkipped(t *testing.T) {
	snap := testsupport.ScenarioSnapshot()
	snap.Instruments[0].AmpID = "amp-gone"
	snap.Instruments = append(snap.Instruments, equipment.Instrument{
		ID: "orphan", MemberID: "member-gone", Name: "Orphan", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentDI,
	})
	snap.Microphones = append(snap.Microphones, equipment.Microphone{
		ID: "m", Name: "Loose", Usage: equipment.UsageDrumsKick, Assignment: equipment.InstrumentAssignment("kit-gone"),
	})
	sc := stage.Layout(snap, fullSet(), stage.DefaultOptions())
	if got := len(sc.WithRole(stage.RoleCableAmp)); got != 0 {
		t.Fatalf("expected no curve to a missing amp, got %d", got)
	}
	if got := len(sc.WithRole(stage.RoleInstrument)); got != 2 {
		t.Fatalf("expected orphan instrument to be left off, got %d icons", got)
	}
	if got := len(sc.WithRole(stage.RoleDrumMic)); got != 0 {
		t.Fatalf("expected no drum mics, got %d", got)
	}
}

func TestPlaceClustersSharedCells(t *testing.T) {
	snap := equipment.Snapshot{
		Members: []equipment.BandMember{{ID: "m", Name: "Multi", Roles: []equipment.MemberRole{equipment.RoleOther}, StagePosition: equipment.PositionFrontCenter}},
		Instruments: []equipment.Instrument{
			{ID: "b", MemberID: "m", Name: "B", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentDI, ChannelOrder: 2},
			{ID: "a", MemberID: "m", Name: "A", Type: equipment.InstrumentGuitar, Routing: equipment.InstrumentDI, ChannelOrder: 1},
		},
	}
	plan := stage.Place(snap, stage.DefaultOptions())
	if len(plan.Slots) != 2 {
		t.Fatalf("expected two slots, got %d", len(plan.Slots))
	}
	if plan.Slots[0].Instrument.ID != "a" || plan.Slots[0].Center != (scene.Point{X: 537, Y: 559}) {
		t.Fatalf("unexpected first slot %+v", plan.Slots[0])
	}
	if plan.Slots[1].Center != (scene.Point{X: 717, Y: 559}) {
		t.Fatalf("unexpected second slot %+v", plan.Slots[1].Center)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBandName("Blackout"), testsupport.WithDepthBands(2))
	opts := stage.OptionsFromConfig(cfg)
	if opts.BandName != "Blackout" || opts.DepthBands != 2 || opts.LabelBudget != 14 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestAmpMicLeadAndConsoleCableShareMicHeight(t *testing.T) {
	sc := stage.Layout(testsupport.FullBandSnapshot(), fullSet(), stage.DefaultOptions())

	mics := sc.WithRole(stage.RoleAmpMic)
	if len(mics) != 1 {
		t.Fatalf("expected one amp mic, got %d", len(mics))
	}
	mic := mics[0].Center()

	amps := sc.WithRole(stage.RoleAmplifier)
	bass := amps[1].Center()
	if want := bass.Y + stage.AmpSize/3.0; mic.Y != want {
		t.Fatalf("amp mic at y=%v, want a third of the amp below its centre (%v)", mic.Y, want)
	}

	leads := sc.WithRole(stage.RoleAmpMicLead)
	if len(leads) != 1 {
		t.Fatalf("expected one amp mic lead, got %d", len(leads))
	}
	for i, p := range leads[0].Points {
		if p.Y != mic.Y {
			t.Fatalf("lead point %d at y=%v, mic glyph at y=%v", i, p.Y, mic.Y)
		}
	}

	want := scene.Point{X: mic.X + stage.MicSize/2, Y: mic.Y}
	var starts []scene.Point
	for _, cable := range sc.WithRole(stage.RoleCableConsole) {
		if cable.Points[0] == want {
			return
		}
		starts = append(starts, cable.Points[0])
	}
	t.Fatalf("no console cable starts at the amp mic %+v; cable starts %+v", want, starts)
}
