package icons_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"backline/internal/icons"
	"backline/internal/logging"
	"backline/internal/testsupport"
)

func TestEmbeddedGlyphsCoverEveryKey(t *testing.T) {
	set, err := icons.LoadSet(context.Background(), icons.EmbeddedFetcher{}, logging.NewNop())
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	for _, key := range icons.Keys() {
		if !strings.Contains(set.Get(key), "<svg") {
			t.Errorf("missing embedded glyph for %s", key)
		}
	}
}

func TestDirectoryOverridesFallBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "instruments", "guitar.svg"), `<svg id="custom"/>`)

	set, err := icons.LoadSet(context.Background(), icons.NewFetcher(dir), nil)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if got := set.Get(icons.Guitar); got != `<svg id="custom"/>` {
		t.Fatalf("expected override, got %q", got)
	}
	if !strings.Contains(set.Get(icons.Bass), "<svg") {
		t.Fatal("expected embedded fallback for bass")
	}
}

func TestDirFetcherRejectsEscapes(t *testing.T) {
	f := icons.DirFetcher{Dir: t.TempDir()}
	if _, err := f.Fetch(context.Background(), "../secret.svg"); err == nil {
		t.Fatal("expected path escape to fail")
	}
}

type flakyFetcher struct {
	calls atomic.Int32
}

func (f *flakyFetcher) Fetch(_ context.Context, path string) (string, error) {
	f.calls.Add(1)
	if strings.Contains(path, "drum") {
		return "", errors.New("network down")
	}
	return "<svg/>", nil
}

func TestLoadSetDegradesFailuresToBlank(t *testing.T) {
	f := &flakyFetcher{}
	set, err := icons.LoadSet(context.Background(), f, logging.NewNop())
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if int(f.calls.Load()) != len(icons.Keys()) {
		t.Fatalf("expected one fetch per key, got %d", f.calls.Load())
	}
	if set.Get(icons.Drums) != "" {
		t.Fatal("failed glyph should be blank")
	}
	if set.Get(icons.Guitar) != "<svg/>" {
		t.Fatal("other glyphs should still load")
	}
}

func TestLoadSetWarnsAboutMissingGlyphs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "icons.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	if _, err := icons.LoadSet(context.Background(), &flakyFetcher{}, logger); err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	content := testsupport.ReadFile(t, logPath)
	for _, want := range []string{`"level":"warn"`, `"icon":"drums"`, `"event_type":"icon_unavailable"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestLoadSetHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := icons.LoadSet(ctx, &flakyFetcher{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
