package icons

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"backline/internal/logging"
)

// Key names a glyph.
type Key string

const (
	Guitar    Key = "guitar"
	Bass      Key = "bass"
	Drums     Key = "drums"
	Keyboard  Key = "keyboard"
	VocalMic  Key = "vocal-mic"
	GuitarAmp Key = "guitar-amp"
	BassAmp   Key = "bass-amp"
	AmpMic    Key = "amp-mic"
	DIBox     Key = "di"
)

var keyPaths = map[Key]string{
	Guitar:    "instruments/guitar.svg",
	Bass:      "instruments/bass_guitar.svg",
	Drums:     "instruments/drum.svg",
	Keyboard:  "instruments/synth.svg",
	VocalMic:  "instruments/vocal_mic.svg",
	GuitarAmp: "instruments/guitar_amp.svg",
	BassAmp:   "instruments/bass_amp.svg",
	AmpMic:    "instruments/amp_mic_right.svg",
	DIBox:     "instruments/DI.svg",
}

// Keys returns every glyph key in a fixed order.
func Keys() []Key {
	return []Key{Guitar, Bass, Drums, Keyboard, VocalMic, GuitarAmp, BassAmp, AmpMic, DIBox}
}

// Path returns the relative asset path for key.
func (k Key) Path() string {
	return keyPaths[k]
}

// Set maps keys to markup. Missing keys read as "".
type Set map[Key]string

// Get returns the markup for key or "".
func (s Set) Get(key Key) string {
	if s == nil {
		return ""
	}
	return s[key]
}

// Fetcher retrieves glyph markup by relative path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

//go:embed assets
var assets embed.FS

// EmbeddedFetcher serves the glyphs compiled into the binary.
type EmbeddedFetcher struct{}

func (EmbeddedFetcher) Fetch(_ context.Context, path string) (string, error) {
	data, err := fs.ReadFile(assets, "assets/"+path)
	if err != nil {
		return "", fmt.Errorf("read embedded icon %s: %w", path, err)
	}
	return string(data), nil
}

// DirFetcher reads glyphs from a directory laid out like the embedded assets.
type DirFetcher struct {
	Dir string
}

func (d DirFetcher) Fetch(_ context.Context, path string) (string, error) {
	if strings.TrimSpace(d.Dir) == "" {
		return "", errors.New("icon directory not configured")
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("icon path %q escapes %s", path, d.Dir)
	}
	data, err := os.ReadFile(filepath.Join(d.Dir, clean))
	if err != nil {
		return "", fmt.Errorf("read icon %s: %w", path, err)
	}
	return string(data), nil
}

// ChainFetcher returns the first non-empty markup among its fetchers.
type ChainFetcher []Fetcher

func (c ChainFetcher) Fetch(ctx context.Context, path string) (string, error) {
	var errs []error
	for _, f := range c {
		if f == nil {
			continue
		}
		markup, err := f.Fetch(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(markup) != "" {
			return markup, nil
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return "", nil
}

// NewFetcher returns the configured fetcher: overrides from dir when set,
// falling back to the embedded glyphs.
func NewFetcher(dir string) Fetcher {
	if strings.TrimSpace(dir) == "" {
		return EmbeddedFetcher{}
	}
	return ChainFetcher{DirFetcher{Dir: dir}, EmbeddedFetcher{}}
}

const loadConcurrency = 4

// LoadSet fetches every key concurrently. Individual failures become empty
// glyphs and are logged as warnings; only a cancelled context is an error.
func LoadSet(ctx context.Context, f Fetcher, logger *slog.Logger) (Set, error) {
	logger = logging.NewComponentLogger(logger, "icons")
	keys := Keys()
	markup := make([]string, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := f.Fetch(gctx, key.Path())
			if err != nil {
				logging.WarnWithContext(logger, "icon unavailable", "icon_unavailable",
					logging.String("icon", string(key)),
					logging.Error(err),
					logging.String(logging.FieldImpact, "the glyph is left blank on the stage plot and rider"),
				)
				return nil
			}
			markup[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load icons: %w", err)
	}

	set := make(Set, len(keys))
	for i, key := range keys {
		set[key] = markup[i]
	}
	return set, nil
}
