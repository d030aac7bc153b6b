package rider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"backline/internal/fileutil"
	"backline/internal/logging"
	"backline/internal/textutil"
)

// Delivery reports where a document went.
type Delivery struct {
	Path   string
	Opened bool
	// Swept counts stale print surfaces removed during delivery.
	Swept int
}

// Deliverer hands an assembled document to the outside world.
type Deliverer interface {
	Deliver(ctx context.Context, doc *Document) (Delivery, error)
}

// FileName returns the file name a rider for band is saved under.
func FileName(band string) string {
	return textutil.SanitizeFileName(strings.ToLower(band), "band") + "-rider.html"
}

// FileDeliverer saves the document into Dir, replacing an earlier rider for
// the same band.
type FileDeliverer struct {
	Dir string
}

func (f FileDeliverer) Deliver(ctx context.Context, doc *Document) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}
	if doc == nil {
		return Delivery{}, errors.New("deliver rider: no document")
	}
	path := filepath.Join(f.Dir, FileName(doc.Band))
	if err := fileutil.WriteFileAtomic(path, doc.HTML); err != nil {
		return Delivery{}, fmt.Errorf("write rider: %w", err)
	}
	return Delivery{Path: path}, nil
}

// Launcher starts an external program without waiting for it.
type Launcher func(name string, args ...string) error

// StartDetached launches name and reaps it in the background.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// OpenerCommand returns the command that opens a file in the default
// browser. A non-empty override is split on whitespace.
func OpenerCommand(override string) []string {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields
	}
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"cmd", "/C", "start", ""}
	}
	return []string{"xdg-open"}
}

const surfacePattern = "rider-*.html"

// BrowserDeliverer writes the document to a short-lived print surface in Dir
// and opens it with the platform browser. Opening is fire-and-forget:
// whether the user prints is not observed. Surfaces older than Timeout are
// swept on each delivery.
type BrowserDeliverer struct {
	Dir     string
	Timeout time.Duration
	Opener  []string
	Launch  Launcher
	Now     func() time.Time
	Logger  *slog.Logger
}

func (b BrowserDeliverer) Deliver(ctx context.Context, doc *Document) (Delivery, error) {
	if err := ctx.Err(); err != nil {
		return Delivery{}, err
	}
	if doc == nil {
		return Delivery{}, errors.New("deliver rider: no document")
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(b.Logger, "rider"))
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	var delivery Delivery
	if b.Timeout > 0 {
		removed, err := fileutil.SweepOlderThan(b.Dir, surfacePattern, now().Add(-b.Timeout))
		if err != nil {
			logging.WarnWithContext(logger, "sweep print surfaces failed", "rider_sweep_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "stale rider surfaces remain on disk"),
			)
		}
		delivery.Swept = len(removed)
	}

	path := filepath.Join(b.Dir, "rider-"+uuid.NewString()+".html")
	if err := fileutil.WriteFileAtomic(path, doc.HTML); err != nil {
		return delivery, fmt.Errorf("write print surface: %w", err)
	}
	delivery.Path = path

	command := b.Opener
	if len(command) == 0 {
		command = OpenerCommand("")
	}
	launch := b.Launch
	if launch == nil {
		launch = StartDetached
	}
	args := append(append([]string(nil), command[1:]...), path)
	if err := launch(command[0], args...); err != nil {
		return delivery, fmt.Errorf("open print surface with %s: %w", command[0], err)
	}
	delivery.Opened = true
	logger.Info("rider handed to browser", logging.Path(path), logging.String("opener", command[0]))
	return delivery, nil
}

// Chain runs deliverers in order and stops at the first failure. The
// returned Delivery reports the first path written and whether any
// deliverer opened the document.
type Chain []Deliverer

func (c Chain) Deliver(ctx context.Context, doc *Document) (Delivery, error) {
	var out Delivery
	for _, d := range c {
		got, err := d.Deliver(ctx, doc)
		if err != nil {
			return out, err
		}
		if out.Path == "" {
			out.Path = got.Path
		}
		out.Opened = out.Opened || got.Opened
		out.Swept += got.Swept
	}
	return out, nil
}
