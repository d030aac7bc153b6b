package rider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"backline/internal/channels"
	"backline/internal/config"
	"backline/internal/equipment"
	"backline/internal/icons"
	"backline/internal/logging"
	"backline/internal/notifications"
	"backline/internal/scene"
	"backline/internal/stage"
)

// ErrRiderFailed is the single error an export reports, wrapping the cause.
var ErrRiderFailed = errors.New("could not generate rider")

// SnapshotSource supplies the equipment inventory.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (equipment.Snapshot, error)
}

// Exporter runs snapshot → icons → channels → stage plot → document →
// delivery. Exports share no state and may run concurrently.
type Exporter struct {
	Source    SnapshotSource
	Icons     icons.Fetcher
	Deliverer Deliverer
	Notifier  notifications.Service
	Meta      Meta
	Stage     stage.Options
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewExporter wires an exporter from configuration. The deliverer decides
// whether the rider is only saved or also opened for printing.
func NewExporter(cfg *config.Config, src SnapshotSource, deliverer Deliverer, notifier notifications.Service, logger *slog.Logger) *Exporter {
	return &Exporter{
		Source:    src,
		Icons:     icons.NewFetcher(cfg.Paths.IconDir),
		Deliverer: deliverer,
		Notifier:  notifier,
		Meta: Meta{
			Band:     cfg.Band.Name,
			Title:    cfg.Rider.Title,
			Subtitle: cfg.Rider.Subtitle,
			Language: cfg.Rider.Language,
		},
		Stage:  stage.OptionsFromConfig(cfg),
		Logger: logger,
	}
}

// Result describes a finished export.
type Result struct {
	CorrelationID string
	Document      *Document
	Delivery      Delivery
	Summary       channels.Summary
}

// Export produces and delivers one rider. Any failure is logged once and
// returned wrapped in ErrRiderFailed; nothing is delivered on failure.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	id := uuid.NewString()
	ctx = logging.WithCorrelationID(ctx, id)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.Logger, "rider"))
	started := time.Now()

	res, err := e.export(ctx)
	res.CorrelationID = id
	if err != nil {
		logging.ErrorWithContext(logger, "rider export failed", "rider_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the icon directory, output directory and record store"),
		)
		e.notify(ctx, logger, notifications.EventRiderFailed, notifications.Payload{"error": err.Error()})
		return res, fmt.Errorf("%w: %w", ErrRiderFailed, err)
	}

	logger.Info("rider exported",
		logging.Path(res.Delivery.Path),
		logging.Int("channels", res.Summary.Channels),
		logging.Bool("opened", res.Delivery.Opened),
		logging.Duration("elapsed", time.Since(started)),
	)
	e.notify(ctx, logger, notifications.EventRiderExported, notifications.Payload{
		"channels": res.Summary.Channels,
		"path":     res.Delivery.Path,
	})
	return res, nil
}

func (e *Exporter) export(ctx context.Context) (Result, error) {
	if e.Source == nil || e.Deliverer == nil {
		return Result{}, errors.New("exporter is not configured")
	}
	snap, err := e.Source.Snapshot(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load inventory: %w", err)
	}
	fetcher := e.Icons
	if fetcher == nil {
		fetcher = icons.EmbeddedFetcher{}
	}
	set, err := icons.LoadSet(ctx, fetcher, e.Logger)
	if err != nil {
		return Result{}, err
	}

	entries := channels.Derive(snap)
	opts := e.Stage
	if opts.BandName == "" {
		opts.BandName = e.Meta.Band
	}
	svg, err := scene.SVGString(stage.Layout(snap, set, opts))
	if err != nil {
		return Result{}, fmt.Errorf("render stage plot: %w", err)
	}

	meta := e.Meta
	if meta.Date.IsZero() {
		now := time.Now
		if e.Now != nil {
			now = e.Now
		}
		meta.Date = now()
	}
	doc, err := Assemble(Input{
		Meta:     meta,
		Snapshot: snap,
		Channels: entries,
		StageSVG: svg,
		Icons:    set,
	})
	if err != nil {
		return Result{}, err
	}

	delivery, err := e.Deliverer.Deliver(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("deliver rider: %w", err)
	}
	return Result{Document: doc, Delivery: delivery, Summary: channels.Summarize(entries)}, nil
}

func (e *Exporter) notify(ctx context.Context, logger *slog.Logger, event notifications.Event, payload notifications.Payload) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.Publish(ctx, event, payload); err != nil {
		logger.Debug("notification failed", logging.String("event", string(event)), logging.Error(err))
	}
}
