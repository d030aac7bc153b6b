package equipment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"backline/internal/logging"
)

// interchangeVersion is written to exported documents and checked on import.
const interchangeVersion = 1

type interchangeDocument struct {
	Version  int `yaml:"version"`
	Snapshot `yaml:",inline"`
}

// ImportResult counts what an import changed.
type ImportResult struct {
	Added   int
	Updated int
}

// ExportYAML writes the whole inventory as a YAML document.
func (r *Repository) ExportYAML(ctx context.Context, w io.Writer) error {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(interchangeDocument{Version: interchangeVersion, Snapshot: snap}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads and validates an exported document without touching the
// store. References between records are not checked; dangling ones are
// tolerated downstream.
func DecodeYAML(rd io.Reader) (Snapshot, error) {
	var doc interchangeDocument
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Snapshot{}, errors.New("decode snapshot: empty document")
		}
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version != interchangeVersion {
		return Snapshot{}, fmt.Errorf("decode snapshot: unsupported version %d", doc.Version)
	}
	snap := doc.Snapshot
	var errs []error
	for i := range snap.Members {
		snap.Members[i].normalize()
		errs = append(errs, ValidateMember(snap.Members[i]))
	}
	for i := range snap.Instruments {
		snap.Instruments[i].normalize()
		errs = append(errs, ValidateInstrument(snap.Instruments[i]))
	}
	for i := range snap.Amplifiers {
		snap.Amplifiers[i].normalize()
		errs = append(errs, ValidateAmplifier(snap.Amplifiers[i]))
	}
	for i := range snap.Microphones {
		snap.Microphones[i].normalize()
		errs = append(errs, ValidateMicrophone(snap.Microphones[i]))
	}
	for i := range snap.PA {
		snap.PA[i].normalize()
		errs = append(errs, ValidatePA(snap.PA[i]))
	}
	if err := errors.Join(errs...); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ImportYAML merges a document into the store. Records are matched by id;
// records without one get a fresh id. With replace set, the stored inventory
// is discarded first.
func (r *Repository) ImportYAML(ctx context.Context, rd io.Reader, replace bool) (ImportResult, error) {
	incoming, err := DecodeYAML(rd)
	if err != nil {
		return ImportResult{}, err
	}
	var result ImportResult
	err = r.mutate(ctx, func(snap *Snapshot) error {
		result = ImportResult{}
		if replace {
			*snap = Snapshot{}
		}
		snap.Members = merge(snap.Members, incoming.Members, r.newID, &result, func(v *BandMember, id string) { v.ID = id })
		snap.Instruments = merge(snap.Instruments, incoming.Instruments, r.newID, &result, func(v *Instrument, id string) { v.ID = id })
		snap.Amplifiers = merge(snap.Amplifiers, incoming.Amplifiers, r.newID, &result, func(v *Amplifier, id string) { v.ID = id })
		snap.Microphones = merge(snap.Microphones, incoming.Microphones, r.newID, &result, func(v *Microphone, id string) { v.ID = id })
		snap.PA = merge(snap.PA, incoming.PA, r.newID, &result, func(v *PaEquipment, id string) { v.ID = id })
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	r.logger.Info("snapshot imported",
		logging.Int("added", result.Added),
		logging.Int("updated", result.Updated),
		logging.Bool("replace", replace),
	)
	return result, nil
}

func merge[T identified](existing, incoming []T, newID func() string, result *ImportResult, setID func(*T, string)) []T {
	for _, item := range incoming {
		if item.EntityID() == "" {
			setID(&item, newID())
		}
		var replaced bool
		if existing, replaced = replaceByID(existing, item); replaced {
			result.Updated++
			continue
		}
		existing = append(existing, item)
		result.Added++
	}
	return existing
}
