package equipment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"backline/internal/logging"
	"backline/internal/store"
)

// Collection names in the record store.
const (
	CollectionMembers     = "members"
	CollectionInstruments = "instruments"
	CollectionAmplifiers  = "amplifiers"
	CollectionMicrophones = "microphones"
	CollectionPA          = "pa_equipment"
)

// ErrNotFound is returned when an update or delete names an unknown id.
var ErrNotFound = errors.New("not found")

// Repository persists the inventory through a record store.
type Repository struct {
	store  store.Mutator
	logger *slog.Logger
	newID  func() string
}

// NewRepository wraps st. A nil logger discards output.
func NewRepository(st store.Mutator, logger *slog.Logger) *Repository {
	return &Repository{
		store:  st,
		logger: logging.NewComponentLogger(logger, "equipment"),
		newID:  uuid.NewString,
	}
}

// Snapshot loads all five collections.
func (r *Repository) Snapshot(ctx context.Context) (Snapshot, error) {
	return loadSnapshot(ctx, r.store)
}

func loadSnapshot(ctx context.Context, rd store.Reader) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Members, err = store.LoadList[BandMember](ctx, rd, CollectionMembers); err != nil {
		return Snapshot{}, err
	}
	if snap.Instruments, err = store.LoadList[Instrument](ctx, rd, CollectionInstruments); err != nil {
		return Snapshot{}, err
	}
	if snap.Amplifiers, err = store.LoadList[Amplifier](ctx, rd, CollectionAmplifiers); err != nil {
		return Snapshot{}, err
	}
	if snap.Microphones, err = store.LoadList[Microphone](ctx, rd, CollectionMicrophones); err != nil {
		return Snapshot{}, err
	}
	if snap.PA, err = store.LoadList[PaEquipment](ctx, rd, CollectionPA); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func saveSnapshot(ctx context.Context, w store.Writer, snap Snapshot) error {
	if err := store.SaveList(ctx, w, CollectionMembers, snap.Members); err != nil {
		return err
	}
	if err := store.SaveList(ctx, w, CollectionInstruments, snap.Instruments); err != nil {
		return err
	}
	if err := store.SaveList(ctx, w, CollectionAmplifiers, snap.Amplifiers); err != nil {
		return err
	}
	if err := store.SaveList(ctx, w, CollectionMicrophones, snap.Microphones); err != nil {
		return err
	}
	return store.SaveList(ctx, w, CollectionPA, snap.PA)
}

// mutate loads the snapshot inside a store transaction, applies fn and saves
// the result when fn succeeds.
func (r *Repository) mutate(ctx context.Context, fn func(*Snapshot) error) error {
	return r.store.Mutate(ctx, func(rw store.ReadWriter) error {
		snap, err := loadSnapshot(ctx, rw)
		if err != nil {
			return err
		}
		if err := fn(&snap); err != nil {
			return err
		}
		return saveSnapshot(ctx, rw, snap)
	})
}

func replaceByID[T identified](items []T, item T) ([]T, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return v.EntityID() == item.EntityID() })
	if i < 0 {
		return items, false
	}
	items[i] = item
	return items, true
}

func removeByID[T identified](items []T, id string) ([]T, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return v.EntityID() == id })
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// AddMember stores a new member at the end of the sort order.
func (r *Repository) AddMember(ctx context.Context, m BandMember) (BandMember, error) {
	m.normalize()
	err := r.mutate(ctx, func(snap *Snapshot) error {
		m.ID = r.newID()
		m.SortOrder = 1
		for _, existing := range snap.Members {
			m.SortOrder = max(m.SortOrder, existing.SortOrder+1)
		}
		if err := snap.Index().CheckMember(m); err != nil {
			return err
		}
		snap.Members = append(snap.Members, m)
		return nil
	})
	if err != nil {
		return BandMember{}, err
	}
	r.logger.Info("member added", logging.String("member_id", m.ID), logging.String("name", m.Name))
	return m, nil
}

// UpdateMember replaces the stored member with the same id.
func (r *Repository) UpdateMember(ctx context.Context, m BandMember) error {
	m.normalize()
	return r.mutate(ctx, func(snap *Snapshot) error {
		if err := snap.Index().CheckMember(m); err != nil {
			return err
		}
		var ok bool
		if snap.Members, ok = replaceByID(snap.Members, m); !ok {
			return notFound("member", m.ID)
		}
		return nil
	})
}

// SetMemberPosition moves a member to pos; an empty pos clears it.
func (r *Repository) SetMemberPosition(ctx context.Context, id string, pos StagePosition) error {
	if pos != "" && !pos.Valid() {
		verr := &ValidationError{Entity: "member"}
		verr.add("stagePosition", fmt.Sprintf("unknown value %q", pos))
		return verr
	}
	return r.mutate(ctx, func(snap *Snapshot) error {
		for i := range snap.Members {
			if snap.Members[i].ID == id {
				snap.Members[i].StagePosition = pos
				return nil
			}
		}
		return notFound("member", id)
	})
}

// DeleteMember removes a member. Instruments, amplifiers and microphones that
// reference it are left untouched.
func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.Members, ok = removeByID(snap.Members, id); !ok {
			return notFound("member", id)
		}
		return nil
	})
}

// AddInstrument stores a new instrument at the end of the channel order.
func (r *Repository) AddInstrument(ctx context.Context, inst Instrument) (Instrument, error) {
	inst.normalize()
	err := r.mutate(ctx, func(snap *Snapshot) error {
		inst.ID = r.newID()
		inst.ChannelOrder = 1
		for _, existing := range snap.Instruments {
			inst.ChannelOrder = max(inst.ChannelOrder, existing.ChannelOrder+1)
		}
		if err := snap.Index().CheckInstrument(inst); err != nil {
			return err
		}
		snap.Instruments = append(snap.Instruments, inst)
		return nil
	})
	if err != nil {
		return Instrument{}, err
	}
	r.logger.Info("instrument added", logging.String("instrument_id", inst.ID), logging.String("name", inst.Name))
	return inst, nil
}

// UpdateInstrument replaces the stored instrument with the same id.
func (r *Repository) UpdateInstrument(ctx context.Context, inst Instrument) error {
	inst.normalize()
	return r.mutate(ctx, func(snap *Snapshot) error {
		if err := snap.Index().CheckInstrument(inst); err != nil {
			return err
		}
		var ok bool
		if snap.Instruments, ok = replaceByID(snap.Instruments, inst); !ok {
			return notFound("instrument", inst.ID)
		}
		return nil
	})
}

// DeleteInstrument removes an instrument without touching microphones.
func (r *Repository) DeleteInstrument(ctx context.Context, id string) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.Instruments, ok = removeByID(snap.Instruments, id); !ok {
			return notFound("instrument", id)
		}
		return nil
	})
}

// AddAmplifier stores a new amplifier.
func (r *Repository) AddAmplifier(ctx context.Context, amp Amplifier) (Amplifier, error) {
	amp.normalize()
	err := r.mutate(ctx, func(snap *Snapshot) error {
		amp.ID = r.newID()
		if err := snap.Index().CheckAmplifier(amp); err != nil {
			return err
		}
		snap.Amplifiers = append(snap.Amplifiers, amp)
		return nil
	})
	if err != nil {
		return Amplifier{}, err
	}
	r.logger.Info("amplifier added", logging.String("amplifier_id", amp.ID), logging.String("name", amp.Name))
	return amp, nil
}

// UpdateAmplifier replaces the stored amplifier with the same id.
func (r *Repository) UpdateAmplifier(ctx context.Context, amp Amplifier) error {
	amp.normalize()
	return r.mutate(ctx, func(snap *Snapshot) error {
		if err := snap.Index().CheckAmplifier(amp); err != nil {
			return err
		}
		var ok bool
		if snap.Amplifiers, ok = replaceByID(snap.Amplifiers, amp); !ok {
			return notFound("amplifier", amp.ID)
		}
		return nil
	})
}

// DeleteAmplifier removes an amplifier. Instruments keep their AmpID, which
// then resolves to nothing.
func (r *Repository) DeleteAmplifier(ctx context.Context, id string) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.Amplifiers, ok = removeByID(snap.Amplifiers, id); !ok {
			return notFound("amplifier", id)
		}
		return nil
	})
}

// AddMicrophone stores a new microphone.
func (r *Repository) AddMicrophone(ctx context.Context, mic Microphone) (Microphone, error) {
	mic.normalize()
	err := r.mutate(ctx, func(snap *Snapshot) error {
		mic.ID = r.newID()
		if err := snap.Index().CheckMicrophone(mic); err != nil {
			return err
		}
		snap.Microphones = append(snap.Microphones, mic)
		return nil
	})
	if err != nil {
		return Microphone{}, err
	}
	r.logger.Info("microphone added", logging.String("microphone_id", mic.ID), logging.String("name", mic.Name))
	return mic, nil
}

// UpdateMicrophone replaces the stored microphone with the same id.
func (r *Repository) UpdateMicrophone(ctx context.Context, mic Microphone) error {
	mic.normalize()
	return r.mutate(ctx, func(snap *Snapshot) error {
		if err := snap.Index().CheckMicrophone(mic); err != nil {
			return err
		}
		var ok bool
		if snap.Microphones, ok = replaceByID(snap.Microphones, mic); !ok {
			return notFound("microphone", mic.ID)
		}
		return nil
	})
}

// AssignMicrophone points a microphone at a new target, replacing any
// previous assignment. The zero Assignment unassigns it.
func (r *Repository) AssignMicrophone(ctx context.Context, micID string, a Assignment) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		idx := snap.Index()
		for i := range snap.Microphones {
			if snap.Microphones[i].ID != micID {
				continue
			}
			updated := snap.Microphones[i]
			updated.Assignment = a
			if err := idx.CheckMicrophone(updated); err != nil {
				return err
			}
			snap.Microphones[i] = updated
			return nil
		}
		return notFound("microphone", micID)
	})
}

// DeleteMicrophone removes a microphone. Members whose VocalMicID points at
// it keep the stale id.
func (r *Repository) DeleteMicrophone(ctx context.Context, id string) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.Microphones, ok = removeByID(snap.Microphones, id); !ok {
			return notFound("microphone", id)
		}
		return nil
	})
}

// AddPA stores a new PA item.
func (r *Repository) AddPA(ctx context.Context, item PaEquipment) (PaEquipment, error) {
	item.normalize()
	if err := ValidatePA(item); err != nil {
		return PaEquipment{}, err
	}
	err := r.mutate(ctx, func(snap *Snapshot) error {
		item.ID = r.newID()
		snap.PA = append(snap.PA, item)
		return nil
	})
	if err != nil {
		return PaEquipment{}, err
	}
	r.logger.Info("pa equipment added", logging.String("pa_id", item.ID), logging.String("name", item.Name))
	return item, nil
}

// UpdatePA replaces the stored PA item with the same id.
func (r *Repository) UpdatePA(ctx context.Context, item PaEquipment) error {
	item.normalize()
	if err := ValidatePA(item); err != nil {
		return err
	}
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.PA, ok = replaceByID(snap.PA, item); !ok {
			return notFound("pa equipment", item.ID)
		}
		return nil
	})
}

// DeletePA removes a PA item.
func (r *Repository) DeletePA(ctx context.Context, id string) error {
	return r.mutate(ctx, func(snap *Snapshot) error {
		var ok bool
		if snap.PA, ok = removeByID(snap.PA, id); !ok {
			return notFound("pa equipment", id)
		}
		return nil
	})
}
