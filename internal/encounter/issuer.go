// Package encounter issues the seeded randomness for one adventure encounter.
//
// Game logic asks the Issuer for an Encounter when a new encounter starts and
// routes every random decision through Encounter.RNG. Audit tooling rebuilds
// the same generator later from the packed seed alone.
package encounter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/encounterseed/internal/encounter/seed"
	"github.com/louisbranch/encounterseed/internal/encounter/storage"
	"github.com/louisbranch/encounterseed/internal/random"
)

// Encounter is the randomness for one encounter.
type Encounter struct {
	Seed  seed.Seed
	Value uint64
	RNG   *random.Random
}

// Issuer builds encounters and records their seeds.
type Issuer struct {
	store  storage.SeedStore
	clock  func() time.Time
	logger *log.Logger
	strict bool
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the record timestamp source.
func WithClock(clock func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.clock = clock
	}
}

// WithLogger sets the logger for stat overflow warnings.
func WithLogger(logger *log.Logger) IssuerOption {
	return func(i *Issuer) {
		i.logger = logger
	}
}

// WithStrictStats rejects stat ranges that would be truncated instead of
// logging and encoding them.
func WithStrictStats(strict bool) IssuerOption {
	return func(i *Issuer) {
		i.strict = strict
	}
}

// NewIssuer creates an Issuer. A nil store skips recording.
func NewIssuer(store storage.SeedStore, opts ...IssuerOption) *Issuer {
	issuer := &Issuer{store: store, clock: time.Now, logger: log.Default()}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer
}

// Issue builds the encounter for an event.
//
// An unknown stat type is always rejected. Stats that do not fit the seed
// layout are truncated exactly as Encode does unless the Issuer is strict.
// The record keeps the stats as given.
func (i *Issuer) Issue(ctx context.Context, eventID uint64, stats seed.StatRange) (Encounter, error) {
	if err := ctx.Err(); err != nil {
		return Encounter{}, err
	}
	if !stats.Type.Valid() {
		return Encounter{}, fmt.Errorf("issue event %d: %w: %q", eventID, seed.ErrUnknownStatType, stats.Type)
	}
	if err := stats.Validate(); err != nil {
		if i.strict {
			return Encounter{}, fmt.Errorf("issue event %d: %w", eventID, err)
		}
		if errors.Is(err, seed.ErrStatOverflow) && i.logger != nil {
			i.logger.Printf("encounter %d: %v; seed keeps low %d bits", eventID, err, seed.StatBits)
		}
	}

	s := seed.New(eventID, stats)
	value := s.Uint64()

	if i.store != nil {
		clock := i.clock
		if clock == nil {
			clock = time.Now
		}
		err := i.store.PutSeed(ctx, storage.SeedRecord{
			EventID:   eventID,
			Seed:      value,
			Stats:     stats,
			CreatedAt: clock().UTC(),
		})
		if err != nil {
			return Encounter{}, fmt.Errorf("record seed for event %d: %w", eventID, err)
		}
	}

	return Encounter{Seed: s, Value: value, RNG: random.New(s)}, nil
}

// Resume rebuilds an encounter from a packed seed. Its generator restarts at
// the beginning of the encounter's stream.
func Resume(value uint64) Encounter {
	s := seed.FromUint64(value)
	return Encounter{Seed: s, Value: value, RNG: random.New(s)}
}
