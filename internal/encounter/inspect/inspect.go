// Package inspect rebuilds an encounter's envelope from its packed seed for
// operators auditing past encounters.
//
// A report shows what an encounter could have done, not what it did: later
// draws depend on the order game logic consumed the stream.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/encounterseed/internal/encounter"
	"github.com/louisbranch/encounterseed/internal/encounter/seed"
	"github.com/louisbranch/encounterseed/internal/encounter/storage"
)

const tracerName = "github.com/louisbranch/encounterseed/internal/encounter/inspect"

// noMonsterRoll is the IntRange(0, 100) result that skips the monster.
const noMonsterRoll = 25

// Preview holds the opening flags an encounter derives from its stream.
type Preview struct {
	// EasyMode applies to characters under 30 rebirths.
	EasyMode bool
	// NoMonsterLowRebirth is drawn right after EasyMode.
	NoMonsterLowRebirth bool
	// NoMonster is drawn after rewinding to before EasyMode, so it reuses
	// the stream position EasyMode consumed.
	NoMonster bool
}

// Report is everything recoverable about one seed.
type Report struct {
	Value         uint64
	Hex           string
	Decoded       seed.Decoded
	EventIDPrefix uint64
	// ApproxTime is the earliest creation time consistent with the seed.
	ApproxTime time.Time
	Preview    Preview
	// Record is the ledger entry for the seed, when one exists.
	Record *storage.SeedRecord
}

// Inspector builds reports, optionally resolving seeds against a ledger.
type Inspector struct {
	store  storage.SeedStore
	tracer trace.Tracer
}

// New creates an Inspector. A nil store skips ledger lookups.
func New(store storage.SeedStore) *Inspector {
	return &Inspector{store: store, tracer: otel.Tracer(tracerName)}
}

// Inspect builds the report for a packed seed.
func (i *Inspector) Inspect(ctx context.Context, value uint64) (Report, error) {
	ctx, span := i.tracer.Start(ctx, "inspect.Inspect")
	defer span.End()

	enc := encounter.Resume(value)
	decoded := seed.Decode(value)
	report := Report{
		Value:         value,
		Hex:           seed.Hex(value),
		Decoded:       decoded,
		EventIDPrefix: decoded.EventIDPrefix(),
		ApproxTime:    seed.TimestampTime(decoded.Timestamp),
	}
	span.SetAttributes(
		attribute.String("seed.hex", report.Hex),
		attribute.String("seed.stat_type", string(decoded.Stats.Type)),
		attribute.Int("seed.min_stat", decoded.Stats.Min),
		attribute.Int("seed.max_stat", decoded.Stats.Max),
	)

	preview, err := previewFlags(enc)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}
	report.Preview = preview

	if i.store != nil {
		record, err := i.store.FindSeed(ctx, value)
		switch {
		case err == nil:
			report.Record = &record
			span.SetAttributes(attribute.Bool("seed.recorded", true))
		case errors.Is(err, storage.ErrNotFound):
			span.SetAttributes(attribute.Bool("seed.recorded", false))
		default:
			span.RecordError(err)
			return Report{}, fmt.Errorf("find seed %s: %w", report.Hex, err)
		}
	}
	return report, nil
}

// previewFlags peeks at two draws from the start of the stream and rewinds
// once before the third. In a live encounter the same peek happens later,
// after the roster and stat draws, so the flags here describe a fresh stream.
func previewFlags(enc encounter.Encounter) (Preview, error) {
	rng := enc.RNG
	state := rng.State()
	easyMode := rng.Bit() == 1
	noMonsterLowRebirth := rng.IntRange(0, 100) == noMonsterRoll
	if err := rng.Restore(state); err != nil {
		return Preview{}, fmt.Errorf("rewind preview: %w", err)
	}
	noMonster := rng.IntRange(0, 100) == noMonsterRoll
	return Preview{
		EasyMode:            easyMode,
		NoMonsterLowRebirth: noMonsterLowRebirth,
		NoMonster:           noMonster,
	}, nil
}
