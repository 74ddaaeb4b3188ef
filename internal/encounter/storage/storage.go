// Package storage defines persistence contracts for issued encounter seeds.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/encounterseed/internal/encounter/seed"
)

var (
	// ErrNotFound indicates a requested seed record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a seed was already issued for the event.
	ErrAlreadyExists = errors.New("record already exists")
)

// SeedRecord stores one issued encounter seed.
type SeedRecord struct {
	EventID   uint64
	Seed      uint64
	Stats     seed.StatRange
	CreatedAt time.Time
}

// SeedPage stores one page of seed records, newest first.
type SeedPage struct {
	Records []SeedRecord
	// NextBefore is the cursor for the following page; zero when exhausted.
	NextBefore uint64
}

// SeedStore persists issued seeds for later audit.
type SeedStore interface {
	PutSeed(ctx context.Context, record SeedRecord) error
	GetSeed(ctx context.Context, eventID uint64) (SeedRecord, error)
	// FindSeed returns the newest record with the given packed value. Events
	// within the same timestamp window and stat range share a value.
	FindSeed(ctx context.Context, value uint64) (SeedRecord, error)
	// ListSeeds returns records with event IDs below before, or all records
	// when before is zero.
	ListSeeds(ctx context.Context, limit int, before uint64) (SeedPage, error)
}
