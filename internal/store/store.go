package store

import (
	"context"
	"errors"

	"RaidLedger/internal/model"
)

// ErrNotFound reports an absent row (season, player, or loadout). Callers
// treat a missing final loadout as "skip this player", not as a failure.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary of the engine. Reads feed the
// computation, writes materialize its results; retry policy belongs to the
// implementation, not to the callers.
type Store interface {
	// GetSeason returns a season by ID, or ErrNotFound.
	GetSeason(ctx context.Context, seasonID int64) (*model.Season, error)

	// ListActiveSeasons returns every active season ordered by ID.
	ListActiveSeasons(ctx context.Context) ([]model.Season, error)

	// ListRoster returns every player that has a loadout registered for the
	// season, ordered by player ID.
	ListRoster(ctx context.Context, seasonID int64) ([]model.Player, error)

	// GetFinalLoadout returns the player's final loadout for the season, or
	// ErrNotFound when none is registered.
	GetFinalLoadout(ctx context.Context, playerID, seasonID int64) (*model.Loadout, error)

	// UpsertNeeds overwrites the total_needed column for every resource type
	// of the (player, season) pair. The current on-hand amount is owned by
	// the data-entry side and never touched here.
	UpsertNeeds(ctx context.Context, playerID, seasonID int64, needs model.NeedsVector) error

	// ReplacePriorities atomically deletes the season's priority table and
	// inserts the given records.
	ReplacePriorities(ctx context.Context, seasonID int64, records []model.PriorityRecord) error

	// LoadPriorities returns the season's priority records ordered by slot
	// then rank. An empty result is not an error.
	LoadPriorities(ctx context.Context, seasonID int64) ([]model.PriorityRecord, error)

	Close() error
}
