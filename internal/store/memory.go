package store

import (
	"context"
	"sort"
	"sync"

	"RaidLedger/internal/model"
)

// MemoryStore is an in-memory Store used in tests and when no database is
// configured.
type MemoryStore struct {
	mu         sync.Mutex
	seasons    map[int64]model.Season
	players    map[int64]model.Player
	loadouts   map[[2]int64]*model.Loadout // (playerID, seasonID) → final loadout
	needs      map[[2]int64]model.NeedsVector
	priorities map[int64][]model.PriorityRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons:    make(map[int64]model.Season),
		players:    make(map[int64]model.Player),
		loadouts:   make(map[[2]int64]*model.Loadout),
		needs:      make(map[[2]int64]model.NeedsVector),
		priorities: make(map[int64][]model.PriorityRecord),
	}
}

// AddSeason registers a season.
func (m *MemoryStore) AddSeason(season model.Season) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seasons[season.ID] = season
}

// AddPlayer registers a player with a final loadout for the season.
func (m *MemoryStore) AddPlayer(player model.Player, seasonID int64, loadout *model.Loadout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[player.ID] = player
	if loadout != nil {
		loadout.PlayerID = player.ID
		loadout.SeasonID = seasonID
		m.loadouts[[2]int64{player.ID, seasonID}] = loadout
	}
}

func (m *MemoryStore) GetSeason(_ context.Context, seasonID int64) (*model.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	season, ok := m.seasons[seasonID]
	if !ok {
		return nil, ErrNotFound
	}
	return &season, nil
}

func (m *MemoryStore) ListActiveSeasons(_ context.Context) ([]model.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var seasons []model.Season
	for _, season := range m.seasons {
		if season.Active {
			seasons = append(seasons, season)
		}
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].ID < seasons[j].ID })
	return seasons, nil
}

func (m *MemoryStore) ListRoster(_ context.Context, seasonID int64) ([]model.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var roster []model.Player
	for key, loadout := range m.loadouts {
		if loadout.SeasonID == seasonID {
			roster = append(roster, m.players[key[0]])
		}
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster, nil
}

func (m *MemoryStore) GetFinalLoadout(_ context.Context, playerID, seasonID int64) (*model.Loadout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loadout, ok := m.loadouts[[2]int64{playerID, seasonID}]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *loadout
	copied.Items = append([]model.LoadoutItem(nil), loadout.Items...)
	return &copied, nil
}

func (m *MemoryStore) UpsertNeeds(_ context.Context, playerID, seasonID int64, needs model.NeedsVector) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := model.NewNeedsVector()
	for rt, amount := range needs {
		stored[rt] = amount
	}
	m.needs[[2]int64{playerID, seasonID}] = stored
	return nil
}

// Needs returns the last persisted needs vector for a player, or nil.
func (m *MemoryStore) Needs(playerID, seasonID int64) model.NeedsVector {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.needs[[2]int64{playerID, seasonID}]
}

func (m *MemoryStore) ReplacePriorities(_ context.Context, seasonID int64, records []model.PriorityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priorities[seasonID] = append([]model.PriorityRecord(nil), records...)
	return nil
}

func (m *MemoryStore) LoadPriorities(_ context.Context, seasonID int64) ([]model.PriorityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := append([]model.PriorityRecord(nil), m.priorities[seasonID]...)
	sort.Slice(records, func(i, j int) bool {
		if records[i].Slot != records[j].Slot {
			return records[i].Slot < records[j].Slot
		}
		return records[i].Rank < records[j].Rank
	})
	return records, nil
}

func (m *MemoryStore) Close() error { return nil }
