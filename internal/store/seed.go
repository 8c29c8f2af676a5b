package store

import (
	"context"
	"fmt"

	"RaidLedger/internal/model"
)

// Data-entry helpers. The admin tooling owns these tables; the coordinator
// only needs them for seeding and tests.

// CreateSeason inserts a season and returns its ID.
func (s *SQLiteStore) CreateSeason(ctx context.Context, name string, method model.DistributionMethod) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO seasons (name, method) VALUES (?, ?)`, name, string(method))
	if err != nil {
		return 0, fmt.Errorf("insert season: %w", err)
	}
	return res.LastInsertId()
}

// CreatePlayer inserts a player and returns their ID.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, nickname, job string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (nickname, job) VALUES (?, ?)`, nickname, job)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}
	return res.LastInsertId()
}

// SaveFinalLoadout replaces the player's final loadout for the season.
func (s *SQLiteStore) SaveFinalLoadout(ctx context.Context, loadout *model.Loadout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin loadout save: %w", err)
	}
	defer tx.Rollback()

	var loadoutID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO loadouts (player_id, season_id, kind) VALUES (?, ?, 'final')
		 ON CONFLICT(player_id, season_id, kind) DO UPDATE SET kind = kind
		 RETURNING id`,
		loadout.PlayerID, loadout.SeasonID).Scan(&loadoutID)
	if err != nil {
		return fmt.Errorf("upsert loadout row: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM loadout_items WHERE loadout_id = ?`, loadoutID); err != nil {
		return fmt.Errorf("clear loadout items: %w", err)
	}
	for _, item := range loadout.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO loadout_items (loadout_id, slot, item_name, source, level)
			 VALUES (?, ?, ?, ?, ?)`,
			loadoutID, string(item.Slot), item.ItemName, string(item.Source), item.Level); err != nil {
			return fmt.Errorf("insert loadout item %s: %w", item.Slot, err)
		}
	}
	return tx.Commit()
}

// GetNeeds reads back the persisted total_needed values for a player.
func (s *SQLiteStore) GetNeeds(ctx context.Context, playerID, seasonID int64) (model.NeedsVector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT resource_type, total_needed FROM resource_tracking
		 WHERE player_id = ? AND season_id = ?`, playerID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query needs: %w", err)
	}
	defer rows.Close()

	needs := model.NewNeedsVector()
	for rows.Next() {
		var rt string
		var total int
		if err := rows.Scan(&rt, &total); err != nil {
			return nil, fmt.Errorf("scan needs row: %w", err)
		}
		needs[model.ResourceType(rt)] = total
	}
	return needs, rows.Err()
}
