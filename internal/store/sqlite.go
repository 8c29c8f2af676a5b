package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"RaidLedger/internal/model"
)

// SQLiteStore persists roster, loadout, and priority data in SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the admin tooling can read while the coordinator writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			nickname TEXT NOT NULL,
			job      TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS seasons (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			start_date INTEGER,
			end_date   INTEGER,
			active     INTEGER NOT NULL DEFAULT 1,
			method     TEXT NOT NULL DEFAULT 'priority'
		)`,

		`CREATE TABLE IF NOT EXISTS loadouts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			season_id INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
			kind      TEXT NOT NULL DEFAULT 'final',
			UNIQUE(player_id, season_id, kind)
		)`,

		`CREATE TABLE IF NOT EXISTS loadout_items (
			loadout_id INTEGER NOT NULL REFERENCES loadouts(id) ON DELETE CASCADE,
			slot       TEXT NOT NULL,
			item_name  TEXT NOT NULL,
			source     TEXT NOT NULL,
			level      INTEGER NOT NULL DEFAULT 0,
			UNIQUE(loadout_id, slot)
		)`,

		`CREATE TABLE IF NOT EXISTS resource_tracking (
			player_id      INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			season_id      INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
			resource_type  TEXT NOT NULL,
			current_amount INTEGER NOT NULL DEFAULT 0,
			total_needed   INTEGER NOT NULL DEFAULT 0,
			UNIQUE(player_id, season_id, resource_type)
		)`,

		`CREATE TABLE IF NOT EXISTS distribution_priorities (
			season_id INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			slot      TEXT NOT NULL,
			priority  INTEGER NOT NULL,
			UNIQUE(season_id, player_id, slot)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_priorities_season ON distribution_priorities(season_id, slot, priority)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetSeason(ctx context.Context, seasonID int64) (*model.Season, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, active, method FROM seasons WHERE id = ?`, seasonID)

	var season model.Season
	var active int
	if err := row.Scan(&season.ID, &season.Name, &active, &season.Method); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query season %d: %w", seasonID, err)
	}
	season.Active = active != 0
	return &season, nil
}

func (s *SQLiteStore) ListActiveSeasons(ctx context.Context) ([]model.Season, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, active, method FROM seasons WHERE active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query active seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.Season
	for rows.Next() {
		var season model.Season
		var active int
		if err := rows.Scan(&season.ID, &season.Name, &active, &season.Method); err != nil {
			return nil, fmt.Errorf("scan season row: %w", err)
		}
		season.Active = active != 0
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

func (s *SQLiteStore) ListRoster(ctx context.Context, seasonID int64) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT p.id, p.nickname, COALESCE(p.job, '')
		 FROM players p
		 JOIN loadouts l ON l.player_id = p.id
		 WHERE l.season_id = ?
		 ORDER BY p.id`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query roster for season %d: %w", seasonID, err)
	}
	defer rows.Close()

	var roster []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Nickname, &p.Job); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, p)
	}
	return roster, rows.Err()
}

func (s *SQLiteStore) GetFinalLoadout(ctx context.Context, playerID, seasonID int64) (*model.Loadout, error) {
	var loadoutID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM loadouts WHERE player_id = ? AND season_id = ? AND kind = 'final'`,
		playerID, seasonID).Scan(&loadoutID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query final loadout: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, item_name, source, level FROM loadout_items WHERE loadout_id = ? ORDER BY slot`,
		loadoutID)
	if err != nil {
		return nil, fmt.Errorf("query loadout items: %w", err)
	}
	defer rows.Close()

	loadout := &model.Loadout{PlayerID: playerID, SeasonID: seasonID}
	for rows.Next() {
		var item model.LoadoutItem
		if err := rows.Scan(&item.Slot, &item.ItemName, &item.Source, &item.Level); err != nil {
			return nil, fmt.Errorf("scan loadout item: %w", err)
		}
		loadout.Items = append(loadout.Items, item)
	}
	return loadout, rows.Err()
}

func (s *SQLiteStore) UpsertNeeds(ctx context.Context, playerID, seasonID int64, needs model.NeedsVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin needs upsert: %w", err)
	}
	defer tx.Rollback()

	for _, rt := range model.AllResourceTypes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO resource_tracking (player_id, season_id, resource_type, total_needed)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(player_id, season_id, resource_type)
			 DO UPDATE SET total_needed = excluded.total_needed`,
			playerID, seasonID, string(rt), needs[rt])
		if err != nil {
			return fmt.Errorf("upsert needs %s: %w", rt, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ReplacePriorities(ctx context.Context, seasonID int64, records []model.PriorityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin priority replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM distribution_priorities WHERE season_id = ?`, seasonID); err != nil {
		return fmt.Errorf("delete old priorities: %w", err)
	}
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO distribution_priorities (season_id, player_id, slot, priority)
			 VALUES (?, ?, ?, ?)`,
			seasonID, rec.PlayerID, string(rec.Slot), rec.Rank); err != nil {
			return fmt.Errorf("insert priority (player %d, slot %s): %w", rec.PlayerID, rec.Slot, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadPriorities(ctx context.Context, seasonID int64) ([]model.PriorityRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT season_id, player_id, slot, priority
		 FROM distribution_priorities
		 WHERE season_id = ?
		 ORDER BY slot, priority`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("query priorities for season %d: %w", seasonID, err)
	}
	defer rows.Close()

	var records []model.PriorityRecord
	for rows.Next() {
		var rec model.PriorityRecord
		if err := rows.Scan(&rec.SeasonID, &rec.PlayerID, &rec.Slot, &rec.Rank); err != nil {
			return nil, fmt.Errorf("scan priority row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
