package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"RaidLedger/internal/cache"
	"RaidLedger/internal/calculator"
	"RaidLedger/internal/model"
	"RaidLedger/internal/store"
)

// Options tunes the service.
type Options struct {
	// DefaultWeeks is the plan length when the caller passes 0.
	DefaultWeeks int
	// ManualCutoffWeek is the last automatically planned week; manual edits
	// are only accepted for weeks after it.
	ManualCutoffWeek int
	// FairnessPenalty is the allocator's per-award rank penalty.
	FairnessPenalty int
	// PlanTTL bounds the cached plan lifetime. Manual edits re-persist the
	// plan without expiry.
	PlanTTL time.Duration
	// LockTTL bounds how long a wedged computation can hold a season.
	LockTTL time.Duration
}

// PlayerFailure records one player whose computation failed without aborting
// the roster walk.
type PlayerFailure struct {
	PlayerID int64  `json:"player_id"`
	Nickname string `json:"nickname"`
	Reason   string `json:"reason"`
}

// ComputeResult is the outcome of a roster-wide priority computation: the
// ranked priorities, every successful player's needs, and the players that
// failed. The operation as a whole succeeds as long as one player computed.
type ComputeResult struct {
	SeasonID    int64                       `json:"season_id"`
	Priorities  map[model.Slot][]int64      `json:"priorities"`
	PlayerNeeds map[int64]model.NeedsVector `json:"player_needs"`
	TotalCosts  map[int64]int               `json:"total_costs"`
	PlayerNames map[int64]string            `json:"player_names"`
	Failures    []PlayerFailure             `json:"failures,omitempty"`
}

// Service is the outward contract of the distribution engine.
type Service struct {
	store store.Store
	cache cache.Cache
	calc  *calculator.Calculator
	plan  *Planner
	opts  Options
}

// NewService wires the engine together.
func NewService(st store.Store, ca cache.Cache, calc *calculator.Calculator, planner *Planner, opts Options) *Service {
	if opts.DefaultWeeks == 0 {
		opts.DefaultWeeks = 12
	}
	if opts.ManualCutoffWeek == 0 {
		opts.ManualCutoffWeek = 8
	}
	if opts.PlanTTL == 0 {
		opts.PlanTTL = 24 * time.Hour
	}
	if opts.LockTTL == 0 {
		opts.LockTTL = time.Minute
	}
	return &Service{store: st, cache: ca, calc: calc, plan: planner, opts: opts}
}

func planKey(seasonID int64) string { return fmt.Sprintf("raidledger:plan:%d", seasonID) }
func lockKey(seasonID int64) string { return fmt.Sprintf("raidledger:lock:%d", seasonID) }

// ComputePrioritiesForSeason recomputes every player's needs vector and fully
// replaces the season's priority table.
func (s *Service) ComputePrioritiesForSeason(ctx context.Context, seasonID int64) (*ComputeResult, error) {
	release, acquired, err := s.cache.Lock(ctx, lockKey(seasonID), s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire season lock: %w", err)
	}
	if !acquired {
		return nil, ErrSeasonBusy
	}
	defer release()

	return s.computePriorities(ctx, seasonID)
}

// computePriorities is the lock-free body, shared with the lazy path inside
// plan generation.
func (s *Service) computePriorities(ctx context.Context, seasonID int64) (*ComputeResult, error) {
	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", seasonID, err)
	}
	if season.Method != model.DistributionPriority {
		return nil, fmt.Errorf("season %q uses %q: %w", season.Name, season.Method, ErrWrongMethod)
	}

	roster, err := s.store.ListRoster(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	log.Printf("[INFO] computing priorities: season=%q players=%d", season.Name, len(roster))

	result := &ComputeResult{
		SeasonID:    seasonID,
		PlayerNeeds: make(map[int64]model.NeedsVector),
		TotalCosts:  make(map[int64]int),
		PlayerNames: make(map[int64]string),
	}
	slotCosts := make(map[int64]map[model.Slot]int)

	// One player's failure must not sink the roster: collect it and move on.
	for _, player := range roster {
		loadout, err := s.store.GetFinalLoadout(ctx, player.ID, seasonID)
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] player %q has no final loadout, skipping", player.Nickname)
			continue
		}
		if err != nil {
			log.Printf("[ERROR] load loadout for %q: %v", player.Nickname, err)
			result.Failures = append(result.Failures, PlayerFailure{
				PlayerID: player.ID, Nickname: player.Nickname, Reason: err.Error(),
			})
			continue
		}

		needs := s.calc.ComputeNeeds(loadout)
		if err := s.store.UpsertNeeds(ctx, player.ID, seasonID, needs); err != nil {
			log.Printf("[ERROR] persist needs for %q: %v", player.Nickname, err)
			result.Failures = append(result.Failures, PlayerFailure{
				PlayerID: player.ID, Nickname: player.Nickname, Reason: err.Error(),
			})
			continue
		}

		result.PlayerNeeds[player.ID] = needs
		result.TotalCosts[player.ID] = needs.Total()
		result.PlayerNames[player.ID] = player.Nickname
		slotCosts[player.ID] = s.calc.SlotCosts(loadout)
	}

	if len(result.PlayerNeeds) == 0 {
		return nil, fmt.Errorf("season %q: %w", season.Name, ErrNoEligiblePlayers)
	}

	result.Priorities = RankBySlot(slotCosts)
	records := RecordsFromRanking(seasonID, result.Priorities)
	if err := s.store.ReplacePriorities(ctx, seasonID, records); err != nil {
		return nil, fmt.Errorf("replace priority table: %w", err)
	}

	log.Printf("[INFO] priorities replaced: season=%q records=%d failures=%d",
		season.Name, len(records), len(result.Failures))
	return result, nil
}

// GenerateWeeklyPlan builds (and caches) the multi-week distribution plan.
// weeks <= 0 selects the configured default. When the season has no priority
// records yet, they are computed first; the dependency is materialized
// lazily, there is no separate trigger.
func (s *Service) GenerateWeeklyPlan(ctx context.Context, seasonID int64, weeks int) (*model.WeeklyPlan, error) {
	if weeks <= 0 {
		weeks = s.opts.DefaultWeeks
	}

	release, acquired, err := s.cache.Lock(ctx, lockKey(seasonID), s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire season lock: %w", err)
	}
	if !acquired {
		return nil, ErrSeasonBusy
	}
	defer release()

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", seasonID, err)
	}
	if season.Method != model.DistributionPriority {
		return nil, fmt.Errorf("season %q uses %q: %w", season.Name, season.Method, ErrWrongMethod)
	}

	records, err := s.store.LoadPriorities(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("load priorities: %w", err)
	}
	if len(records) == 0 {
		log.Printf("[INFO] no priority records for season %d, computing first", seasonID)
		if _, err := s.computePriorities(ctx, seasonID); err != nil {
			return nil, err
		}
		records, err = s.store.LoadPriorities(ctx, seasonID)
		if err != nil {
			return nil, fmt.Errorf("reload priorities: %w", err)
		}
	}

	roster, err := s.store.ListRoster(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	names := make(map[int64]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Nickname
	}

	ranked := candidatesBySlot(records, names)
	plan := s.plan.Generate(seasonID, weeks, ranked)

	if err := s.cachePlan(ctx, plan, s.opts.PlanTTL); err != nil {
		// The plan itself is good; a cold cache only costs the next reader a
		// regeneration.
		log.Printf("[WARN] cache plan for season %d: %v", seasonID, err)
	}

	log.Printf("[INFO] weekly plan generated: season=%q weeks=%d winners=%d",
		season.Name, weeks, len(plan.Acquisitions))
	return plan, nil
}

// ApplyManualWeek overwrites one week's floor awards in the cached plan.
// Only weeks past the cutoff are editable; the automatic window stays
// machine-owned. The edited plan is re-persisted without expiry.
func (s *Service) ApplyManualWeek(ctx context.Context, seasonID int64, week, floor int, awards []model.Award) (*model.WeeklyPlan, error) {
	if week <= s.opts.ManualCutoffWeek {
		return nil, fmt.Errorf("week %d (cutoff %d): %w", week, s.opts.ManualCutoffWeek, ErrWeekLocked)
	}

	plan, found, err := s.CachedPlan(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("season %d: %w", seasonID, ErrPlanNotFound)
	}

	var target *model.WeekPlan
	for i := range plan.Weeks {
		if plan.Weeks[i].Week == week {
			target = &plan.Weeks[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("week %d not in the %d-week plan: %w", week, len(plan.Weeks), ErrPlanNotFound)
	}
	if _, ok := target.Floors[floor]; !ok {
		return nil, fmt.Errorf("floor %d not in week %d: %w", floor, week, ErrPlanNotFound)
	}

	edited := make([]model.Award, len(awards))
	for i, a := range awards {
		a.ManualInput = true
		edited[i] = a
	}
	target.Floors[floor] = edited

	ledger := model.RebuildLedger(plan)
	plan.Acquisitions = map[int64]int(ledger)

	if err := s.cachePlan(ctx, plan, 0); err != nil {
		return nil, fmt.Errorf("persist edited plan: %w", err)
	}

	log.Printf("[INFO] manual override applied: season=%d week=%d floor=%d awards=%d",
		seasonID, week, floor, len(awards))
	return plan, nil
}

// CachedPlan returns the cached plan for a season, if any.
func (s *Service) CachedPlan(ctx context.Context, seasonID int64) (*model.WeeklyPlan, bool, error) {
	raw, found, err := s.cache.Get(ctx, planKey(seasonID))
	if err != nil {
		return nil, false, fmt.Errorf("read cached plan: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	var plan model.WeeklyPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, false, fmt.Errorf("decode cached plan: %w", err)
	}
	return &plan, true, nil
}

func (s *Service) cachePlan(ctx context.Context, plan *model.WeeklyPlan, ttl time.Duration) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return s.cache.Set(ctx, planKey(plan.SeasonID), string(raw), ttl)
}

// candidatesBySlot groups priority records into ranked candidate lists.
// Records arrive ordered by slot then rank, so each list is already in rank
// order.
func candidatesBySlot(records []model.PriorityRecord, names map[int64]string) map[model.Slot][]Candidate {
	ranked := make(map[model.Slot][]Candidate)
	for _, rec := range records {
		ranked[rec.Slot] = append(ranked[rec.Slot], Candidate{
			PlayerID:     rec.PlayerID,
			PlayerName:   names[rec.PlayerID],
			OriginalRank: rec.Rank,
		})
	}
	return ranked
}
