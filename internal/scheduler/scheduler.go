package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"RaidLedger/internal/calculator"
	"RaidLedger/internal/distribution"
	"RaidLedger/internal/model"
	"RaidLedger/internal/notifier"
	"RaidLedger/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the weekly recompute and answers bot commands.
type Scheduler struct {
	Cron         *cron.Cron
	Service      *distribution.Service
	Store        store.Store
	Calc         *calculator.Calculator
	Notifier     *notifier.TelegramNotifier
	Ctx          context.Context
	DefaultWeeks int
	ManualCutoff int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *distribution.Service, st store.Store, calc *calculator.Calculator, tn *notifier.TelegramNotifier, defaultWeeks, manualCutoff int) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Service:      svc,
		Store:        st,
		Calc:         calc,
		Notifier:     tn,
		Ctx:          ctx,
		DefaultWeeks: defaultWeeks,
		ManualCutoff: manualCutoff,
	}
}

// RegisterAll registers the weekly post-reset task.
func (s *Scheduler) RegisterAll(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWeeklyNow executes the weekly task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

// weeklyTask recomputes priorities and the plan for every active season
// after the raid reset, then announces the result.
func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly recompute")

	seasons, err := s.Store.ListActiveSeasons(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] list active seasons: %v", err)
		s.trySend(fmt.Sprintf("❌ weekly recompute failed: %v", err))
		return
	}

	for _, season := range seasons {
		if season.Method != model.DistributionPriority {
			log.Printf("[INFO] season %q uses %s, skipping", season.Name, season.Method)
			continue
		}

		result, err := s.Service.ComputePrioritiesForSeason(s.Ctx, season.ID)
		if err != nil {
			log.Printf("[ERROR] compute priorities for %q: %v", season.Name, err)
			s.trySend(fmt.Sprintf("❌ priority recompute failed for %s: %v", season.Name, err))
			continue
		}
		s.trySend(notifier.FormatPriorityReport(season.Name, result))

		plan, err := s.Service.GenerateWeeklyPlan(s.Ctx, season.ID, s.DefaultWeeks)
		if err != nil {
			log.Printf("[ERROR] generate plan for %q: %v", season.Name, err)
			s.trySend(fmt.Sprintf("❌ plan generation failed for %s: %v", season.Name, err))
			continue
		}
		s.trySend(notifier.FormatPlanReport(season.Name, plan, s.ManualCutoff))
	}
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/plan":
		return s.replyPlan()
	case "/priorities":
		return s.replyPriorities()
	case "/needs":
		if len(fields) < 2 {
			return "usage: /needs <nickname>"
		}
		return s.replyNeeds(strings.Join(fields[1:], " "))
	case "/recompute":
		go s.weeklyTask()
		return "recompute started, report follows"
	default:
		return "commands:\n• /plan — current distribution plan\n• /priorities — per-slot ranking\n• /needs <nickname> — required resources\n• /recompute — rerun the weekly computation"
	}
}

// activeSeason returns the first active priority-distribution season.
func (s *Scheduler) activeSeason() (*model.Season, error) {
	seasons, err := s.Store.ListActiveSeasons(s.Ctx)
	if err != nil {
		return nil, err
	}
	for _, season := range seasons {
		if season.Method == model.DistributionPriority {
			return &season, nil
		}
	}
	return nil, errors.New("no active priority season")
}

func (s *Scheduler) replyPlan() string {
	season, err := s.activeSeason()
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	plan, found, err := s.Service.CachedPlan(s.Ctx, season.ID)
	if err != nil {
		return fmt.Sprintf("❌ read plan: %v", err)
	}
	if !found {
		plan, err = s.Service.GenerateWeeklyPlan(s.Ctx, season.ID, s.DefaultWeeks)
		if err != nil {
			return fmt.Sprintf("❌ generate plan: %v", err)
		}
	}
	return notifier.FormatPlanReport(season.Name, plan, s.ManualCutoff)
}

func (s *Scheduler) replyPriorities() string {
	season, err := s.activeSeason()
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	result, err := s.Service.ComputePrioritiesForSeason(s.Ctx, season.ID)
	if err != nil {
		return fmt.Sprintf("❌ compute priorities: %v", err)
	}
	return notifier.FormatPriorityReport(season.Name, result)
}

func (s *Scheduler) replyNeeds(nickname string) string {
	season, err := s.activeSeason()
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	roster, err := s.Store.ListRoster(s.Ctx, season.ID)
	if err != nil {
		return fmt.Sprintf("❌ list roster: %v", err)
	}
	for _, player := range roster {
		if !strings.EqualFold(player.Nickname, nickname) {
			continue
		}
		loadout, err := s.Store.GetFinalLoadout(s.Ctx, player.ID, season.ID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Sprintf("%s has no final loadout for %s", player.Nickname, season.Name)
		}
		if err != nil {
			return fmt.Sprintf("❌ load loadout: %v", err)
		}
		return notifier.FormatNeedsReport(player.Nickname, s.Calc.ComputeNeeds(loadout))
	}
	return fmt.Sprintf("no player named %q in %s", nickname, season.Name)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
