package distribution

import "errors"

var (
	// ErrWrongMethod means the season is not configured for priority
	// distribution; the operation is refused before any write happens.
	ErrWrongMethod = errors.New("season does not use priority distribution")

	// ErrNoEligiblePlayers means no player in the roster produced a needs
	// vector. Distinct from a missing season so callers can tell "nothing to
	// do" from "bad input".
	ErrNoEligiblePlayers = errors.New("no players with a final loadout")

	// ErrSeasonBusy means another computation holds the season lock.
	ErrSeasonBusy = errors.New("season computation already in progress")

	// ErrWeekLocked rejects manual edits inside the automatic planning window.
	ErrWeekLocked = errors.New("week is inside the automatic planning window")

	// ErrPlanNotFound means no cached plan exists to apply a manual edit to.
	ErrPlanNotFound = errors.New("no cached plan for season")
)
