package notifier

import (
	"fmt"
	"sort"
	"strings"

	"RaidLedger/internal/distribution"
	"RaidLedger/internal/model"
)

// resource display order and labels for reports.
var resourceLabels = []struct {
	Type  model.ResourceType
	Label string
}{
	{model.ResourceTomestone, "Tomestones"},
	{model.ResourcePageFloor1, "Pages F1"},
	{model.ResourcePageFloor2, "Pages F2"},
	{model.ResourcePageFloor3, "Pages F3"},
	{model.ResourcePageFloor4, "Pages F4"},
	{model.ResourceHardenedFluid, "Hardened fluid"},
	{model.ResourceReinforcedFiber, "Reinforced fiber"},
	{model.ResourceWeaponToken, "Weapon token"},
}

// FormatPlanReport renders a weekly plan as a Telegram message.
func FormatPlanReport(seasonName string, plan *model.WeeklyPlan, manualCutoff int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🗓 <b>Distribution plan</b> | %s (%d weeks)\n", seasonName, len(plan.Weeks)))

	for _, week := range plan.Weeks {
		marker := "🔒"
		if week.Week > manualCutoff {
			marker = "✏️"
		}
		b.WriteString(fmt.Sprintf("\n<b>Week %d</b> %s\n", week.Week, marker))

		floors := make([]int, 0, len(week.Floors))
		for floor := range week.Floors {
			floors = append(floors, floor)
		}
		sort.Ints(floors)

		for _, floor := range floors {
			awards := week.Floors[floor]
			if len(awards) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("  Floor %d: ", floor))
			parts := make([]string, 0, len(awards))
			for _, a := range awards {
				part := fmt.Sprintf("%s→%s", a.Slot, a.PlayerName)
				if a.ManualInput {
					part += "*"
				}
				parts = append(parts, part)
			}
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n<b>Totals:</b> ")
	b.WriteString(formatAcquisitions(plan))
	b.WriteString("\n🔒 automatic · ✏️ editable · * manual override")
	return b.String()
}

// FormatPriorityReport renders the per-slot ranking from a computation result.
func FormatPriorityReport(seasonName string, result *distribution.ComputeResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>Distribution priorities</b> | %s\n\n", seasonName))
	for _, slot := range model.AllSlots {
		order := result.Priorities[slot]
		if len(order) == 0 {
			continue
		}
		names := make([]string, len(order))
		for i, playerID := range order {
			names[i] = result.PlayerNames[playerID]
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", slot, strings.Join(names, " > ")))
	}

	if len(result.Failures) > 0 {
		b.WriteString("\n⚠️ skipped players:\n")
		for _, f := range result.Failures {
			b.WriteString(fmt.Sprintf("  %s: %s\n", f.Nickname, f.Reason))
		}
	}
	return b.String()
}

// FormatNeedsReport renders one player's required currencies.
func FormatNeedsReport(playerName string, needs model.NeedsVector) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💰 <b>Required resources</b> | %s\n\n", playerName))
	for _, rl := range resourceLabels {
		if needs[rl.Type] == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %d\n", rl.Label, needs[rl.Type]))
	}
	if needs.Total() == 0 {
		b.WriteString("nothing left to farm 🎉\n")
	}
	return b.String()
}

func formatAcquisitions(plan *model.WeeklyPlan) string {
	names := make(map[int64]string)
	for _, week := range plan.Weeks {
		for _, awards := range week.Floors {
			for _, a := range awards {
				names[a.PlayerID] = a.PlayerName
			}
		}
	}

	type count struct {
		playerID int64
		n        int
	}
	counts := make([]count, 0, len(plan.Acquisitions))
	for id, n := range plan.Acquisitions {
		counts = append(counts, count{playerID: id, n: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].playerID < counts[j].playerID
	})
	parts := make([]string, len(counts))
	for i, c := range counts {
		name := names[c.playerID]
		if name == "" {
			name = fmt.Sprintf("#%d", c.playerID)
		}
		parts[i] = fmt.Sprintf("%s×%d", name, c.n)
	}
	return strings.Join(parts, " ")
}
