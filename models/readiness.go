package models

// Pure status derivations for the engagement dashboard. Each function is
// total and defined for empty input; none of them touch storage.

// SwotStatus counts how many of the four quadrants have at least one item
// across all submitted rows.
func SwotStatus(rows []*SwotResponse) ModuleStatus {
	if len(rows) == 0 {
		return ModuleStatusNotStarted
	}

	var strengths, weaknesses, opportunities, threats int
	for _, row := range rows {
		strengths += len(row.Strengths)
		weaknesses += len(row.Weaknesses)
		opportunities += len(row.Opportunities)
		threats += len(row.Threats)
	}

	groupsFilled := 0
	for _, total := range []int{strengths, weaknesses, opportunities, threats} {
		if total > 0 {
			groupsFilled++
		}
	}

	switch groupsFilled {
	case 0:
		return ModuleStatusNotStarted
	case 4:
		return ModuleStatusComplete
	default:
		return ModuleStatusInProgress
	}
}

// SskStatus never reaches complete: the retrospective stays open for more
// input once anyone has responded.
func SskStatus(responseCount int) ModuleStatus {
	if responseCount == 0 {
		return ModuleStatusNotStarted
	}
	return ModuleStatusInProgress
}

// CustomerInsightsStatus has no partial state: any upload satisfies the module.
func CustomerInsightsStatus(documentCount int) ModuleStatus {
	if documentCount == 0 {
		return ModuleStatusNotStarted
	}
	return ModuleStatusComplete
}

// FinancialsStatus is a coarse count heuristic for the dashboard tile. The
// per-period checklist on the financials page uses its own, stricter
// definition; the two are intentionally separate.
func FinancialsStatus(documentCount int) ModuleStatus {
	switch {
	case documentCount == 0:
		return ModuleStatusNotStarted
	case documentCount < 3:
		return ModuleStatusInProgress
	default:
		return ModuleStatusComplete
	}
}

// StrategyIdeationGate decides whether the brainstorm phase is unlocked.
// A saved brainstorm record short-circuits to complete. Otherwise the gate
// requires vision progress and at least one of SSK or SWOT underway.
func StrategyIdeationGate(hasBrainstorm bool, visionStatus, sskStatus, swotStatus ModuleStatus) ModuleStatus {
	if hasBrainstorm {
		return ModuleStatusComplete
	}

	visionReady := visionStatus == ModuleStatusInProgress || visionStatus == ModuleStatusComplete
	hasInputs := sskStatus == ModuleStatusInProgress ||
		swotStatus == ModuleStatusInProgress || swotStatus == ModuleStatusComplete

	if !visionReady || !hasInputs {
		return ModuleStatusNotReady
	}
	return ModuleStatusAvailable
}
