package tui

import (
	"math"

	"github.com/verte-zerg/agroscan/internal/model"
	"github.com/verte-zerg/agroscan/internal/upload"
)

// Dashboard shows at most this many history cards.
const dashboardCardLimit = 3

// summarize aggregates scan history for the dashboard header cards.
func summarize(entries []model.ScanEntry) model.DashboardSummary {
	summary := model.DashboardSummary{TotalScans: len(entries)}
	for _, entry := range entries {
		if upload.IsHealthy(entry.Prediction) {
			summary.HealthyCount++
		}
	}
	summary.IssueCount = summary.TotalScans - summary.HealthyCount
	if summary.TotalScans > 0 {
		summary.AvgHealthPct = int(math.Round(float64(summary.HealthyCount) / float64(summary.TotalScans) * 100))
	}
	return summary
}

// dashboardCards caps the history to the rendered card count.
func dashboardCards(entries []model.ScanEntry) []model.ScanEntry {
	if len(entries) > dashboardCardLimit {
		return entries[:dashboardCardLimit]
	}
	return entries
}
