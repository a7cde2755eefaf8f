// Package model defines shared data structures.
package model

import "time"

// Page identifies one of the client views.
type Page int

// The seven client views, in sidebar order.
const (
	PageHome Page = iota
	PageFeatures
	PageAnalyze
	PageDashboard
	PageGallery
	PageContact
	PageLogin
)

var pageNames = [...]string{"home", "features", "analyze", "dashboard", "gallery", "contact", "login"}

// String returns the page keyword used in fragments and flags.
func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return "unknown"
	}
	return pageNames[p]
}

// Pages lists all views in indicator order.
func Pages() []Page {
	out := make([]Page, len(pageNames))
	for i := range pageNames {
		out[i] = Page(i)
	}
	return out
}

// ParsePage resolves a page keyword, accepting a leading fragment marker.
func ParsePage(s string) (Page, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	for i, name := range pageNames {
		if s == name {
			return Page(i), true
		}
	}
	return 0, false
}

// Session holds the server-reported authentication identity.
type Session struct {
	Authenticated bool
	Email         string
}

// Preferences are the two durable client-local settings.
type Preferences struct {
	Language string
	DarkMode bool
}

// StagedUpload is an image chosen for analysis but not yet submitted.
type StagedUpload struct {
	Path           string
	Name           string
	MediaType      string
	Data           []byte
	PreviewDataURL string
}

// AnalysisResult is the outcome of one classification request.
type AnalysisResult struct {
	Prediction string
	Confidence float64
}

// ScanEntry is one historical scan returned by the server dashboard listing.
type ScanEntry struct {
	ImageURL   string
	Prediction string
	CreatedAt  time.Time
}

// ScanRecord is one locally logged analysis.
type ScanRecord struct {
	ID         int64
	Path       string
	Prediction string
	Confidence float64
	CreatedAt  time.Time
}

// DashboardSummary aggregates scan history for the dashboard header cards.
type DashboardSummary struct {
	TotalScans   int
	HealthyCount int
	IssueCount   int
	AvgHealthPct int
}
