package models

import "time"

// AnalysisRecord is a persisted batch run
type AnalysisRecord struct {
	ID               string      `json:"id"`
	Owner            string      `json:"owner,omitempty"`
	Profile          UserProfile `json:"profile"`
	Career           string      `json:"career"`
	ROI              string      `json:"roi"`
	FIRE             string      `json:"fire"`
	SideHustle       string      `json:"side_hustle"`
	InterestsRoadmap string      `json:"interests_roadmap"`
	CreatedAt        time.Time   `json:"created_at"`
}

// AnalysisSummary is the list view of a record, without the report bodies
type AnalysisSummary struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisListResponse is the body of GET /api/analyses
type AnalysisListResponse struct {
	Analyses []AnalysisSummary `json:"analyses"`
	Count    int               `json:"count"`
}
