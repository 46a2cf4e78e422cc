package models

import (
	"encoding/json"
	"time"
)

// AnalysisType names one of the report kinds the assistant can produce
type AnalysisType string

const (
	AnalysisCareer           AnalysisType = "career"
	AnalysisROI              AnalysisType = "roi"
	AnalysisFIRE             AnalysisType = "fire"
	AnalysisSideHustle       AnalysisType = "side_hustle"
	AnalysisInterestsRoadmap AnalysisType = "interests_roadmap"
)

// SingleAnalysisTypes are the types accepted by POST /api/analyze
var SingleAnalysisTypes = []AnalysisType{
	AnalysisCareer,
	AnalysisROI,
	AnalysisFIRE,
	AnalysisSideHustle,
}

// AllAnalysisTypes are the types produced by a batch run, in report order
var AllAnalysisTypes = []AnalysisType{
	AnalysisCareer,
	AnalysisROI,
	AnalysisFIRE,
	AnalysisSideHustle,
	AnalysisInterestsRoadmap,
}

// IsSingle reports whether t may be requested on its own
func (t AnalysisType) IsSingle() bool {
	for _, s := range SingleAnalysisTypes {
		if s == t {
			return true
		}
	}
	return false
}

// IsKnown reports whether t is any analysis type, including batch-only ones
func (t AnalysisType) IsKnown() bool {
	return t.IsSingle() || t == AnalysisInterestsRoadmap
}

// AnalysisRequest is the body of POST /api/analyze
type AnalysisRequest struct {
	Profile      UserProfile  `json:"profile"`
	AnalysisType AnalysisType `json:"analysis_type"`
}

// AnalysisResponse carries one generated report
type AnalysisResponse struct {
	Analysis     string       `json:"analysis"`
	AnalysisType AnalysisType `json:"analysis_type"`
	Timestamp    time.Time    `json:"timestamp"`
}

// BatchAnalysisRequest is the body of POST /api/analyze-all.
// Clients may also post the bare profile; see UnmarshalJSON.
type BatchAnalysisRequest struct {
	Profile UserProfile `json:"profile"`
}

// UnmarshalJSON accepts both {"profile": {...}} and a bare profile object
func (r *BatchAnalysisRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["profile"]; ok {
		return json.Unmarshal(raw, &r.Profile)
	}
	return json.Unmarshal(data, &r.Profile)
}

// BatchAnalysisResponse carries all five reports from one batch run
type BatchAnalysisResponse struct {
	AnalysisID       string    `json:"analysis_id,omitempty"`
	Career           string    `json:"career"`
	ROI              string    `json:"roi"`
	FIRE             string    `json:"fire"`
	SideHustle       string    `json:"side_hustle"`
	InterestsRoadmap string    `json:"interests_roadmap"`
	Timestamp        time.Time `json:"timestamp"`
}

// Set stores text under the field for t
func (r *BatchAnalysisResponse) Set(t AnalysisType, text string) {
	switch t {
	case AnalysisCareer:
		r.Career = text
	case AnalysisROI:
		r.ROI = text
	case AnalysisFIRE:
		r.FIRE = text
	case AnalysisSideHustle:
		r.SideHustle = text
	case AnalysisInterestsRoadmap:
		r.InterestsRoadmap = text
	}
}

// Get returns the report stored for t
func (r *BatchAnalysisResponse) Get(t AnalysisType) string {
	switch t {
	case AnalysisCareer:
		return r.Career
	case AnalysisROI:
		return r.ROI
	case AnalysisFIRE:
		return r.FIRE
	case AnalysisSideHustle:
		return r.SideHustle
	case AnalysisInterestsRoadmap:
		return r.InterestsRoadmap
	}
	return ""
}
