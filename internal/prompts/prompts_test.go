package prompts

import (
	"strings"
	"testing"

	"github.com/guindo/fireplan-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile() models.UserProfile {
	return models.UserProfile{
		Name:                    "Ana Souza",
		Age:                     24,
		University:              "USP",
		Major:                   "Computer Science",
		Location:                "São Paulo",
		CurrentJob:              "Junior Developer",
		CurrentSalary:           "30000",
		DreamJob:                "Staff Engineer",
		RetireAge:               "45",
		MastersSpecificPrograms: "Georgia Tech OMSCS",
		PassionTopics:           "climate tech",
		KeySkills:               "Go, SQL",
		ProgrammingLangs:        "Go, Python",
	}
}

func TestBuild_AllTypesRender(t *testing.T) {
	for _, at := range models.AllAnalysisTypes {
		t.Run(string(at), func(t *testing.T) {
			got, err := Build(at, profile())
			require.NoError(t, err)
			assert.NotEmpty(t, got.System)
			assert.Contains(t, got.User, "Ana Souza")
			assert.NotContains(t, got.User, "<no value>")
		})
	}
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build("crypto", profile())
	assert.Error(t, err)
}

func TestBuild_Deterministic(t *testing.T) {
	first, err := Build(models.AnalysisFIRE, profile())
	require.NoError(t, err)
	second, err := Build(models.AnalysisFIRE, profile())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_YearsToRetire(t *testing.T) {
	got, err := Build(models.AnalysisFIRE, profile())
	require.NoError(t, err)
	assert.Contains(t, got.User, "Age 24 -> 45 (21 years to FIRE)")

	p := profile()
	p.RetireAge = "early, maybe 40s"
	got, err = Build(models.AnalysisROI, p)
	require.NoError(t, err)
	assert.Contains(t, got.User, "? years left")
}

func TestYearsToRetire(t *testing.T) {
	tests := []struct {
		retire string
		age    int
		want   string
	}{
		{"45", 24, "21"},
		{" 60 ", 30, "30"},
		{"", 30, "?"},
		{"45.5", 30, "?"},
		{"20", 30, "-10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YearsToRetire(models.UserProfile{RetireAge: tt.retire, Age: tt.age}), "retire_age %q", tt.retire)
	}
}

func TestSystemPrompt_IndustryTables(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		want     string
	}{
		{name: "blank uses technology", industry: "", want: careerSystem[IndustryTechnology]},
		{name: "known industry", industry: IndustryLegal, want: careerSystem[IndustryLegal]},
		{name: "unknown falls back to other", industry: "Agriculture", want: careerSystem[IndustryOther]},
		{name: "lookup is case sensitive", industry: "legal", want: careerSystem[IndustryOther]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SystemPrompt(models.AnalysisCareer, models.UserProfile{PrimaryIndustry: tt.industry})
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemPrompt_FallbackPerTable(t *testing.T) {
	p := models.UserProfile{PrimaryIndustry: "Space Mining"}

	roi, _ := SystemPrompt(models.AnalysisROI, p)
	assert.Equal(t, roiSystem[IndustryOther], roi)

	hustle, _ := SystemPrompt(models.AnalysisSideHustle, p)
	assert.Equal(t, sideHustleSystem[IndustryOther], hustle)

	// single-prompt types ignore the industry
	fire, _ := SystemPrompt(models.AnalysisFIRE, p)
	assert.Equal(t, fireSystem, fire)
	roadmap, _ := SystemPrompt(models.AnalysisInterestsRoadmap, p)
	assert.Equal(t, interestsRoadmapSystem, roadmap)
}

func TestSystemPrompt_TablesComplete(t *testing.T) {
	industries := []string{
		IndustryTechnology, IndustryBusiness, IndustryHealthcare, IndustryCreative,
		IndustryEducation, IndustryLegal, IndustryOther,
	}
	for _, table := range []map[string]string{careerSystem, roiSystem, sideHustleSystem} {
		for _, industry := range industries {
			assert.NotEmpty(t, table[industry], industry)
		}
	}
}

func TestBuild_SideHustleShowsRawIndustry(t *testing.T) {
	p := profile()
	p.PrimaryIndustry = "Space Mining"

	got, err := Build(models.AnalysisSideHustle, p)
	require.NoError(t, err)
	assert.Contains(t, got.User, "Industry: Space Mining")
	assert.Equal(t, sideHustleSystem[IndustryOther], got.System)
}

func TestBuild_OptionalLinesOmitted(t *testing.T) {
	p := profile()
	p.KeySkills = ""
	p.ToolsPlatforms = ""

	got, err := Build(models.AnalysisCareer, p)
	require.NoError(t, err)
	assert.Contains(t, got.User, "Professional skills not specified")
	assert.NotContains(t, got.User, "Tools/Platforms:")
	assert.Contains(t, got.User, "Technical background: languages: Go, Python")

	roadmap, err := Build(models.AnalysisInterestsRoadmap, p)
	require.NoError(t, err)
	assert.Contains(t, roadmap.User, "Industry: Not specified")
	assert.False(t, strings.Contains(roadmap.User, "Key Skills:"))
}
