package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UserProfile is the questionnaire a user fills in before requesting an analysis.
// Apart from Age every answer is free text; numeric-looking answers such as
// salary or retire_age stay strings because users type ranges and currencies.
//
// Validation tags are evaluated by internal/validation after sanitization.
type UserProfile struct {
	// Identity
	Name         string `json:"name" validate:"required"`
	Age          int    `json:"age" validate:"min=16,max=100"`
	University   string `json:"university" validate:"required"`
	Major        string `json:"major" validate:"required"`
	GradYear     string `json:"grad_year"`
	Location     string `json:"location" validate:"required"`
	RelocationOK string `json:"relocation_ok"`

	// Employment
	CurrentJob      string `json:"current_job"`
	PrimaryIndustry string `json:"primary_industry"`
	CurrentSalary   string `json:"current_salary"`
	JobSatisfaction string `json:"job_satisfaction"`
	YearsCurrentJob string `json:"years_current_job"`
	Industry        string `json:"industry"`
	CompanySize     string `json:"company_size"`

	// Skills
	ShareSkills    string `json:"share_skills"`
	KeySkills      string `json:"key_skills"`
	SkillLevel     string `json:"skill_level"`
	ToolsPlatforms string `json:"tools_platforms"`
	Certifications string `json:"certifications"`
	PortfolioWork  string `json:"portfolio_work"`

	// Legacy technical skills, still sent by older clients
	ProgrammingLangs string `json:"programming_langs"`
	ProgLevel        string `json:"prog_level"`
	MLExp            string `json:"ml_exp"`
	Frameworks       string `json:"frameworks"`
	CloudExp         string `json:"cloud_exp"`
	DataTools        string `json:"data_tools"`
	GithubProjects   string `json:"github_projects"`

	// Education intent
	ConsideringMasters        string `json:"considering_masters"`
	MastersFieldsInterested   string `json:"masters_fields_interested"`
	MastersLocationPreference string `json:"masters_location_preference"`
	MastersProgramLanguage    string `json:"masters_program_language"`
	MastersType               string `json:"masters_type"`
	CanAffordMasters          string `json:"can_afford_masters"`
	MastersTimeline           string `json:"masters_timeline"`
	MastersWorkWhileStudy     string `json:"masters_work_while_study"`
	MastersPriority           string `json:"masters_priority"`
	MastersSpecificPrograms   string `json:"masters_specific_programs"`
	MastersConcerns           string `json:"masters_concerns"`

	// Career goals
	DreamJob             string `json:"dream_job"`
	DreamSalary          string `json:"dream_salary"`
	TargetYears          string `json:"target_years"`
	CareerPathPreference string `json:"career_path_preference"`
	WillingToStudy       string `json:"willing_to_study"`

	// Financial state
	MonthlyExpenses    string `json:"monthly_expenses"`
	Savings            string `json:"savings"`
	MonthlySavingsGoal string `json:"monthly_savings_goal"`
	Debts              string `json:"debts"`
	FamilySupport      string `json:"family_support"`
	RiskTolerance      string `json:"risk_tolerance"`

	// Retirement vision
	RetireAge             string `json:"retire_age"`
	FireLifestyle         string `json:"fire_lifestyle"`
	RetirementLocation    string `json:"retirement_location"`
	PassiveIncomeInterest string `json:"passive_income_interest"`

	// Side income
	TimeForSide           string `json:"time_for_side"`
	SideInterests         string `json:"side_interests"`
	FreelanceExp          string `json:"freelance_exp"`
	PreferredSideIncome   string `json:"preferred_side_income"`
	MonthlySideIncomeGoal string `json:"monthly_side_income_goal"`

	// Constraints and preferences
	TimeCommit      string `json:"time_commit"`
	LearningStyle   string `json:"learning_style"`
	WorkLifeBalance string `json:"work_life_balance"`
	BiggestObstacle string `json:"biggest_obstacle"`
	NeedMost        string `json:"need_most"`

	// Interests and passions
	PassionTopics  string `json:"passion_topics"`
	FlowActivities string `json:"flow_activities"`
	DreamProjects  string `json:"dream_projects"`
	RoleModels     string `json:"role_models"`
}

// UnmarshalJSON accepts age as a number or a numeric string ("25"), the way
// web forms often send it. Any other shape is a decode error.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	aux := struct {
		*plain
		Age json.RawMessage `json:"age"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	age, err := parseAge(aux.Age)
	if err != nil {
		return err
	}
	p.Age = age
	return nil
}

func parseAge(raw json.RawMessage) (int, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	// 25.0 is a whole number too
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
		return int(f), nil
	}
	return 0, fmt.Errorf("age: %s is not a whole number", raw)
}
