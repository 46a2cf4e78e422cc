package prompts

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/guindo/fireplan-api/internal/models"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// Parsed once at package init; reused on every Build call.
var templates = template.Must(template.New("prompts").Option("missingkey=error").ParseFS(templateFS, "templates/*.md.tmpl"))

// Prompt is the pair of messages sent to the model for one analysis
type Prompt struct {
	System string
	User   string
}

// data is the view handed to the templates
type data struct {
	P             models.UserProfile
	Industry      string
	YearsToRetire string
	LegacySkills  string
}

// Build renders the system and user prompts for t. It expects a profile that
// already passed validation.Normalize. Output depends only on t and p.
func Build(t models.AnalysisType, p models.UserProfile) (Prompt, error) {
	system, ok := SystemPrompt(t, p)
	if !ok {
		return Prompt{}, fmt.Errorf("no prompt template for analysis type %q", t)
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, string(t)+".md.tmpl", newData(p)); err != nil {
		return Prompt{}, fmt.Errorf("render %s prompt: %w", t, err)
	}

	return Prompt{System: system, User: sb.String()}, nil
}

func newData(p models.UserProfile) data {
	return data{
		P:             p,
		Industry:      ResolveIndustry(p),
		YearsToRetire: YearsToRetire(p),
		LegacySkills:  legacySkills(p),
	}
}

// YearsToRetire is retire_age minus age, or "?" when retire_age is not a whole number
func YearsToRetire(p models.UserProfile) string {
	retireAge, err := strconv.Atoi(strings.TrimSpace(p.RetireAge))
	if err != nil {
		return "?"
	}
	return strconv.Itoa(retireAge - p.Age)
}

func legacySkills(p models.UserProfile) string {
	parts := make([]string, 0, 7)
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	add("languages", p.ProgrammingLangs)
	add("level", p.ProgLevel)
	add("ML", p.MLExp)
	add("frameworks", p.Frameworks)
	add("cloud", p.CloudExp)
	add("data tools", p.DataTools)
	add("projects", p.GithubProjects)
	return strings.Join(parts, "; ")
}
