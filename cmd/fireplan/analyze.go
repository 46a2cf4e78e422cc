package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/guindo/fireplan-api/config"
	"github.com/guindo/fireplan-api/internal/cache"
	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/internal/services"
	"github.com/guindo/fireplan-api/pkg/httpclient"
	"github.com/guindo/fireplan-api/pkg/llm"
	"github.com/guindo/fireplan-api/pkg/logger"
)

const typeAll = "all"

var reportTitles = map[models.AnalysisType]string{
	models.AnalysisCareer:           "Career Analysis",
	models.AnalysisROI:              "Education ROI",
	models.AnalysisFIRE:             "FIRE Plan",
	models.AnalysisSideHustle:       "Side Hustles",
	models.AnalysisInterestsRoadmap: "Interests Roadmap",
}

type analyzeOptions struct {
	profilePath  string
	analysisType string
	outDir       string
	render       bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one or all analyses for a profile",
		Long: `Reads a profile JSON file (either {"profile": {...}} or the bare profile)
and runs the requested analysis through the configured model.

Example:
  fireplan analyze --profile me.json --type all --out reports/`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Initialize(logger.Config{
				Level:       cfg.Logging.Level,
				Environment: cfg.Server.Environment,
				ServiceName: "fireplan-cli",
				Output:      "stderr",
			}); err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.AI.APIKey == "" {
				return fmt.Errorf("GROQ_API_KEY is not set")
			}

			httpCfg := httpclient.DefaultConfig()
			httpCfg.Timeout = cfg.AI.Timeout
			client := llm.NewClient(llm.Config{
				APIKey:      cfg.AI.APIKey,
				BaseURL:     cfg.AI.BaseURL,
				Model:       cfg.AI.Model,
				Temperature: cfg.AI.Temperature,
				MaxTokens:   cfg.AI.MaxTokens,
				Timeout:     cfg.AI.Timeout,
				MaxRetries:  cfg.AI.MaxRetries,
				HTTPClient:  httpclient.NewStandardClient(httpCfg),
			})
			svc := services.NewAnalysisService(client, cache.NewAnalysisCache(0), nil)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runAnalyze(ctx, svc, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "Path to the profile JSON file")
	cmd.Flags().StringVarP(&opts.analysisType, "type", "t", typeAll, "Analysis type: career, roi, fire, side_hustle or all")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Write one <type>.md per report into this directory")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render Markdown for the terminal")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

// checkType rejects a --type value before any file or network work is done
func checkType(raw string) error {
	if raw == typeAll {
		return nil
	}
	t := models.AnalysisType(raw)
	if !t.IsKnown() {
		return fmt.Errorf("%w: %q (want career, roi, fire, side_hustle or all)", services.ErrUnknownAnalysisType, raw)
	}
	if !t.IsSingle() {
		return fmt.Errorf("%s is only produced by --type all", raw)
	}
	return nil
}

func runAnalyze(ctx context.Context, svc services.AnalysisServiceInterface, opts analyzeOptions, out io.Writer) error {
	if err := checkType(opts.analysisType); err != nil {
		return err
	}

	profile, err := readProfile(opts.profilePath)
	if err != nil {
		return err
	}

	reports := make(map[models.AnalysisType]string)
	var order []models.AnalysisType

	if opts.analysisType == typeAll {
		resp, err := svc.AnalyzeAll(ctx, profile, "")
		if err != nil {
			return err
		}
		order = models.AllAnalysisTypes
		for _, t := range order {
			reports[t] = resp.Get(t)
		}
	} else {
		t := models.AnalysisType(opts.analysisType)
		resp, err := svc.Analyze(ctx, profile, t)
		if err != nil {
			return err
		}
		order = []models.AnalysisType{resp.AnalysisType}
		reports[resp.AnalysisType] = resp.Analysis
	}

	if opts.outDir != "" {
		return writeReports(opts.outDir, order, reports, out)
	}
	return printReports(order, reports, opts.render, out)
}

func readProfile(path string) (models.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var req models.BatchAnalysisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return req.Profile, nil
}

func writeReports(dir string, order []models.AnalysisType, reports map[models.AnalysisType]string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, t := range order {
		path := filepath.Join(dir, string(t)+".md")
		body := "# " + reportTitles[t] + "\n\n" + reports[t] + "\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintln(out, path)
	}
	return nil
}

func printReports(order []models.AnalysisType, reports map[models.AnalysisType]string, render bool, out io.Writer) error {
	var b strings.Builder
	for i, t := range order {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString("# " + reportTitles[t] + "\n\n")
		b.WriteString(reports[t])
		b.WriteString("\n")
	}
	text := b.String()

	if render {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		if text, err = renderer.Render(text); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	_, err := io.WriteString(out, text)
	return err
}
