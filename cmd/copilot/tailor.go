package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arnav/career-copilot/internal/analysis"
	"github.com/arnav/career-copilot/internal/customize"
	"github.com/arnav/career-copilot/internal/llm"
	"github.com/arnav/career-copilot/internal/logging"
	"github.com/arnav/career-copilot/internal/parsing"
	"github.com/arnav/career-copilot/internal/render"
	"github.com/arnav/career-copilot/internal/schemas"
	"github.com/arnav/career-copilot/internal/types"
)

var (
	tailorResumeFile string
	tailorJobFile    string
	tailorJobURL     string
	tailorOutputFile string
	tailorFormat     string
	tailorOutputDir  string
	tailorBrowser    bool
	tailorAPIKey     string
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume toward a job description",
	Long:  "Parse a resume and a job description, reorder and enhance the resume content toward the job's requirements, and render the result as a PDF or DOCX document.",
	RunE:  runTailor,
}

func init() {
	tailorCmd.Flags().StringVarP(&tailorResumeFile, "resume", "r", "", "Path to resume file (.pdf or .docx)")
	tailorCmd.Flags().StringVarP(&tailorJobFile, "job", "j", "", "Path to job description text file")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL of a job posting to fetch")
	tailorCmd.Flags().StringVarP(&tailorOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	tailorCmd.Flags().StringVar(&tailorFormat, "format", "pdf", "Rendered document format: pdf or docx")
	tailorCmd.Flags().StringVar(&tailorOutputDir, "output-dir", "generated_resumes", "Directory for rendered documents")
	tailorCmd.Flags().BoolVar(&tailorBrowser, "browser", false, "Use a headless browser when the static fetch looks incomplete")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = tailorCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(tailorCmd)
}

func runTailor(_ *cobra.Command, _ []string) error {
	if (tailorJobFile == "") == (tailorJobURL == "") {
		return fmt.Errorf("exactly one of --job or --job-url is required")
	}

	apiKey := tailorAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	logger := logging.New(verbose)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Resume parsing and job fetching are independent.
	var resume *types.StructuredResume
	var jobText, jobRole string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parsed, err := parsing.DefaultParser().ParseFile(tailorResumeFile)
		if err != nil {
			return fmt.Errorf("failed to parse resume: %w", err)
		}
		resume = parsed
		return nil
	})
	g.Go(func() error {
		if tailorJobFile != "" {
			content, err := os.ReadFile(tailorJobFile)
			if err != nil {
				return fmt.Errorf("failed to read job file: %w", err)
			}
			jobText = string(content)
			return nil
		}
		posting, err := fetchPosting(gctx, tailorJobURL, tailorBrowser)
		if err != nil {
			return err
		}
		jobText = posting.Description
		jobRole = posting.Title
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	jd := analysis.DefaultAnalyzer().Analyze(jobText)
	jd.Role = jobRole

	gateway := llm.New(ctx, llm.DefaultConfig(apiKey, os.Getenv("GEMINI_REST_API_KEY")), logger)
	result := customize.NewEngine(gateway).Customize(ctx, resume, jd)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := schemas.Validate(schemas.CustomizationResult, string(out)); err != nil {
		return fmt.Errorf("customization failed schema validation: %w", err)
	}

	renderer, err := render.NewRenderer(tailorOutputDir)
	if err != nil {
		return err
	}
	docPath, err := renderer.Render(&result.CustomizedData, render.Format(tailorFormat), "tailored_resume")
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Rendered document: %s\n", docPath)

	return writeOutput(tailorOutputFile, out)
}
