package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnav/career-copilot/internal/analysis"
	"github.com/arnav/career-copilot/internal/schemas"
	"github.com/arnav/career-copilot/internal/scrape"
)

var (
	analyzeInputFile  string
	analyzeURL        string
	analyzeOutputFile string
	analyzeBrowser    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description",
	Long:  "Extract required skills, priority keywords, tools, and role expectations from a job description given as a text file or fetched from a URL.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to job description text file")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Use a headless browser when the static fetch looks incomplete")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if (analyzeInputFile == "") == (analyzeURL == "") {
		return fmt.Errorf("exactly one of --in or --url is required")
	}

	var text, role string
	if analyzeInputFile != "" {
		content, err := os.ReadFile(analyzeInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(content)
	} else {
		posting, err := fetchPosting(context.Background(), analyzeURL, analyzeBrowser)
		if err != nil {
			return err
		}
		text = posting.Description
		role = posting.Title
	}

	analyzer := analysis.DefaultAnalyzer()
	result := analyzer.Analyze(text)
	result.Role = role

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := schemas.Validate(schemas.JobAnalysis, string(out)); err != nil {
		return fmt.Errorf("analysis failed schema validation: %w", err)
	}

	return writeOutput(analyzeOutputFile, out)
}

// fetchPosting fetches a job posting, optionally falling back to a
// headless browser for JavaScript-rendered pages.
func fetchPosting(ctx context.Context, url string, useBrowser bool) (*scrape.Posting, error) {
	posting, err := scrape.URL(ctx, url)
	if useBrowser && (err != nil || scrape.NeedsBrowser(posting)) {
		if rendered, berr := scrape.URLWithBrowser(ctx, url); berr == nil {
			return rendered, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return posting, nil
}
