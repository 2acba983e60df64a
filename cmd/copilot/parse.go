package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnav/career-copilot/internal/parsing"
	"github.com/arnav/career-copilot/internal/schemas"
)

var (
	parseInputFile  string
	parseOutputFile string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into structured JSON",
	Long:  "Extract text from a PDF or DOCX resume, derive its skills, education, experience, projects, and summary, and score it against ATS heuristics.",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume file (.pdf or .docx)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = parseCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	parser := parsing.DefaultParser()
	resume, err := parser.ParseFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	out, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := schemas.Validate(schemas.StructuredResume, string(out)); err != nil {
		return fmt.Errorf("parsed resume failed schema validation: %w", err)
	}

	return writeOutput(parseOutputFile, out)
}

// writeOutput writes JSON to a file, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
