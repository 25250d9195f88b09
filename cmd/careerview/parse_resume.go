package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerview/internal/observability"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a PDF or DOCX résumé into structured facts",
	Long:  "Extract the text of a PDF or DOCX résumé and print the skills, experience, titles, education and contact details found in it.",
	RunE:  runParseResume,
}

var (
	parseInputFile  string
	parseOutputFile string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to the résumé (.pdf or .docx)")
	parseResumeCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Write the facts as JSON to this file instead of printing a summary")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	facts, err := readResume(parseInputFile, log)
	if err != nil {
		return err
	}

	if parseOutputFile != "" {
		return writeJSON(parseOutputFile, facts)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResumeFacts(facts)
	return nil
}

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
