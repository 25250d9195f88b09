package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerview/internal/careers"
	"github.com/jonathan/careerview/internal/export"
	"github.com/jonathan/careerview/internal/llm"
	"github.com/jonathan/careerview/internal/matching"
	"github.com/jonathan/careerview/internal/observability"
	"github.com/jonathan/careerview/internal/pathing"
	"github.com/jonathan/careerview/internal/types"
)

var matchCareersCmd = &cobra.Command{
	Use:   "match-careers",
	Short: "Suggest careers for a résumé",
	Long:  "Parse a résumé and rank matching careers. Without GEMINI_API_KEY the built-in suggestions are used.",
	RunE:  runMatchCareers,
}

var careerPathCmd = &cobra.Command{
	Use:   "career-path",
	Short: "Build a learning path from a résumé to a career",
	RunE:  runCareerPath,
}

var (
	matchInputFile  string
	matchOutputFile string
	matchXLSXFile   string

	pathInputFile  string
	pathCareerID   string
	pathOutputFile string
)

func init() {
	matchCareersCmd.Flags().StringVarP(&matchInputFile, "in", "i", "", "Path to the résumé (.pdf or .docx)")
	matchCareersCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Write the matches as JSON to this file")
	matchCareersCmd.Flags().StringVar(&matchXLSXFile, "xlsx", "", "Also export the matches as a spreadsheet")
	_ = matchCareersCmd.MarkFlagRequired("in")

	careerPathCmd.Flags().StringVarP(&pathInputFile, "in", "i", "", "Path to the résumé (.pdf or .docx)")
	careerPathCmd.Flags().StringVar(&pathCareerID, "career", "", "Career id, e.g. data_scientist")
	careerPathCmd.Flags().StringVarP(&pathOutputFile, "out", "o", "", "Write the path as JSON to this file")
	_ = careerPathCmd.MarkFlagRequired("in")
	_ = careerPathCmd.MarkFlagRequired("career")

	rootCmd.AddCommand(matchCareersCmd, careerPathCmd)
}

// matchesRecord parses the résumé at resumePath and ranks careers for it.
func matchesRecord(ctx context.Context, client llm.Client, resumePath string) (*types.CareerMatchesRecord, *types.ResumeFacts, error) {
	facts, err := readResume(resumePath, log)
	if err != nil {
		return nil, nil, err
	}

	matches := matching.New(client, matching.WithLogger(log.Named("matching"))).Match(ctx, facts)
	record := &types.CareerMatchesRecord{
		UserID:        careers.DefaultUserID,
		Matches:       matches,
		Timestamp:     time.Now().UTC(),
		TotalMatches:  len(matches),
		BasedOnResume: filepath.Base(resumePath),
		UserProfile: types.UserProfile{
			Name:            facts.Name,
			ExperienceYears: facts.ExperienceYears,
			TotalSkills:     len(facts.Skills.AllSkills),
			TopSkills:       facts.TopSkills(8),
		},
	}
	return record, facts, nil
}

func runMatchCareers(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client, closeClient, err := newLLMClient(ctx, cfg.LLM, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeClient() }()

	record, _, err := matchesRecord(ctx, client, matchInputFile)
	if err != nil {
		return err
	}

	if matchXLSXFile != "" {
		data, err := export.MatchesXLSX(record)
		if err != nil {
			return err
		}
		if err := os.WriteFile(matchXLSXFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write spreadsheet: %w", err)
		}
	}
	if matchOutputFile != "" {
		return writeJSON(matchOutputFile, record)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCareerMatches(record)
	return nil
}

func runCareerPath(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client, closeClient, err := newLLMClient(ctx, cfg.LLM, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeClient() }()

	record, facts, err := matchesRecord(ctx, client, pathInputFile)
	if err != nil {
		return err
	}
	match, ok := record.Find(pathCareerID)
	if !ok {
		match = types.GenericCareerMatch(pathCareerID)
	}
	level := match.ExperienceLevel
	if level == "" {
		level = "Entry"
	}

	optimizer := pathing.New(client, pathing.WithLogger(log.Named("pathing")))
	path := &types.CareerPathRecord{
		CareerID:     pathCareerID,
		CurrentMatch: match,
		LearningPath: optimizer.LearningPath(ctx, pathCareerID, facts.Skills.AllSkills, match.MissingSkills, level),
		UserProfile: types.PathProfile{
			Name:            facts.Name,
			CurrentSkills:   facts.TopSkills(10),
			ExperienceLevel: facts.ExperienceYears,
		},
		Timestamp: time.Now().UTC(),
	}

	if pathOutputFile != "" {
		return writeJSON(pathOutputFile, path)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintCareerPath(path)
	return nil
}
