package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerview/internal/config"
	"github.com/jonathan/careerview/internal/server"
	"github.com/jonathan/careerview/internal/types"
)

const resumeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>jane.doe@example.com</w:t></w:r></w:p>
<w:p><w:r><w:t>Data Analyst at Acme 2021 - 2024</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills: Python, SQL, Tableau</w:t></w:r></w:p>
</w:body>
</w:document>`

func writeDOCX(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml":            resumeXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "jane.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// resetFlags restores every flag to its default so commands can run again.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseResumeCommand_PrintsSummary(t *testing.T) {
	out, err := execute(t, "parse-resume", "--in", writeDOCX(t))
	require.NoError(t, err)

	assert.Contains(t, out, "PARSED RESUME")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane.doe@example.com")
}

func TestParseResumeCommand_WritesJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "facts.json")
	_, err := execute(t, "parse-resume", "-i", writeDOCX(t), "-o", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var facts types.ResumeFacts
	require.NoError(t, json.Unmarshal(data, &facts))
	assert.Equal(t, "Jane Doe", facts.Name)
	assert.Equal(t, types.ParsingSuccess, facts.ParsingStatus)
	assert.Contains(t, facts.Skills.AllSkills, "Python")
}

func TestParseResumeCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"missing --in", []string{"parse-resume"}, "required"},
		{"unsupported format", []string{"parse-resume", "--in", "notes.txt"}, "only PDF and DOCX"},
		{"missing file", []string{"parse-resume", "--in", "missing.pdf"}, "failed to read resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestMatchCareersCommand(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "matches.json")
	xlsxFile := filepath.Join(dir, "matches.xlsx")

	_, err := execute(t, "match-careers", "--in", writeDOCX(t), "--out", outFile, "--xlsx", xlsxFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var record types.CareerMatchesRecord
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "jane.docx", record.BasedOnResume)
	assert.NotEmpty(t, record.Matches)
	assert.Equal(t, len(record.Matches), record.TotalMatches)

	xlsx, err := os.ReadFile(xlsxFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(xlsx), "PK"))
}

func TestCareerPathCommand(t *testing.T) {
	out, err := execute(t, "career-path", "--in", writeDOCX(t), "--career", "astronaut")
	require.NoError(t, err)
	assert.Contains(t, out, "LEARNING PATH")
}

func TestTokenCommand(t *testing.T) {
	_, err := execute(t, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_secret")

	t.Setenv("CAREERVIEW_AUTH_ADMIN_SECRET", "cli-test-secret")
	out, err := execute(t, "token", "--subject", "ops")
	require.NoError(t, err)

	claims, err := server.NewJWTService(config.AuthConfig{AdminSecret: "cli-test-secret", ExpirationHours: 1}).
		ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}
