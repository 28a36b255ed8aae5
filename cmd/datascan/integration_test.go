package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/datascan/internal/database"
	"github.com/nao1215/datascan/internal/model"
)

// exampleMarks is the documented example dataset: fifteen marks summing to
// 1286.0 with average 85.73.
const exampleMarks = `85
92
78
90
95
73
88
76
91
84
79
93
87
82
93
`

// exampleCourses holds ten course entries over four distinct courses.
const exampleCourses = `Mathematics
Physics
Chemistry
Mathematics
Biology
Physics
Mathematics
Chemistry
Biology
Physics
`

// exampleGoldenReport is the canonical report for the example scenario.
const exampleGoldenReport = `==================================================
DATASET ANALYSIS RESULTS
==================================================
Total data points: 15
Total: 1286.0
Average: 85.73
Minimum: 73.0
Maximum: 95.0

Performance: High Performance
(Average 85.73 is above threshold 85)

--------------------------------------------------
CATEGORICAL DATA ANALYSIS
--------------------------------------------------
Total unique categories: 4
Unique categories: [Biology, Chemistry, Mathematics, Physics]
==================================================
`

// writeExampleInputs writes the documented example pair into dir.
func writeExampleInputs(t *testing.T, dir string) (dataPath, categoriesPath string) {
	t.Helper()

	dataPath = filepath.Join(dir, "student_marks.csv")
	if err := os.WriteFile(dataPath, []byte(exampleMarks), 0600); err != nil {
		t.Fatalf("failed to write marks: %v", err)
	}

	categoriesPath = filepath.Join(dir, "courses.csv")
	if err := os.WriteFile(categoriesPath, []byte(exampleCourses), 0600); err != nil {
		t.Fatalf("failed to write courses: %v", err)
	}
	return dataPath, categoriesPath
}

// TestIntegrationAnalyzeGoldenReport runs the documented example scenario
// through the CLI and checks the report byte for byte on both outputs.
func TestIntegrationAnalyzeGoldenReport(t *testing.T) {
	neutralizeEnv(t)

	tmpDir := t.TempDir()
	dataPath, categoriesPath := writeExampleInputs(t, tmpDir)
	outputPath := filepath.Join(tmpDir, "analysis_report.txt")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{
		"analyze",
		"--data", dataPath,
		"--categories", categoriesPath,
		"--output", outputPath,
		"--no-history",
	})

	stdout, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if stdout != exampleGoldenReport {
		t.Errorf("console report mismatch:\ngot:\n%s\nwant:\n%s", stdout, exampleGoldenReport)
	}

	fileContent, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if string(fileContent) != exampleGoldenReport {
		t.Errorf("file report mismatch:\ngot:\n%s\nwant:\n%s", fileContent, exampleGoldenReport)
	}
}

// TestIntegrationAnalyzeHistoryCompare covers the full workflow: analyze
// twice, list the recorded runs, then compare them.
func TestIntegrationAnalyzeHistoryCompare(t *testing.T) {
	neutralizeEnv(t)

	tmpDir := t.TempDir()
	dataPath, categoriesPath := writeExampleInputs(t, tmpDir)
	dbDir := filepath.Join(tmpDir, "db")
	exportPath := filepath.Join(tmpDir, "report.json")

	analyze := func(extra ...string) {
		t.Helper()
		args := append([]string{
			"analyze",
			"--data", dataPath,
			"--categories", categoriesPath,
			"--output", filepath.Join(tmpDir, "report.txt"),
			"--db-dir", dbDir,
		}, extra...)

		rootCmd := NewRootCmd()
		rootCmd.SetArgs(args)
		if _, err := captureStdout(t, rootCmd.Execute); err != nil {
			t.Fatalf("analyze failed: %v", err)
		}
	}

	// First run, also exporting JSON
	analyze("--export-json", exportPath)

	// The export carries the full report wrapper
	exported, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read JSON export: %v", err)
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(exported, &wrapped); err != nil {
		t.Fatalf("failed to parse JSON export: %v", err)
	}
	if _, ok := wrapped["report"]; !ok {
		t.Error("expected JSON export to contain report")
	}

	// Distinct timestamps keep the history ordering stable
	time.Sleep(10 * time.Millisecond)

	// Second run on a grown dataset
	grown := exampleMarks + "99\n98\n"
	if err := os.WriteFile(dataPath, []byte(grown), 0600); err != nil {
		t.Fatalf("failed to grow data file: %v", err)
	}
	analyze()

	// History lists both runs, newest first
	historyCmd := NewRootCmd()
	historyCmd.SetArgs([]string{"history", "--db-dir", dbDir, "--format", "json"})

	historyOut, err := captureStdout(t, historyCmd.Execute)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	var runs []database.RunMetadata
	if err := json.Unmarshal([]byte(historyOut), &runs); err != nil {
		t.Fatalf("failed to parse history JSON: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(runs))
	}
	newID, oldID := runs[0].RunID, runs[1].RunID

	// The comparison reflects the two added data points
	compareCmd := NewRootCmd()
	compareCmd.SetArgs([]string{"compare", oldID, newID, "--db-dir", dbDir})

	compareOut, err := captureStdout(t, compareCmd.Execute)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	if !strings.Contains(compareOut, "RUN COMPARISON") {
		t.Errorf("expected comparison header, got:\n%s", compareOut)
	}
	if !strings.Contains(compareOut, "Data points: +2") {
		t.Errorf("expected two added data points, got:\n%s", compareOut)
	}
	if !strings.Contains(compareOut, "Total:       +197.0") {
		t.Errorf("expected total delta +197.0, got:\n%s", compareOut)
	}
	if !strings.Contains(compareOut, "Categories unchanged") {
		t.Errorf("expected unchanged categories, got:\n%s", compareOut)
	}

	// The comparison as JSON round-trips into the model type
	jsonCmd := NewRootCmd()
	jsonCmd.SetArgs([]string{"compare", oldID, newID, "--db-dir", dbDir, "--format", "json"})

	jsonOut, err := captureStdout(t, jsonCmd.Execute)
	if err != nil {
		t.Fatalf("compare --format json failed: %v", err)
	}

	var cmp model.RunComparison
	if err := json.Unmarshal([]byte(jsonOut), &cmp); err != nil {
		t.Fatalf("failed to parse comparison JSON: %v", err)
	}
	if cmp.CountDelta != 2 {
		t.Errorf("expected count delta 2, got %d", cmp.CountDelta)
	}
	if cmp.BaseRunID != oldID || cmp.OtherRunID != newID {
		t.Errorf("expected comparison of %s and %s, got %s and %s",
			oldID, newID, cmp.BaseRunID, cmp.OtherRunID)
	}
}

// TestIntegrationBatchAnalyze runs two configured dataset pairs in batch
// mode through the CLI.
func TestIntegrationBatchAnalyze(t *testing.T) {
	neutralizeEnv(t)

	tmpDir := t.TempDir()
	dataPath, categoriesPath := writeExampleInputs(t, tmpDir)

	labData := filepath.Join(tmpDir, "lab_scores.csv")
	if err := os.WriteFile(labData, []byte("60\n70\n80\n"), 0600); err != nil {
		t.Fatalf("failed to write lab scores: %v", err)
	}
	labCategories := filepath.Join(tmpDir, "experiments.csv")
	if err := os.WriteFile(labCategories, []byte("Titration\nOptics\nTitration\n"), 0600); err != nil {
		t.Fatalf("failed to write experiments: %v", err)
	}

	examOutput := filepath.Join(tmpDir, "exam_report.txt")
	labOutput := filepath.Join(tmpDir, "lab_report.txt")

	configPath := filepath.Join(tmpDir, ".datascan.yaml")
	configContent := `
datasets:
  exam-results:
    data: ` + dataPath + `
    categories: ` + categoriesPath + `
    output: ` + examOutput + `
  lab-results:
    data: ` + labData + `
    categories: ` + labCategories + `
    threshold: 65
    output: ` + labOutput + `
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{
		"analyze", "exam-results", "lab-results",
		"--config", configPath,
		"--concurrency", "2",
		"--no-history",
	})

	stdout, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("batch analyze failed: %v", err)
	}

	if !strings.Contains(stdout, "Starting batch analysis of 2 dataset pairs") {
		t.Errorf("expected batch banner, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "[1/2]") || !strings.Contains(stdout, "[2/2]") {
		t.Errorf("expected per-pair progress markers, got:\n%s", stdout)
	}

	examContent, err := os.ReadFile(examOutput)
	if err != nil {
		t.Fatalf("failed to read exam report: %v", err)
	}
	if !strings.Contains(string(examContent), "Total data points: 15") {
		t.Errorf("expected exam report content, got:\n%s", examContent)
	}

	labContent, err := os.ReadFile(labOutput)
	if err != nil {
		t.Fatalf("failed to read lab report: %v", err)
	}
	if !strings.Contains(string(labContent), "Total data points: 3") {
		t.Errorf("expected lab report content, got:\n%s", labContent)
	}
	if !strings.Contains(string(labContent), "(Average 70.00 is above threshold 65)") {
		t.Errorf("expected lab threshold sentence, got:\n%s", labContent)
	}
}

// TestIntegrationInitThenAnalyze scaffolds a working directory with init
// and analyzes the generated sample pair by its configured name.
func TestIntegrationInitThenAnalyze(t *testing.T) {
	neutralizeEnv(t)

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	initCmd := NewRootCmd()
	initCmd.SetArgs([]string{"init", "--samples"})

	if _, err := captureStdout(t, initCmd.Execute); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"analyze", "exam-results", "--no-history"})

	stdout, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	// The generated samples reproduce the documented example scenario
	if stdout != exampleGoldenReport {
		t.Errorf("report mismatch:\ngot:\n%s\nwant:\n%s", stdout, exampleGoldenReport)
	}

	// The config file's default report path is used
	fileContent, err := os.ReadFile(filepath.Join(tmpDir, "analysis_report.txt"))
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if string(fileContent) != exampleGoldenReport {
		t.Error("expected file report to match console report")
	}
}
