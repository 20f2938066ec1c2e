package enrich

import (
	"math"
	"path/filepath"
	"strconv"
	"testing"
)

func TestBuildReportSummary(t *testing.T) {
	stats := Stats{
		ConsensusAchieved:   3,
		ConsensusFailed:     1,
		SingleModelFallback: 1,
		TotalModelsUsed:     6,
		ConfidenceSum:       2.4,
		AgreementSum:        2.1,
	}
	records := make([]Record, 4)
	for i := range records {
		records[i].Word = "w" + strconv.Itoa(i)
	}

	report := BuildReport(stats, StrategyConsensus, records)

	s := report.Summary
	if s.TotalProcessed != 4 {
		t.Errorf("TotalProcessed = %d, want 4", s.TotalProcessed)
	}
	if math.Abs(s.ConsensusRate-75) > 1e-9 {
		t.Errorf("ConsensusRate = %v, want 75", s.ConsensusRate)
	}
	if math.Abs(s.FallbackRate-25) > 1e-9 {
		t.Errorf("FallbackRate = %v, want 25", s.FallbackRate)
	}
	if math.Abs(s.AverageConfidence-0.8) > 1e-9 {
		t.Errorf("AverageConfidence = %v, want 0.8", s.AverageConfidence)
	}
	if math.Abs(s.AverageModelsPerWord-2) > 1e-9 {
		t.Errorf("AverageModelsPerWord = %v, want 2", s.AverageModelsPerWord)
	}
	if report.Strategy != StrategyConsensus {
		t.Errorf("Strategy = %v", report.Strategy)
	}
}

func TestBuildReportCapsDetailedResults(t *testing.T) {
	records := make([]Record, 75)
	for i := range records {
		records[i].Word = "w" + strconv.Itoa(i)
	}

	report := BuildReport(Stats{ConsensusAchieved: 75}, StrategyConsensus, records)

	if len(report.DetailedResults) != detailedResultCap {
		t.Fatalf("detailed results = %d, want %d", len(report.DetailedResults), detailedResultCap)
	}
	if report.DetailedResults[0].Word != "w25" {
		t.Errorf("first detailed word = %q, want w25 (most recent kept)", report.DetailedResults[0].Word)
	}
}

func TestBuildReportEmptyRun(t *testing.T) {
	report := BuildReport(Stats{}, StrategyConsensus, nil)
	if report.Summary.TotalProcessed != 0 {
		t.Errorf("TotalProcessed = %d", report.Summary.TotalProcessed)
	}
	if report.Summary.ConsensusRate != 0 || report.Summary.FallbackRate != 0 {
		t.Errorf("rates nonzero on empty run: %+v", report.Summary)
	}
}

func TestReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multi_model_report.json")
	records := []Record{{Word: "abase", ConfidenceScore: 0.9, ConsensusAchieved: true}}

	want := BuildReport(Stats{ConsensusAchieved: 1, TotalModelsUsed: 2, ConfidenceSum: 0.9, AgreementSum: 0.8}, StrategyConsensus, records)
	if err := WriteReport(path, want); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}

	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport() error: %v", err)
	}
	if got.Summary.TotalProcessed != 1 {
		t.Errorf("TotalProcessed = %d, want 1", got.Summary.TotalProcessed)
	}
	if len(got.DetailedResults) != 1 || got.DetailedResults[0].Word != "abase" {
		t.Errorf("DetailedResults = %+v", got.DetailedResults)
	}
}
