package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// detailedResultCap bounds the per-word detail kept in the report file.
const detailedResultCap = 50

// Stats are the raw run counters the orchestrator accumulates.
type Stats struct {
	ConsensusAchieved   int     `json:"consensus_achieved"`
	ConsensusFailed     int     `json:"consensus_failed"`
	SingleModelFallback int     `json:"single_model_fallback"`
	TotalModelsUsed     int     `json:"total_models_used"`
	ConfidenceSum       float64 `json:"-"`
	AgreementSum        float64 `json:"-"`
}

// Summary is the aggregate section of a run report. Rates are percentages.
type Summary struct {
	TotalProcessed       int     `json:"total_processed"`
	ConsensusRate        float64 `json:"consensus_rate"`
	AverageConfidence    float64 `json:"average_confidence"`
	AverageAgreement     float64 `json:"average_agreement"`
	AverageModelsPerWord float64 `json:"average_models_per_word"`
	FallbackRate         float64 `json:"fallback_rate"`
}

// Report is the run report written as JSON next to the output file and
// served by the dashboard.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Strategy    Strategy  `json:"strategy"`
	Summary     Summary   `json:"summary"`

	// DetailedResults holds the most recent records, capped for file size.
	DetailedResults []Record `json:"detailed_results"`
}

// BuildReport folds counters and records into a report. Averages are over
// consensus words only: fallback words carry fixed scores that would skew
// them.
func BuildReport(stats Stats, strategy Strategy, records []Record) Report {
	total := len(records)
	achieved := stats.ConsensusAchieved
	if achieved < 1 {
		achieved = 1
	}

	summary := Summary{
		TotalProcessed:       total,
		AverageConfidence:    stats.ConfidenceSum / float64(achieved),
		AverageAgreement:     stats.AgreementSum / float64(achieved),
		AverageModelsPerWord: float64(stats.TotalModelsUsed) / float64(achieved),
	}
	if total > 0 {
		summary.ConsensusRate = float64(stats.ConsensusAchieved) / float64(total) * 100
		summary.FallbackRate = float64(stats.SingleModelFallback) / float64(total) * 100
	}

	detailed := records
	if len(detailed) > detailedResultCap {
		detailed = detailed[len(detailed)-detailedResultCap:]
	}

	return Report{
		GeneratedAt:     time.Now().UTC(),
		Strategy:        strategy,
		Summary:         summary,
		DetailedResults: detailed,
	}
}

// WriteReport writes the report as indented JSON, atomically.
func WriteReport(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}
	return nil
}

// ReadReport loads a report file.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parse report: %w", err)
	}
	return r, nil
}
