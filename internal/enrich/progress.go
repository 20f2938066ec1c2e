package enrich

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Progress is the resumable run checkpoint, written as indented JSON beside
// the output file.
type Progress struct {
	ProcessedCount int      `json:"processed_count"`
	TotalCount     int      `json:"total_count"`
	LastWord       string   `json:"last_word"`
	InputFile      string   `json:"input_file"`
	OutputFile     string   `json:"output_file"`
	FailedWords    []string `json:"failed_words,omitempty"`
}

// Percent returns completion as a percentage.
func (p Progress) Percent() float64 {
	if p.TotalCount == 0 {
		return 0
	}
	return float64(p.ProcessedCount) / float64(p.TotalCount) * 100
}

// SaveProgress writes the checkpoint atomically (write temp, then rename).
func SaveProgress(path string, p Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

// LoadProgress reads a checkpoint. A missing file is not an error; it
// returns ok=false so callers start fresh. A corrupt file is an error.
func LoadProgress(path string) (Progress, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Progress{}, false, nil
	}
	if err != nil {
		return Progress{}, false, fmt.Errorf("read progress: %w", err)
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, false, fmt.Errorf("parse progress: %w", err)
	}
	return p, true, nil
}

// ClearProgress removes the checkpoint file if present.
func ClearProgress(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// BackupOutput copies the output file to the backup path before a run
// touches it. A missing output file is a no-op.
func BackupOutput(outputPath, backupPath string) error {
	src, err := os.Open(outputPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open output for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	return nil
}
