package experiments

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Setup describes one experiment run for later reproduction.
type Setup struct {
	Problem   string    `json:"problem"`
	Queries   int       `json:"queries"`
	Episodes  int       `json:"episodes"`
	Seed      uint64    `json:"seed"`
	StartTime time.Time `json:"startTime"`
}

type Writer struct {
	baseDir string
}

func NewWriter(baseDir string) (*Writer, error) {
	// Create subfolder named by timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{baseDir: dir}, nil
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

func (w *Writer) WriteEpisode(episode int, metrics EpisodeMetrics) error {
	filename := fmt.Sprintf("episode%d.csv", episode)
	path := filepath.Join(w.baseDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file for episode %d: %w", episode, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"step", "action", "observation", "reward", "queries", "rollouts", "searchDepth", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write metrics header: %w", err)
	}

	for _, decision := range metrics.Decisions {
		record := []string{
			strconv.Itoa(decision.Step),
			decision.Action,
			decision.Observation,
			strconv.FormatFloat(decision.Reward, 'f', -1, 64),
			strconv.FormatInt(decision.Queries, 10),
			strconv.FormatInt(decision.Rollouts, 10),
			strconv.FormatInt(decision.SearchDepth, 10),
			decision.Duration.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write metric: %w", err)
		}
	}
	return nil
}
