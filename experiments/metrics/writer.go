package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// timestampLayout names run folders without characters that some filesystems reject
const timestampLayout = "20060102T150405.000000000"

func NewWriter(baseDir, name string) (*Writer, error) {
	parent := filepath.Join(baseDir, name)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Create a subfolder named by current timestamp, retrying if an earlier writer took it
	for {
		dir := filepath.Join(parent, time.Now().UTC().Format(timestampLayout))
		err := os.Mkdir(dir, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		return &Writer{
			baseDir: dir,
		}, nil
	}
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfigs(configs []RunConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.TimeLimit.String(),
			formatFloat(config.WinScore),
			formatFloat(config.Exploration),
			strconv.Itoa(config.ChildCount),
			strconv.Itoa(config.Iterations),
		})
	}

	header := []string{"id", "time_limit", "win_score", "exploration", "child_count", "iterations"}
	if err := w.write("run_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write run configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.RunID,
			strconv.Itoa(record.Config),
			strconv.FormatUint(record.Seed, 10),
			record.TimeLimit.String(),
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.TreeSize),
			strconv.Itoa(record.BestChild),
			formatFloat(record.BestScore),
		})
	}

	header := []string{"run_id", "config", "seed", "time_limit", "duration", "iterations", "wins", "tree_size", "best_child", "best_score"}
	if err := w.write("run_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write run records: %w", err)
	}
	return nil
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Config),
			strconv.Itoa(s.Runs),
			formatFloat(s.MeanIterations),
			formatFloat(s.StdIterations),
			formatFloat(s.MeanBestScore),
			strconv.Itoa(s.BestChildMode),
		})
	}

	header := []string{"config", "runs", "mean_iterations", "std_iterations", "mean_best_score", "best_child_mode"}
	if err := w.write("summary.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	return nil
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, file))
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
