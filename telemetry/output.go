package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/barrage/config"
)

// OutputManager writes the run log: one CSV row per finished level and
// periodic perf rows, plus a snapshot of the config used.
type OutputManager struct {
	dir       string
	levelFile *os.File
	perfFile  *os.File

	// Track if headers have been written
	levelHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "levels.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating levels.csv: %w", err)
	}
	om.levelFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.levelFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteLevel appends a level record to levels.csv.
func (om *OutputManager) WriteLevel(rec LevelRecord) error {
	if om == nil {
		return nil
	}

	records := []LevelRecord{rec}

	if !om.levelHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.levelFile); err != nil {
			return fmt.Errorf("writing level: %w", err)
		}
		om.levelHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.levelFile); err != nil {
			return fmt.Errorf("writing level: %w", err)
		}
	}

	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, tick int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(tick)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.levelFile != nil {
		if err := om.levelFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
