// ABOUTME: Ingestion orchestrator for the three fixed raw datasets.
// ABOUTME: Loads questions, test, and train CSVs, builds indexes, records audits.
package ingest

import (
	"path/filepath"

	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
)

// Sources holds the CSV paths for one ingestion run.
type Sources struct {
	Questions string
	Test      string
	Train     string
}

// DefaultSources resolves the conventional file names under dir.
func DefaultSources(dir string) Sources {
	return Sources{
		Questions: filepath.Join(dir, "questions.csv"),
		Test:      filepath.Join(dir, "test.csv"),
		Train:     filepath.Join(dir, "train.csv"),
	}
}

// Result reports one completed table load.
type Result struct {
	Table  string
	Source string
	Rows   int
}

// dataset pairs a table spec with its source path.
type dataset struct {
	spec storage.TableSpec
	path string
}

// Ingest loads all three datasets in order, rebuilding each table,
// creating its indexes, and recording a load-run audit row. The first
// failure aborts the remaining datasets; tables already committed are
// left in place.
func (l *Loader) Ingest(src Sources) ([]Result, error) {
	datasets := []dataset{
		{spec: storage.QuestionsSpec(), path: src.Questions},
		{spec: storage.TestSpec(), path: src.Test},
		{spec: storage.TrainSpec(), path: src.Train},
	}

	var results []Result
	for _, ds := range datasets {
		n, err := l.Load(ds.spec, ds.path)
		if err != nil {
			return results, err
		}
		for _, key := range ds.spec.IndexKeys {
			if err := l.db.EnsureIndex(ds.spec.Name, key); err != nil {
				return results, err
			}
			l.log.Debug("built index", "index", storage.IndexName(ds.spec.Name, key))
		}
		if err := l.db.RecordLoadRun(models.NewLoadRun(ds.spec.Name, ds.path, n)); err != nil {
			return results, err
		}
		results = append(results, Result{Table: ds.spec.Name, Source: ds.path, Rows: n})
	}
	return results, nil
}
