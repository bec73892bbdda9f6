// ABOUTME: Per-group summary aggregation over the sample magnitude.
// ABOUTME: Rebuilds the destination and fills it with one grouped INSERT..SELECT.
package summary

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/teambias/biometry-challenge/internal/storage"
)

// Summarize rebuilds destTable and writes one row per distinct groupKey
// value in sourceTable: range, min, max, avg, and variance of the
// per-sample magnitude d = X*X + Y*Y + Z*Z, plus the group key. An
// empty source yields an empty destination. Variance uses the naive
// AVG(d*d) - AVG(d)*AVG(d) population formula; large magnitudes can
// lose precision to cancellation. Returns the number of groups written.
func Summarize(db *storage.DB, log *slog.Logger, sourceTable, destTable, groupKey string) (int64, error) {
	if log == nil {
		log = slog.Default()
	}

	source, err := storage.Ident(sourceTable)
	if err != nil {
		return 0, &storage.SchemaError{Table: sourceTable, Err: err}
	}
	key, err := storage.Ident(groupKey)
	if err != nil {
		return 0, &storage.SchemaError{Table: sourceTable, Err: err}
	}

	spec := storage.SummarySpec(destTable, groupKey)
	if err := db.CreateTable(spec); err != nil {
		return 0, err
	}

	dest, _ := storage.Ident(destTable)
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i], _ = storage.Ident(c.Name)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s)
		SELECT
			MAX(d) - MIN(d),
			MIN(d),
			MAX(d),
			AVG(d),
			AVG(d*d) - AVG(d)*AVG(d),
			%s
		FROM (SELECT "X"*"X" + "Y"*"Y" + "Z"*"Z" AS d, %s FROM %s)
		GROUP BY %s`,
		dest, strings.Join(cols, ", "), key, key, source, key)

	log.Debug("aggregation query", "sql", query)

	res, err := db.Exec(query)
	if err != nil {
		return 0, &storage.SchemaError{Table: sourceTable, Err: err}
	}
	groups, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("summarize %s: %w", sourceTable, err)
	}

	log.Info("summarized", "source", sourceTable, "dest", destTable, "key", groupKey, "groups", groups)
	return groups, nil
}
