// ABOUTME: CSV export of summary and normalized summary tables.
// ABOUTME: Header row plus one row per group, statistics first, key last.
package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/teambias/biometry-challenge/internal/models"
)

// ExportSummaryCSV writes a summary table as CSV: a header row naming the
// statistic columns and the group key, then one row per group in key
// order. Returns the number of data rows written.
func (d *DB) ExportSummaryCSV(w io.Writer, table, groupKey string, normalized bool) (int, error) {
	summaries, err := d.ListSummaries(table, groupKey, normalized, 0)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(models.AllStats)+1)
	for _, s := range models.AllStats {
		name := string(s)
		if normalized {
			name = s.NormalizedName()
		}
		header = append(header, name)
	}
	header = append(header, groupKey)
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	for _, g := range summaries {
		record := []string{
			formatStat(g.Range),
			formatStat(g.Min),
			formatStat(g.Max),
			formatStat(g.Avg),
			formatStat(g.Variance),
			strconv.FormatInt(g.Key, 10),
		}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row for %s = %d: %w", groupKey, g.Key, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(summaries), nil
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
