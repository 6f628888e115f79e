package stats

import (
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// Step is the distance travelled from the previous located record to this one
type Step struct {
	Record   models.MediaRecord
	Distance float64
}

// Steps computes consecutive haversine distances over the located records of seq.
// The first record contributes zero. Sentinel records are skipped.
func Steps(seq models.OrderedRecords, unit Unit) []Step {
	located := models.Located(seq.Records)
	steps := make([]Step, len(located))
	for i, r := range located {
		steps[i] = Step{Record: r}
		if i == 0 {
			continue
		}
		prev := located[i-1]
		steps[i].Distance = unit.Distance(prev.Latitude, prev.Longitude, r.Latitude, r.Longitude)
	}
	return steps
}

// YearlyTravel groups step distances by the year of each step's later record and
// counts located records per year. Records with an unknown instant join no year
// but still anchor the next step. Rows are ordered by year ascending.
func YearlyTravel(seq models.OrderedRecords, unit Unit) []models.YearlyTravelStat {
	byYear := make(map[int]*models.YearlyTravelStat)

	for _, step := range Steps(seq, unit) {
		t, ok := seq.Key.Instant(step.Record)
		if !ok {
			continue
		}
		year := t.Year()
		row, exists := byYear[year]
		if !exists {
			row = &models.YearlyTravelStat{Year: year, Unit: string(unit)}
			byYear[year] = row
		}
		row.GeotagCount++
		row.TotalDistance += step.Distance
	}

	rows := make([]models.YearlyTravelStat, 0, len(byYear))
	for _, row := range byYear {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Year < rows[j].Year
	})
	return rows
}

// Report builds the yearly travel report for a caller-supplied unit string,
// collecting unit fallback and ordering diagnostics as notices
func Report(seq models.OrderedRecords, unitName string) models.YearlyTravelReport {
	return ReportYear(seq, unitName, 0)
}

// ReportYear is Report restricted to one year of the sort key. Steps are still
// computed over the whole sequence, so the step into the year's first record
// counts toward that year. A zero year keeps every row.
func ReportYear(seq models.OrderedRecords, unitName string, year int) models.YearlyTravelReport {
	unit, notice := ParseUnit(unitName)

	report := models.YearlyTravelReport{
		Unit:        string(unit),
		SortKey:     seq.Key,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if notice != "" {
		log.Warn().Str("unit", unitName).Msg("Unsupported distance unit, using kilometers")
		report.Notices = append(report.Notices, notice)
	}

	if v := seq.Located().CheckOrder(); len(v) > 0 {
		log.Warn().
			Str("sortKey", string(seq.Key)).
			Int("violations", len(v)).
			Msg("Distance input is out of order")
		report.OutOfOrder = v
		report.Notices = append(report.Notices, "input records are not in non-decreasing order")
	}

	steps := Steps(seq, unit)
	if len(steps) > 0 {
		steps = steps[1:]
	}
	rows := YearlyTravel(seq, unit)

	if year != 0 {
		rows = slices.DeleteFunc(rows, func(r models.YearlyTravelStat) bool { return r.Year != year })
		steps = slices.DeleteFunc(steps, func(s Step) bool {
			t, ok := seq.Key.Instant(s.Record)
			return !ok || t.Year() != year
		})
	}

	report.Stats = rows
	report.Summary = summarize(steps, rows)
	return report
}

// summarize derives the overall figures from the steps after the first record
// and the yearly rows
func summarize(steps []Step, rows []models.YearlyTravelStat) models.TravelSummary {
	distances := make([]float64, len(steps))
	for i, s := range steps {
		distances[i] = s.Distance
	}

	yearly := make([]float64, len(rows))
	located := 0
	for i, r := range rows {
		yearly[i] = r.TotalDistance
		located += r.GeotagCount
	}

	return models.TravelSummary{
		TotalDistance:  Sum(yearly),
		MeanPerYear:    Mean(yearly),
		MedianStep:     Median(distances),
		LongestStep:    Max(distances),
		LocatedRecords: located,
	}
}
