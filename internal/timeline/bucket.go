// Package timeline groups image records into fixed historical periods.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"image_fetcher/internal/domain"
)

type period struct {
	label string
	start int
	end   int
}

// periods returns the fixed period table, most recent first.
// The first and last periods are open-ended so every year has a home.
func periods(currentYear int) []period {
	table := []period{{label: "2020s", start: 2020, end: currentYear}}
	for decade := 2010; decade >= 1900; decade -= 10 {
		table = append(table, period{
			label: fmt.Sprintf("%ds", decade),
			start: decade,
			end:   decade + 9,
		})
	}
	table = append(table,
		period{label: "1800s", start: 1800, end: 1899},
		period{label: "Earlier", start: 0, end: 1799},
	)
	return table
}

func (p period) contains(year int, first, last bool) bool {
	if first && year >= p.start {
		return true
	}
	if last && year <= p.end {
		return true
	}
	return year >= p.start && year <= p.end
}

// Bucket groups records into timeline periods using the current calendar year.
func Bucket(records []domain.ImageRecord) []domain.TimelinePeriod {
	return BucketAt(records, time.Now().Year())
}

// BucketAt groups records into timeline periods relative to currentYear.
//
// Records are stably sorted by year descending, undated last, then assigned to
// the first period containing their year. Undated records form their own
// bucket, ordered as if it started at currentYear. Empty periods are omitted.
func BucketAt(records []domain.ImageRecord, currentYear int) []domain.TimelinePeriod {
	sorted := make([]domain.ImageRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) > sortKey(sorted[j])
	})

	table := periods(currentYear)
	dated := make([][]domain.ImageRecord, len(table))
	var undated []domain.ImageRecord

	for _, r := range sorted {
		if !r.HasYear() {
			undated = append(undated, r)
			continue
		}
		for i, p := range table {
			if p.contains(*r.Year, i == 0, i == len(table)-1) {
				dated[i] = append(dated[i], r)
				break
			}
		}
	}

	var out []domain.TimelinePeriod
	if len(undated) > 0 {
		out = append(out, domain.TimelinePeriod{
			Label:     domain.UndatedPeriodLabel,
			StartYear: currentYear,
			EndYear:   currentYear,
			Images:    undated,
		})
	}
	for i, p := range table {
		if len(dated[i]) == 0 {
			continue
		}
		out = append(out, domain.TimelinePeriod{
			Label:     p.label,
			StartYear: p.start,
			EndYear:   p.end,
			Images:    dated[i],
		})
	}

	// Undated sits first, so it wins a tie with a period starting at currentYear.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartYear > out[j].StartYear
	})

	return out
}

func sortKey(r domain.ImageRecord) int {
	if r.Year == nil {
		return math.MinInt
	}
	return *r.Year
}
