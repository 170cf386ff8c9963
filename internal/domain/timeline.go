package domain

// UndatedPeriodLabel is the label of the bucket holding records without a year.
const UndatedPeriodLabel = "Modern / Unknown Date"

// TimelinePeriod groups images that fall into one historical year range.
type TimelinePeriod struct {
	Label     string        `json:"label"`
	StartYear int           `json:"startYear"`
	EndYear   int           `json:"endYear"`
	Images    []ImageRecord `json:"images"`
}

// IsUndated reports whether this is the bucket for records without a year.
func (p TimelinePeriod) IsUndated() bool {
	return p.Label == UndatedPeriodLabel
}
