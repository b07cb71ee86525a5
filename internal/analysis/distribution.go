package analysis

// Distribution is a fixed-bucket histogram of conversion latency in whole
// days. Boundaries are closed on the right: exactly 7 lands in "0-7",
// exactly 8 in "8-14". Never counts records that did not convert, so the
// buckets are exhaustive and disjoint over the whole population.
type Distribution struct {
	Days0to7   int `json:"0-7"`
	Days8to14  int `json:"8-14"`
	Days15to30 int `json:"15-30"`
	Days31to60 int `json:"31-60"`
	Days61to90 int `json:"61-90"`
	Days91Plus int `json:"91+"`
	Never      int `json:"never"`
}

// BucketLatencies classifies every record into exactly one bucket.
func BucketLatencies(records []ConversionRecord) Distribution {
	var d Distribution
	for _, r := range records {
		if r.DaysToConversion == nil {
			d.Never++
			continue
		}
		switch days := *r.DaysToConversion; {
		case days <= 7:
			d.Days0to7++
		case days <= 14:
			d.Days8to14++
		case days <= 30:
			d.Days15to30++
		case days <= 60:
			d.Days31to60++
		case days <= 90:
			d.Days61to90++
		default:
			d.Days91Plus++
		}
	}
	return d
}

// Total returns the number of classified records; it always equals the
// population size the distribution was built from.
func (d Distribution) Total() int {
	return d.Days0to7 + d.Days8to14 + d.Days15to30 +
		d.Days31to60 + d.Days61to90 + d.Days91Plus + d.Never
}
