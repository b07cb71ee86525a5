package analysis

import "testing"

func TestBucketLatencies_RightClosedBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want func(Distribution) int
		name string
	}{
		{0, func(d Distribution) int { return d.Days0to7 }, "0-7"},
		{7, func(d Distribution) int { return d.Days0to7 }, "0-7"},
		{8, func(d Distribution) int { return d.Days8to14 }, "8-14"},
		{14, func(d Distribution) int { return d.Days8to14 }, "8-14"},
		{15, func(d Distribution) int { return d.Days15to30 }, "15-30"},
		{30, func(d Distribution) int { return d.Days15to30 }, "15-30"},
		{31, func(d Distribution) int { return d.Days31to60 }, "31-60"},
		{60, func(d Distribution) int { return d.Days31to60 }, "31-60"},
		{61, func(d Distribution) int { return d.Days61to90 }, "61-90"},
		{90, func(d Distribution) int { return d.Days61to90 }, "61-90"},
		{91, func(d Distribution) int { return d.Days91Plus }, "91+"},
		{365, func(d Distribution) int { return d.Days91Plus }, "91+"},
	}

	for _, tc := range cases {
		d := BucketLatencies(recordsWithDays([]int{tc.days}, 0))
		if tc.want(d) != 1 {
			t.Errorf("%d days: expected bucket %s, got %+v", tc.days, tc.name, d)
		}
		if d.Total() != 1 {
			t.Errorf("%d days: expected total 1 got %d", tc.days, d.Total())
		}
	}
}

func TestBucketLatencies_NonConvertedCountsAsNever(t *testing.T) {
	d := BucketLatencies(recordsWithDays(nil, 3))

	if d.Never != 3 {
		t.Errorf("expected never=3 got %d", d.Never)
	}
	if d.Total() != 3 {
		t.Errorf("expected total 3 got %d", d.Total())
	}
}

// Buckets are exhaustive and disjoint: every record lands in exactly one.
func TestBucketLatencies_TotalEqualsPopulation(t *testing.T) {
	records := recordsWithDays([]int{0, 7, 8, 30, 31, 90, 91, 500}, 4)

	d := BucketLatencies(records)
	if d.Total() != len(records) {
		t.Errorf("expected total %d got %d", len(records), d.Total())
	}
}
