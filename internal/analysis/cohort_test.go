package analysis

import (
	"testing"
	"time"
)

// startRecord is a non-converted record starting at the given time.
func startRecord(entityID string, start time.Time) ConversionRecord {
	return ConversionRecord{EntityID: entityID, StartTime: start}
}

func TestParseGranularity(t *testing.T) {
	for _, valid := range []string{"day", "week", "month"} {
		if _, err := ParseGranularity(valid); err != nil {
			t.Errorf("%q should parse: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "hour", "weekly", "Week"} {
		if _, err := ParseGranularity(invalid); err == nil {
			t.Errorf("%q should be rejected", invalid)
		}
	}
}

func TestAggregateCohorts_WeekFloorsToMonday(t *testing.T) {
	// day(0) is Monday 2024-03-04; day(3) is Thursday, day(6) is Sunday —
	// all the same ISO week. day(7) starts the next week.
	records := []ConversionRecord{
		startRecord("a", day(3)),
		startRecord("b", day(6)),
		startRecord("c", day(7)),
	}

	cohorts := AggregateCohorts(records, GranularityWeek)

	if len(cohorts) != 2 {
		t.Fatalf("expected 2 cohorts got %d", len(cohorts))
	}
	if cohorts[0].CohortKey != "2024-03-04" {
		t.Errorf("expected Monday key 2024-03-04 got %s", cohorts[0].CohortKey)
	}
	if cohorts[0].TotalEntities != 2 {
		t.Errorf("expected 2 entities in first week got %d", cohorts[0].TotalEntities)
	}
	if cohorts[1].CohortKey != "2024-03-11" {
		t.Errorf("expected key 2024-03-11 got %s", cohorts[1].CohortKey)
	}
}

func TestAggregateCohorts_MonthKeyAndPeriodStart(t *testing.T) {
	records := []ConversionRecord{
		startRecord("a", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		startRecord("b", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
	}

	cohorts := AggregateCohorts(records, GranularityMonth)

	if len(cohorts) != 2 {
		t.Fatalf("expected 2 cohorts got %d", len(cohorts))
	}
	if cohorts[0].CohortKey != "2024-03" {
		t.Errorf("expected key 2024-03 got %s", cohorts[0].CohortKey)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !cohorts[0].PeriodStart.Equal(want) {
		t.Errorf("expected period start %v got %v", want, cohorts[0].PeriodStart)
	}
}

func TestAggregateCohorts_DayGranularity(t *testing.T) {
	records := []ConversionRecord{
		startRecord("a", day(0).Add(9*time.Hour)),
		startRecord("b", day(0).Add(23*time.Hour)),
		startRecord("c", day(1)),
	}

	cohorts := AggregateCohorts(records, GranularityDay)

	if len(cohorts) != 2 {
		t.Fatalf("expected 2 cohorts got %d", len(cohorts))
	}
	if cohorts[0].TotalEntities != 2 || cohorts[1].TotalEntities != 1 {
		t.Errorf("unexpected cohort sizes: %+v", cohorts)
	}
}

func TestAggregateCohorts_TotalsSumToPopulation(t *testing.T) {
	records := []ConversionRecord{
		startRecord("a", day(0)),
		startRecord("b", day(10)),
		startRecord("c", day(40)),
		startRecord("d", day(40)),
		startRecord("e", day(100)),
	}

	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		total := 0
		for _, c := range AggregateCohorts(records, g) {
			total += c.TotalEntities
		}
		if total != len(records) {
			t.Errorf("granularity %s: cohort totals sum %d, want %d", g, total, len(records))
		}
	}
}

func TestAggregateCohorts_SortedAscendingWithoutGapFilling(t *testing.T) {
	// Deliberately unordered, with an empty month between March and June.
	records := []ConversionRecord{
		startRecord("a", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
		startRecord("b", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
	}

	cohorts := AggregateCohorts(records, GranularityMonth)

	if len(cohorts) != 2 {
		t.Fatalf("expected 2 cohorts (no gap filling) got %d", len(cohorts))
	}
	if !cohorts[0].PeriodStart.Before(cohorts[1].PeriodStart) {
		t.Error("cohorts must be sorted ascending by period start")
	}
}

func TestAggregateCohorts_ReusesSummaryAndDistribution(t *testing.T) {
	ten := 10
	records := []ConversionRecord{
		{EntityID: "a", StartTime: day(0), DaysToConversion: &ten},
		startRecord("b", day(0)),
	}

	cohorts := AggregateCohorts(records, GranularityWeek)

	if len(cohorts) != 1 {
		t.Fatalf("expected 1 cohort got %d", len(cohorts))
	}
	c := cohorts[0]
	if c.ConvertedEntities != 1 || c.ConversionRate != 0.5 {
		t.Errorf("unexpected cohort stats: %+v", c)
	}
	if c.AvgDays != 10 || c.MedianDays != 10 {
		t.Errorf("unexpected cohort latency: %+v", c)
	}
	if c.Distribution.Days8to14 != 1 || c.Distribution.Never != 1 {
		t.Errorf("unexpected cohort distribution: %+v", c.Distribution)
	}
}
