// ABOUTME: Core data types for the biometry pipeline.
// ABOUTME: Defines samples, questions, summary rows, and the statistic column set.
package models

// Sample is one raw accelerometer reading. Group holds the grouping key:
// Device for training data, SequenceId for testing data.
type Sample struct {
	T     int64
	X     float64
	Y     float64
	Z     float64
	Group int64
}

// Magnitude returns the per-sample scalar every summary statistic is
// derived from: X² + Y² + Z².
func (s Sample) Magnitude() float64 {
	return Magnitude(s.X, s.Y, s.Z)
}

// Magnitude computes the squared vector magnitude of a reading.
func Magnitude(x, y, z float64) float64 {
	return x*x + y*y + z*z
}

// Question maps a test sequence to a candidate device. Questions are
// loaded and indexed for downstream use but never transformed here.
type Question struct {
	QuestionID int64
	SequenceID int64
	QuizDevice int64
}

// Stat identifies one of the five summary statistics computed per group.
type Stat string

const (
	StatRange    Stat = "range"
	StatMin      Stat = "min"
	StatMax      Stat = "max"
	StatAvg      Stat = "avg"
	StatVariance Stat = "variance"
)

// AllStats lists the statistics in summary-table column order.
var AllStats = []Stat{StatRange, StatMin, StatMax, StatAvg, StatVariance}

// StatNames returns the statistic column names in table order.
func StatNames() []string {
	names := make([]string, len(AllStats))
	for i, s := range AllStats {
		names[i] = string(s)
	}
	return names
}

// NormalizedName returns the column name a statistic takes in a
// normalized summary table.
func (s Stat) NormalizedName() string {
	return "t_" + string(s)
}

// GroupSummary is one summary row: five statistics over the magnitudes of
// every sample in the group, plus the group key. Normalized summary rows
// share the same shape with min-max rescaled values.
type GroupSummary struct {
	Key      int64
	Range    float64
	Min      float64
	Max      float64
	Avg      float64
	Variance float64
}

// Stat returns the named statistic's value.
func (g GroupSummary) Stat(s Stat) float64 {
	switch s {
	case StatRange:
		return g.Range
	case StatMin:
		return g.Min
	case StatMax:
		return g.Max
	case StatAvg:
		return g.Avg
	case StatVariance:
		return g.Variance
	}
	return 0
}

// Set names a dataset side of the pipeline.
type Set string

const (
	SetTrain Set = "train"
	SetTest  Set = "test"
)

// AllSets lists the valid dataset sides.
var AllSets = []Set{SetTrain, SetTest}

// IsValidSet checks if a string names a dataset side.
func IsValidSet(s string) bool {
	for _, set := range AllSets {
		if string(set) == s {
			return true
		}
	}
	return false
}
