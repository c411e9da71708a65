package scoring

import "math"

// Severity classes map onto Bulma progress-bar colors.
const (
	ClassPrimary = "is-primary"
	ClassWarning = "is-warning"
	ClassDanger  = "is-danger"
)

const (
	primaryFloor = 75
	warningFloor = 50
)

type Counts struct {
	Pass  int
	Fail  int
	Total int
}

// Percentage is pass/total*100. A suite that reported no tests scores 0.
func Percentage(c Counts) float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Pass) / float64(c.Total) * 100
}

// WarningLevel maps a percentage to its class. Both floors are exclusive:
// exactly 75 is a warning and exactly 50 is danger.
func WarningLevel(score float64) string {
	switch {
	case score > primaryFloor:
		return ClassPrimary
	case score > warningFloor:
		return ClassWarning
	default:
		return ClassDanger
	}
}

// Rounded is the whole-number percentage shown on the page.
func Rounded(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Round(score))
}

type Overview struct {
	Libraries    int
	Primary      int
	Warning      int
	Danger       int
	MeanScore    float64
	TotalPass    int
	TotalTests   int
	OverallScore float64
}

// Summarize folds per-library counts into page totals. Mean is the
// unweighted average of the library scores; Overall weights by test count.
func Summarize(counts []Counts) Overview {
	out := Overview{Libraries: len(counts)}
	if len(counts) == 0 {
		return out
	}
	sum := 0.0
	for _, c := range counts {
		s := Percentage(c)
		sum += s
		switch WarningLevel(s) {
		case ClassPrimary:
			out.Primary++
		case ClassWarning:
			out.Warning++
		default:
			out.Danger++
		}
		out.TotalPass += c.Pass
		out.TotalTests += c.Total
	}
	out.MeanScore = sum / float64(len(counts))
	out.OverallScore = Percentage(Counts{Pass: out.TotalPass, Total: out.TotalTests})
	return out
}
