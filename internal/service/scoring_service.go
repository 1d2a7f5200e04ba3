package service

// The assessment instrument is a fixed ten-question set answered on a
// five-level ordinal scale (Never=0 ... Always=4).
const (
	QuestionCount  = 10
	MaxAnswerValue = 4
	MaxScore       = QuestionCount * MaxAnswerValue
)

// Result categories assigned by classification.
const (
	CategoryFake     = "fake"
	CategoryHealthy  = "healthy"
	CategoryModerate = "moderate"
	CategorySerious  = "serious"
)

// Spending under this many seconds per question on average marks the attempt
// as rushed: the score of such an attempt is not trustworthy, so the speed
// check overrides score-based severity.
const minSecondsPerQuestion = 2.0

// Score thresholds. Strict inequalities: a score of exactly 25 is moderate,
// exactly 15 is healthy.
const (
	seriousThreshold  = 25
	moderateThreshold = 15
)

// ScoringService computes the score and category of a completed attempt.
// It performs no I/O and expects responses already validated for shape.
type ScoringService interface {
	Evaluate(responses map[string]int, timeTaken int) (score int, category string)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Evaluate(responses map[string]int, timeTaken int) (int, string) {
	score := 0
	for _, value := range responses {
		score += value
	}

	avgTimePerQuestion := float64(timeTaken) / QuestionCount

	var category string
	switch {
	case avgTimePerQuestion < minSecondsPerQuestion:
		category = CategoryFake
	case score > seriousThreshold:
		category = CategorySerious
	case score > moderateThreshold:
		category = CategoryModerate
	default:
		category = CategoryHealthy
	}

	return score, category
}
