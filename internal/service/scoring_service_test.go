package service

import (
	"strconv"
	"testing"
)

func fullResponses(value int) map[string]int {
	responses := make(map[string]int, QuestionCount)
	for i := 1; i <= QuestionCount; i++ {
		responses[strconv.Itoa(i)] = value
	}
	return responses
}

// responsesWithSum distributes total across the instrument without leaving
// the 0-4 answer range.
func responsesWithSum(total int) map[string]int {
	responses := fullResponses(0)
	for i := 1; i <= QuestionCount && total > 0; i++ {
		v := total
		if v > MaxAnswerValue {
			v = MaxAnswerValue
		}
		responses[strconv.Itoa(i)] = v
		total -= v
	}
	return responses
}

func TestEvaluateScoreIsSumOfResponses(t *testing.T) {
	scoring := NewScoringService()

	responses := fullResponses(0)
	responses["1"] = 3
	responses["2"] = 4
	responses["3"] = 1

	score, _ := scoring.Evaluate(responses, 60)
	if score != 8 {
		t.Errorf("score = %d, want 8", score)
	}
}

func TestEvaluateScoreBounds(t *testing.T) {
	scoring := NewScoringService()

	score, _ := scoring.Evaluate(fullResponses(0), 60)
	if score != 0 {
		t.Errorf("all-zero score = %d, want 0", score)
	}

	score, _ = scoring.Evaluate(fullResponses(MaxAnswerValue), 60)
	if score != MaxScore {
		t.Errorf("all-max score = %d, want %d", score, MaxScore)
	}
}

func TestEvaluateClassification(t *testing.T) {
	scoring := NewScoringService()

	tests := []struct {
		name      string
		score     int
		timeTaken int
		want      string
	}{
		{name: "rushed overrides max score", score: 40, timeTaken: 5, want: CategoryFake},
		{name: "rushed at nineteen seconds", score: 0, timeTaken: 19, want: CategoryFake},
		{name: "avg exactly two seconds is not rushed", score: 0, timeTaken: 20, want: CategoryHealthy},
		{name: "score thirty is serious", score: 30, timeTaken: 120, want: CategorySerious},
		{name: "score twenty is moderate", score: 20, timeTaken: 120, want: CategoryModerate},
		{name: "score ten is healthy", score: 10, timeTaken: 120, want: CategoryHealthy},
		{name: "boundary twenty-five is moderate", score: 25, timeTaken: 120, want: CategoryModerate},
		{name: "twenty-six is serious", score: 26, timeTaken: 120, want: CategorySerious},
		{name: "boundary fifteen is healthy", score: 15, timeTaken: 120, want: CategoryHealthy},
		{name: "sixteen is moderate", score: 16, timeTaken: 120, want: CategoryModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, category := scoring.Evaluate(responsesWithSum(tt.score), tt.timeTaken)
			if score != tt.score {
				t.Fatalf("score = %d, want %d", score, tt.score)
			}
			if category != tt.want {
				t.Errorf("category = %q, want %q", category, tt.want)
			}
		})
	}
}
