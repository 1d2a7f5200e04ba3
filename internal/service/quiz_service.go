package service

import (
	"fmt"
	"strconv"

	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/model"
	"github.com/mindfulpath/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// ResultOwner states whether a submission belongs to an authenticated user.
// Anonymous results are stored but excluded from every user's history.
type ResultOwner struct {
	userID    uint
	anonymous bool
}

func OwnedBy(userID uint) ResultOwner {
	return ResultOwner{userID: userID}
}

func AnonymousOwner() ResultOwner {
	return ResultOwner{anonymous: true}
}

type QuizService interface {
	Submit(req dto.QuizSubmitRequest, owner ResultOwner) (*dto.QuizResultResponse, error)
	History(userID uint) ([]dto.QuizResultResponse, error)
}

type quizService struct {
	resultRepo repository.QuizResultRepository
	scoring    ScoringService
}

func NewQuizService(resultRepo repository.QuizResultRepository, scoring ScoringService) QuizService {
	return &quizService{resultRepo: resultRepo, scoring: scoring}
}

// Submit validates the answer mapping, recomputes score and category
// server-side from the raw responses and elapsed time (client-supplied
// values are ignored), and stores the result.
func (s *quizService) Submit(req dto.QuizSubmitRequest, owner ResultOwner) (*dto.QuizResultResponse, error) {
	if err := validateResponses(req.Responses); err != nil {
		return nil, err
	}

	score, category := s.scoring.Evaluate(req.Responses, req.TimeTaken)

	result := model.QuizResult{
		Score:     score,
		Category:  category,
		TimeTaken: req.TimeTaken,
		Responses: model.ResponseMap(req.Responses),
	}
	if !owner.anonymous {
		uid := owner.userID
		result.UserID = &uid
	}

	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Msg("Submit: failed to store quiz result")
		return nil, fmt.Errorf("error storing quiz result: %w", err)
	}

	resp := resultToResponse(&result)
	return &resp, nil
}

func (s *quizService) History(userID uint) ([]dto.QuizResultResponse, error) {
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("History: failed to fetch quiz results")
		return nil, fmt.Errorf("error fetching quiz history: %w", err)
	}

	responses := make([]dto.QuizResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, resultToResponse(&results[i]))
	}
	return responses, nil
}

// validateResponses checks the shape of the answer mapping before the
// scoring engine runs: every question of the instrument answered exactly
// once, every value within the ordinal scale.
func validateResponses(responses map[string]int) error {
	if len(responses) != QuestionCount {
		return &ValidationError{
			Field:   "responses",
			Message: fmt.Sprintf("expected %d answers, got %d", QuestionCount, len(responses)),
		}
	}
	for key, value := range responses {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 || id > QuestionCount {
			return &ValidationError{
				Field:   "responses",
				Message: fmt.Sprintf("unknown question id %q", key),
			}
		}
		if value < 0 || value > MaxAnswerValue {
			return &ValidationError{
				Field:   "responses",
				Message: fmt.Sprintf("answer for question %s out of range [0, %d]", key, MaxAnswerValue),
			}
		}
	}
	return nil
}

func resultToResponse(result *model.QuizResult) dto.QuizResultResponse {
	return dto.QuizResultResponse{
		ID:        result.ID,
		UserID:    result.UserID,
		Score:     result.Score,
		Category:  result.Category,
		TimeTaken: result.TimeTaken,
		Responses: map[string]int(result.Responses),
		CreatedAt: result.CreatedAt,
	}
}
