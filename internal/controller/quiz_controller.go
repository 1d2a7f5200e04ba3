package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/middleware"
	"github.com/mindfulpath/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// Submit godoc
// @Summary Submit a completed assessment
// @Description Stores a quiz result. Score and category are recomputed server-side from the raw responses and elapsed time. Linked to the session user when one is present, anonymous otherwise.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param submission body dto.QuizSubmitRequest true "Answers and timing"
// @Success 201 {object} dto.QuizResultResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed or out-of-range answers"
// @Router /quiz [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req dto.QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Submit: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	owner := service.AnonymousOwner()
	if userID, ok := middleware.SessionUserID(ctx); ok {
		owner = service.OwnedBy(userID)
	}

	result, err := c.quizService.Submit(req, owner)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: verr.Message, Field: verr.Field})
			return
		}
		log.Error().Err(err).Msg("Submit: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to store quiz result"})
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// History godoc
// @Summary List the session user's quiz results, newest first
// @Tags Quiz
// @Produce json
// @Success 200 {array} dto.QuizResultResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	userID, _ := middleware.SessionUserID(ctx)

	history, err := c.quizService.History(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("History: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve quiz history"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}
