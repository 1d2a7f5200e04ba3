package repository

import (
	"github.com/mindfulpath/backend/internal/model"
	"gorm.io/gorm"
)

// QuizResultRepository is append-only: results are created once and read
// back for history, never updated or deleted.
type QuizResultRepository interface {
	Create(result *model.QuizResult) error
	FindAllByUser(userID uint) ([]model.QuizResult, error)
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) Create(result *model.QuizResult) error {
	return r.db.Create(result).Error
}

func (r *quizResultRepository) FindAllByUser(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	// Anonymous results have a NULL user_id and never match any user's history.
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&results).Error
	return results, err
}
