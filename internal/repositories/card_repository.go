package repositories

import (
	"errors"

	"cartao/internal/models"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// CardRepository is the persistence boundary for cards.
type CardRepository interface {
	// Core operations
	FindByID(id uuid.UUID) (*models.Card, error)
	FindByNumber(number string) (*models.Card, error)
	Save(card *models.Card) error
	DeleteByID(id uuid.UUID) error

	// Query operations
	CountByCPF(cpf string) (int64, error)
	FindAll(filter models.CardFilter, limit, offset int) ([]models.Card, int64, error)
}
