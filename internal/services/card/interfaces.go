package card

import (
	"context"

	"cartao/internal/models"

	"github.com/google/uuid"
)

// Service owns the business rules around issuing, updating and
// debiting payment cards.
type Service interface {
	CreateCard(ctx context.Context, token string, input models.CreateCardInput) (*models.Card, error)
	GetCards(filter models.CardFilter, limit, offset int) ([]models.Card, int64, error)
	GetCard(id uuid.UUID) (*models.Card, error)
	UpdateCard(id uuid.UUID, patch models.CardPatch) (*models.Card, error)
	DeleteCard(id uuid.UUID) error
	AdjustLimit(ctx context.Context, amount float64, matcher models.CardMatcher) error
}

// Config carries the tunable issuing rules.
type Config struct {
	// MaxCardsPerCustomer caps how many cards a single CPF may hold.
	MaxCardsPerCustomer int
}

// DefaultConfig matches the platform's production rules.
func DefaultConfig() Config {
	return Config{MaxCardsPerCustomer: 2}
}
