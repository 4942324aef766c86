package card

import (
	"context"
	"errors"
	"fmt"

	"cartao/internal/integrations/customer"
	"cartao/internal/models"
	"cartao/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo      repositories.CardRepository
	validator customer.Validator
	cfg       Config
}

func NewService(repo repositories.CardRepository, validator customer.Validator, cfg Config) Service {
	if cfg.MaxCardsPerCustomer <= 0 {
		cfg.MaxCardsPerCustomer = DefaultConfig().MaxCardsPerCustomer
	}
	return &service{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// CreateCard issues a new card for a registered customer. The per-CPF
// card cap is checked against currently persisted cards, then the
// caller's token is forwarded to the customer service to confirm the
// CPF belongs to a registered customer. Nothing is written unless both
// checks pass.
func (s *service) CreateCard(ctx context.Context, token string, input models.CreateCardInput) (*models.Card, error) {
	count, err := s.repo.CountByCPF(input.CPF)
	if err != nil {
		return nil, fmt.Errorf("failed to count customer cards: %w", err)
	}
	if count >= int64(s.cfg.MaxCardsPerCustomer) {
		return nil, fmt.Errorf("%w: a customer may have at most %d cards", ErrTooManyCards, s.cfg.MaxCardsPerCustomer)
	}

	cust, err := s.validator.GetCustomer(ctx, token, input.CPF)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}
	if cust == nil {
		return nil, ErrCustomerNotFound
	}

	card := &models.Card{
		ID:     uuid.New(),
		CPF:    input.CPF,
		Limit:  input.Limit,
		Number: input.Number,
		Expiry: input.Expiry,
		CVV:    input.CVV,
	}
	if err := s.repo.Save(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) GetCards(filter models.CardFilter, limit, offset int) ([]models.Card, int64, error) {
	return s.repo.FindAll(filter, limit, offset)
}

func (s *service) GetCard(id uuid.UUID) (*models.Card, error) {
	card, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, fmt.Errorf("%w with id: %s", ErrCardNotFound, id)
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// UpdateCard applies a partial update. The number may change freely;
// id and cpf are immutable and rejecting them happens before any write.
func (s *service) UpdateCard(id uuid.UUID, patch models.CardPatch) (*models.Card, error) {
	card, err := s.GetCard(id)
	if err != nil {
		return nil, err
	}

	if patch.Number != "" {
		card.Number = patch.Number
	}
	if patch.ID != uuid.Nil && patch.ID != card.ID {
		return nil, fmt.Errorf("%w: cannot change a card's id", ErrImmutableField)
	}
	if patch.CPF != "" && patch.CPF != card.CPF {
		return nil, fmt.Errorf("%w: cannot change a card's cpf", ErrImmutableField)
	}
	if patch.Limit != nil {
		card.Limit = *patch.Limit
	}

	if err := s.repo.Save(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) DeleteCard(id uuid.UUID) error {
	if _, err := s.GetCard(id); err != nil {
		return err
	}
	return s.repo.DeleteByID(id)
}

// AdjustLimit debits amount from the card identified by matcher.Number
// during a payment. The presented cpf, cvv and expiry must all match
// the stored card, and the debit is rejected rather than ever letting
// the available limit go negative.
func (s *service) AdjustLimit(ctx context.Context, amount float64, matcher models.CardMatcher) error {
	card, err := s.repo.FindByNumber(matcher.Number)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to get card: %w", err)
	}

	if card.CPF != matcher.CPF {
		return fmt.Errorf("%w: cpf does not match", ErrCardMismatch)
	}
	if card.CVV != matcher.CVV {
		return fmt.Errorf("%w: cvv does not match", ErrCardMismatch)
	}
	if card.Expiry != matcher.Expiry {
		return fmt.Errorf("%w: expiry does not match", ErrCardMismatch)
	}

	newLimit := card.Limit - amount
	if newLimit < 0 {
		return ErrInsufficientLimit
	}

	card.Limit = newLimit
	return s.repo.Save(card)
}
