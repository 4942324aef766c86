package repositories

import (
	"context"
	"fmt"
	"log"

	"cartao/internal/models"
	"cartao/internal/repositories/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cardRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewCardRepository creates a new instance of CardRepository.
// The cache may be nil, in which case every read goes to postgres.
func NewCardRepository(db *gorm.DB, cache *cache.CacheService) CardRepository {
	return &cardRepository{
		db:    db,
		cache: cache,
	}
}

func (r *cardRepository) FindByID(id uuid.UUID) (*models.Card, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("card", "id", id)
		if card, err := r.cache.GetCard(context.Background(), key); err == nil {
			return card, nil
		}
	}

	var card models.Card
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	r.cacheCard(&card)
	return &card, nil
}

func (r *cardRepository) FindByNumber(number string) (*models.Card, error) {
	if r.cache != nil {
		key := r.cache.GenerateKey("card", "number", number)
		if card, err := r.cache.GetCard(context.Background(), key); err == nil {
			return card, nil
		}
	}

	var card models.Card
	if err := r.db.Where("number = ?", number).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card by number: %w", err)
	}

	r.cacheCard(&card)
	return &card, nil
}

func (r *cardRepository) Save(card *models.Card) error {
	// Drop cache entries for the previous state first; an update may
	// change the number this card is cached under.
	if r.cache != nil {
		var prev models.Card
		if err := r.db.First(&prev, "id = ?", card.ID).Error; err == nil {
			r.invalidateCard(&prev)
		}
	}

	if err := r.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	r.invalidateCard(card)
	return nil
}

func (r *cardRepository) DeleteByID(id uuid.UUID) error {
	card, err := r.FindByID(id)
	if err != nil {
		return err
	}

	result := r.db.Delete(&models.Card{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}

	r.invalidateCard(card)
	return nil
}

func (r *cardRepository) CountByCPF(cpf string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Card{}).Where("cpf = ?", cpf).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

func (r *cardRepository) FindAll(filter models.CardFilter, limit, offset int) ([]models.Card, int64, error) {
	var cards []models.Card
	var total int64

	query := r.db.Model(&models.Card{})
	if filter.CPF != "" {
		query = query.Where("cpf = ?", filter.CPF)
	}
	if filter.Number != "" {
		query = query.Where("number = ?", filter.Number)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}
	if err := query.Order("created_at").Limit(limit).Offset(offset).Find(&cards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, total, nil
}

// Cache writes are best effort; a failed write only costs a later db read.
func (r *cardRepository) cacheCard(card *models.Card) {
	if r.cache == nil {
		return
	}
	if err := r.cache.CacheCard(context.Background(), card); err != nil {
		log.Printf("Failed to cache card %s: %v", card.ID, err)
	}
}

func (r *cardRepository) invalidateCard(card *models.Card) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateCard(context.Background(), card); err != nil {
		log.Printf("Failed to invalidate card %s: %v", card.ID, err)
	}
}
