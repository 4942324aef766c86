package models

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a stored payment card. The wire format keeps the
// field names the rest of the platform already speaks (cpf, limite,
// numero, data_validade, cvv).
type Card struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CPF       string    `gorm:"not null;index" json:"cpf"`
	Limit     float64   `gorm:"not null" json:"limite"`
	Number    string    `gorm:"not null;uniqueIndex" json:"numero"`
	Expiry    string    `gorm:"not null" json:"data_validade"`
	CVV       string    `gorm:"not null" json:"cvv"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CreateCardInput represents the input for issuing a new card.
type CreateCardInput struct {
	CPF    string  `json:"cpf"`
	Limit  float64 `json:"limite"`
	Number string  `json:"numero"`
	Expiry string  `json:"data_validade"`
	CVV    string  `json:"cvv"`
}

// CardPatch is a partial update for an existing card. Zero-value ID,
// empty CPF/Number and nil Limit mean "leave the field alone".
type CardPatch struct {
	ID     uuid.UUID `json:"id"`
	CPF    string    `json:"cpf"`
	Number string    `json:"numero"`
	Limit  *float64  `json:"limite"`
}

// CardMatcher identifies the card a payment debits and carries the
// fields the holder must present for the debit to be accepted.
type CardMatcher struct {
	Number string `json:"numero"`
	CPF    string `json:"cpf"`
	CVV    string `json:"cvv"`
	Expiry string `json:"data_validade"`
}

// CardFilter narrows card listings. Fields left empty match everything;
// there is no ID field, so a listing can never be scoped to one record.
type CardFilter struct {
	CPF    string
	Number string
}
