package card

import "errors"

// Service errors
var (
	ErrCardNotFound      = errors.New("card not found")
	ErrCustomerNotFound  = errors.New("customer not registered")
	ErrTooManyCards      = errors.New("customer already has the maximum number of cards")
	ErrImmutableField    = errors.New("immutable field")
	ErrCardMismatch      = errors.New("card details do not match")
	ErrInsufficientLimit = errors.New("no available limit on the card")
)
