package handlers

import (
	"errors"
	"strconv"

	"cartao/internal/models"
	"cartao/internal/services/card"
	"cartao/internal/utils/pagination"
	"cartao/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardService card.Service
}

func NewCardHandler(cardService card.Service) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard issues a new card. The caller's bearer token is forwarded
// to the customer service so it can confirm the CPF is registered.
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)

	var input models.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	created, err := h.cardService.CreateCard(c.Context(), token, input)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrTooManyCards):
			return response.Forbidden(c, err.Error())
		default:
			return response.ServerError(c, err.Error())
		}
	}

	return c.JSON(created)
}

func (h *CardHandler) GetCards(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	filter := models.CardFilter{
		CPF:    c.Query("cpf"),
		Number: c.Query("numero"),
	}

	cards, total, err := h.cardService.GetCards(filter, p.Size, p.Offset)
	if err != nil {
		return response.ServerError(c, "Failed to fetch cards")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, cards))
}

func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid card ID")
	}

	found, err := h.cardService.GetCard(id)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return c.JSON(found)
}

func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid card ID")
	}

	var patch models.CardPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	updated, err := h.cardService.UpdateCard(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrCardNotFound), errors.Is(err, card.ErrImmutableField):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, err.Error())
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(updated)
}

// AdjustLimit debits a card's available limit during a payment. The
// amount travels in the path, the card identification in the body.
func (h *CardHandler) AdjustLimit(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.Params("valor"), 64)
	if err != nil {
		return response.BadRequest(c, "Invalid amount")
	}

	var matcher models.CardMatcher
	if err := c.BodyParser(&matcher); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := h.cardService.AdjustLimit(c.Context(), amount, matcher); err != nil {
		switch {
		case errors.Is(err, card.ErrCardNotFound),
			errors.Is(err, card.ErrCardMismatch),
			errors.Is(err, card.ErrInsufficientLimit):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, err.Error())
		}
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid card ID")
	}

	if err := h.cardService.DeleteCard(id); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
