package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cartao/internal/models"
	"cartao/internal/services/card"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCardService struct {
	mock.Mock
}

func newTestApp(svc card.Service) *fiber.App {
	app := fiber.New()
	h := NewCardHandler(svc)
	grp := app.Group("/cartao")
	grp.Post("/", h.CreateCard)
	grp.Get("/", h.GetCards)
	grp.Post("/atualizaLimiteCartao/:valor", h.AdjustLimit)
	grp.Get("/:id", h.GetCard)
	grp.Put("/:id", h.UpdateCard)
	grp.Delete("/:id", h.DeleteCard)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCardHandler_CreateCard(t *testing.T) {
	body := `{"cpf":"25310413030","limite":1000,"numero":"4417810025751018","data_validade":"12/30","cvv":"234"}`

	t.Run("returns the created card", func(t *testing.T) {
		svc := new(MockCardService)
		created := &models.Card{ID: uuid.New(), CPF: "25310413030", Limit: 1000}
		svc.On("CreateCard", mock.Anything, mock.Anything, mock.Anything).Return(created, nil)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Card
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("maps the card cap to forbidden", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("CreateCard", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, card.ErrTooManyCards)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("maps an unregistered customer to a server error", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("CreateCard", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, card.ErrCustomerNotFound)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCardHandler_GetCards(t *testing.T) {
	svc := new(MockCardService)
	cards := []models.Card{{ID: uuid.New(), CPF: "25310413030"}}
	svc.On("GetCards", models.CardFilter{CPF: "25310413030"}, 10, 0).
		Return(cards, int64(1), nil)

	resp, err := newTestApp(svc).Test(httptest.NewRequest(http.MethodGet, "/cartao/?cpf=25310413030", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Content []models.Card `json:"content"`
		Meta    struct {
			TotalItems int64 `json:"total_items"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Content, 1)
	assert.Equal(t, int64(1), got.Meta.TotalItems)
}

func TestCardHandler_GetCard(t *testing.T) {
	t.Run("rejects a malformed id", func(t *testing.T) {
		svc := new(MockCardService)
		resp, err := newTestApp(svc).Test(httptest.NewRequest(http.MethodGet, "/cartao/not-a-uuid", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("maps not found to bad request", func(t *testing.T) {
		id := uuid.New()
		svc := new(MockCardService)
		svc.On("GetCard", id).Return(nil, card.ErrCardNotFound)

		resp, err := newTestApp(svc).Test(httptest.NewRequest(http.MethodGet, "/cartao/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCardHandler_UpdateCard(t *testing.T) {
	id := uuid.New()

	t.Run("returns accepted on success", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("UpdateCard", id, mock.Anything).Return(&models.Card{ID: id}, nil)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPut, "/cartao/"+id.String(), `{"numero":"123"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("maps immutable field violations to bad request", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("UpdateCard", id, mock.Anything).Return(nil, card.ErrImmutableField)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPut, "/cartao/"+id.String(), `{"cpf":"1"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCardHandler_AdjustLimit(t *testing.T) {
	body := `{"numero":"4417810025751018","cpf":"25310413030","cvv":"234","data_validade":"12/30"}`

	t.Run("returns accepted on success", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("AdjustLimit", mock.Anything, float64(100), mock.Anything).Return(nil)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/atualizaLimiteCartao/100", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("maps insufficient limit to bad request", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("AdjustLimit", mock.Anything, float64(100), mock.Anything).
			Return(card.ErrInsufficientLimit)

		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/atualizaLimiteCartao/100", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a non-numeric amount", func(t *testing.T) {
		svc := new(MockCardService)
		resp, err := newTestApp(svc).Test(jsonRequest(http.MethodPost, "/cartao/atualizaLimiteCartao/abc", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	id := uuid.New()

	t.Run("returns no content on success", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("DeleteCard", id).Return(nil)

		resp, err := newTestApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/cartao/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("maps not found to bad request", func(t *testing.T) {
		svc := new(MockCardService)
		svc.On("DeleteCard", id).Return(card.ErrCardNotFound)

		resp, err := newTestApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/cartao/"+id.String(), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// Mock implementation of card.Service

func (m *MockCardService) CreateCard(ctx context.Context, token string, input models.CreateCardInput) (*models.Card, error) {
	args := m.Called(ctx, token, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardService) GetCards(filter models.CardFilter, limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardService) GetCard(id uuid.UUID) (*models.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardService) UpdateCard(id uuid.UUID, patch models.CardPatch) (*models.Card, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardService) DeleteCard(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCardService) AdjustLimit(ctx context.Context, amount float64, matcher models.CardMatcher) error {
	args := m.Called(ctx, amount, matcher)
	return args.Error(0)
}
