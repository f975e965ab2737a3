package handler_test

import (
	"context"

	"flashdeck/internal/ai"
	"flashdeck/internal/auth"
	"flashdeck/internal/middleware"
	"flashdeck/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) ListOwned(ctx context.Context, ownerID string) ([]model.Deck, error) {
	args := m.Called(ctx, ownerID)
	decks := args.Get(0)
	if decks == nil {
		return nil, args.Error(1)
	}
	return decks.([]model.Deck), args.Error(1)
}

func (m *MockDeckRepository) CardCounts(ctx context.Context, ownerID string) (map[uint]int64, error) {
	args := m.Called(ctx, ownerID)
	counts := args.Get(0)
	if counts == nil {
		return nil, args.Error(1)
	}
	return counts.(map[uint]int64), args.Error(1)
}

func (m *MockDeckRepository) CountOwned(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeckRepository) GetOwned(ctx context.Context, id uint, ownerID string) (*model.Deck, error) {
	args := m.Called(ctx, id, ownerID)
	deck := args.Get(0)
	if deck == nil {
		return nil, args.Error(1)
	}
	return deck.(*model.Deck), args.Error(1)
}

func (m *MockDeckRepository) Create(ctx context.Context, deck *model.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) UpdateOwned(ctx context.Context, id uint, ownerID string, fields map[string]interface{}) (*model.Deck, error) {
	args := m.Called(ctx, id, ownerID, fields)
	deck := args.Get(0)
	if deck == nil {
		return nil, args.Error(1)
	}
	return deck.(*model.Deck), args.Error(1)
}

func (m *MockDeckRepository) DeleteOwned(ctx context.Context, id uint, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) ListForDeck(ctx context.Context, deckID uint, ownerID string) ([]model.Card, error) {
	args := m.Called(ctx, deckID, ownerID)
	cards := args.Get(0)
	if cards == nil {
		return nil, args.Error(1)
	}
	return cards.([]model.Card), args.Error(1)
}

func (m *MockCardRepository) GetOwned(ctx context.Context, cardID uint, ownerID string) (*model.Card, error) {
	args := m.Called(ctx, cardID, ownerID)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockCardRepository) Create(ctx context.Context, deckID uint, ownerID, front, back string) (*model.Card, error) {
	args := m.Called(ctx, deckID, ownerID, front, back)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockCardRepository) UpdateOwned(ctx context.Context, cardID uint, ownerID string, fields map[string]interface{}) (*model.Card, error) {
	args := m.Called(ctx, cardID, ownerID, fields)
	card := args.Get(0)
	if card == nil {
		return nil, args.Error(1)
	}
	return card.(*model.Card), args.Error(1)
}

func (m *MockCardRepository) DeleteOwned(ctx context.Context, cardID uint, ownerID string) error {
	args := m.Called(ctx, cardID, ownerID)
	return args.Error(0)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, title, description string, count int, difficulty string) (*ai.Result, error) {
	args := m.Called(ctx, title, description, count, difficulty)
	result := args.Get(0)
	if result == nil {
		return nil, args.Error(1)
	}
	return result.(*ai.Result), args.Error(1)
}

// recordingRevalidator captures the paths handlers mark stale.
type recordingRevalidator struct {
	paths []string
}

func (r *recordingRevalidator) Revalidate(ctx context.Context, path string) error {
	r.paths = append(r.paths, path)
	return nil
}

// withIdentity stands in for the JWT middleware in handler tests.
func withIdentity(ident *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident != nil {
			c.Set(middleware.IdentityKey, ident)
		}
		c.Next()
	}
}
