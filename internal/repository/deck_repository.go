package repository

import (
	"context"
	"errors"

	"flashdeck/internal/model"

	"gorm.io/gorm"
)

type DeckRepository struct {
	db *gorm.DB
}

type DeckRepositoryInterface interface {
	ListOwned(ctx context.Context, ownerID string) ([]model.Deck, error)
	CardCounts(ctx context.Context, ownerID string) (map[uint]int64, error)
	CountOwned(ctx context.Context, ownerID string) (int64, error)
	GetOwned(ctx context.Context, id uint, ownerID string) (*model.Deck, error)
	Create(ctx context.Context, deck *model.Deck) error
	UpdateOwned(ctx context.Context, id uint, ownerID string, fields map[string]interface{}) (*model.Deck, error)
	DeleteOwned(ctx context.Context, id uint, ownerID string) error
}

var _ DeckRepositoryInterface = (*DeckRepository)(nil)

func NewDeckRepository(db *gorm.DB) *DeckRepository {
	return &DeckRepository{db: db}
}

// ListOwned returns all decks owned by the caller, most recently updated first.
func (r *DeckRepository) ListOwned(ctx context.Context, ownerID string) ([]model.Deck, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	var decks []model.Deck
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&decks).Error
	return decks, err
}

type deckCardCount struct {
	DeckID uint
	Count  int64
}

// CardCounts returns the number of cards per deck for the caller's decks.
func (r *DeckRepository) CardCounts(ctx context.Context, ownerID string) (map[uint]int64, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	var rows []deckCardCount
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Select("cards.deck_id AS deck_id, count(cards.id) AS count").
		Joins("JOIN decks ON decks.id = cards.deck_id").
		Where("decks.user_id = ?", ownerID).
		Group("cards.deck_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.DeckID] = row.Count
	}
	return counts, nil
}

func (r *DeckRepository) CountOwned(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrUnauthorized
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Deck{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

// GetOwned returns the deck only if it exists and belongs to the caller.
// A missing or foreign deck comes back as nil, nil so callers can render a
// not-found state instead of failing hard.
func (r *DeckRepository) GetOwned(ctx context.Context, id uint, ownerID string) (*model.Deck, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	var deck model.Deck
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *DeckRepository) Create(ctx context.Context, deck *model.Deck) error {
	if deck.UserID == "" {
		return ErrUnauthorized
	}
	return r.db.WithContext(ctx).Create(deck).Error
}

// UpdateOwned applies only the given fields to a deck matching both id and
// owner. When nothing matched it returns nil, nil; not-found and not-yours are
// deliberately indistinguishable.
func (r *DeckRepository) UpdateOwned(ctx context.Context, id uint, ownerID string, fields map[string]interface{}) (*model.Deck, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	result := r.db.WithContext(ctx).Model(&model.Deck{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var deck model.Deck
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

// DeleteOwned removes the deck; the foreign key cascade removes its cards in
// the same statement.
func (r *DeckRepository) DeleteOwned(ctx context.Context, id uint, ownerID string) error {
	if ownerID == "" {
		return ErrUnauthorized
	}
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Deck{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeckNotFound
	}
	return nil
}
