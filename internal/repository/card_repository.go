package repository

import (
	"context"
	"errors"

	"flashdeck/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	ListForDeck(ctx context.Context, deckID uint, ownerID string) ([]model.Card, error)
	GetOwned(ctx context.Context, cardID uint, ownerID string) (*model.Card, error)
	Create(ctx context.Context, deckID uint, ownerID, front, back string) (*model.Card, error)
	UpdateOwned(ctx context.Context, cardID uint, ownerID string, fields map[string]interface{}) (*model.Card, error)
	DeleteOwned(ctx context.Context, cardID uint, ownerID string) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) verifyDeckOwned(ctx context.Context, deckID uint, ownerID string) error {
	var deck model.Deck
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", deckID, ownerID).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDeckNotFound
	}
	return err
}

// ListForDeck re-verifies deck ownership, then returns the deck's cards most
// recently updated first. Unlike DeckRepository.GetOwned, a missing or foreign
// deck is an error here: the caller is system code, not display code.
func (r *CardRepository) ListForDeck(ctx context.Context, deckID uint, ownerID string) ([]model.Card, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if err := r.verifyDeckOwned(ctx, deckID, ownerID); err != nil {
		return nil, err
	}

	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("updated_at DESC").
		Find(&cards).Error
	return cards, err
}

// GetOwned joins card to deck and filters on both card id and deck owner.
// No matching owned card comes back as nil, nil.
func (r *CardRepository) GetOwned(ctx context.Context, cardID uint, ownerID string) (*model.Card, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	var card model.Card
	err := r.db.WithContext(ctx).
		Joins("JOIN decks ON decks.id = cards.deck_id").
		Where("cards.id = ? AND decks.user_id = ?", cardID, ownerID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Create inserts a card after re-verifying that the caller owns the target
// deck. An id alone never authorizes the insert.
func (r *CardRepository) Create(ctx context.Context, deckID uint, ownerID, front, back string) (*model.Card, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if err := r.verifyDeckOwned(ctx, deckID, ownerID); err != nil {
		return nil, err
	}

	card := &model.Card{
		DeckID: deckID,
		Front:  front,
		Back:   back,
	}
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateOwned applies only the given fields to a card the caller owns through
// its deck, refreshing the updated timestamp.
func (r *CardRepository) UpdateOwned(ctx context.Context, cardID uint, ownerID string, fields map[string]interface{}) (*model.Card, error) {
	card, err := r.GetOwned(ctx, cardID, ownerID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}

	if err := r.db.WithContext(ctx).Model(card).Updates(fields).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteOwned removes a single card after the same ownership re-verification.
// A missing owned card is reported, never silently skipped.
func (r *CardRepository) DeleteOwned(ctx context.Context, cardID uint, ownerID string) error {
	card, err := r.GetOwned(ctx, cardID, ownerID)
	if err != nil {
		return err
	}
	if card == nil {
		return ErrCardNotFound
	}

	return r.db.WithContext(ctx).Delete(&model.Card{}, card.ID).Error
}
