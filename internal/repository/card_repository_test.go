package repository_test

import (
	"context"
	"testing"
	"time"

	"flashdeck/internal/model"
	"flashdeck/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func cardRows(cards ...model.Card) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "deck_id", "front", "back", "created_at", "updated_at"})
	for _, c := range cards {
		rows.AddRow(c.ID, c.DeckID, c.Front, c.Back, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func expectDeckOwned(mock sqlmock.Sqlmock, deck model.Deck) {
	mock.ExpectQuery(`SELECT .* FROM "decks" WHERE id = .* AND user_id = .*`).
		WillReturnRows(deckRows(deck))
}

func TestCardRepository_ListForDeck(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	now := time.Now()
	expectDeckOwned(mock, model.Deck{ID: 1, Title: "Spanish Basics", UserID: "user-1", CreatedAt: now, UpdatedAt: now})
	mock.ExpectQuery(`SELECT .* FROM "cards" WHERE deck_id = .* ORDER BY updated_at DESC`).
		WithArgs(1).
		WillReturnRows(cardRows(
			model.Card{ID: 10, DeckID: 1, Front: "hola", Back: "hello", CreatedAt: now, UpdatedAt: now},
		))

	cards, err := cardRepo.ListForDeck(context.Background(), 1, "user-1")

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "hola", cards[0].Front)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ListForDeck_NotOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	// For card paths a foreign deck is an error, not absence.
	mock.ExpectQuery(`SELECT .* FROM "decks" WHERE id = .* AND user_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	cards, err := cardRepo.ListForDeck(context.Background(), 1, "user-2")

	assert.ErrorIs(t, err, repository.ErrDeckNotFound)
	assert.Nil(t, cards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetOwned_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnRows(cardRows(model.Card{ID: 10, DeckID: 1, Front: "Q1", Back: "A1", CreatedAt: now, UpdatedAt: now}))

	card, err := cardRepo.GetOwned(context.Background(), 10, "user-1")

	assert.NoError(t, err)
	assert.NotNil(t, card)
	assert.Equal(t, "Q1", card.Front)
	assert.Equal(t, uint(1), card.DeckID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetOwned_NotOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	card, err := cardRepo.GetOwned(context.Background(), 10, "user-2")

	assert.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	now := time.Now()
	expectDeckOwned(mock, model.Deck{ID: 1, Title: "Spanish Basics", UserID: "user-1", CreatedAt: now, UpdatedAt: now})
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "cards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	card, err := cardRepo.Create(context.Background(), 1, "user-1", "Q1", "A1")

	assert.NoError(t, err)
	assert.Equal(t, uint(42), card.ID)
	assert.Equal(t, uint(1), card.DeckID)
	assert.Equal(t, "Q1", card.Front)
	assert.Equal(t, "A1", card.Back)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Create_DeckNotOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "decks" WHERE id = .* AND user_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	card, err := cardRepo.Create(context.Background(), 1, "user-2", "Q1", "A1")

	assert.ErrorIs(t, err, repository.ErrDeckNotFound)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_UpdateOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnRows(cardRows(model.Card{ID: 10, DeckID: 1, Front: "old front", Back: "A1", CreatedAt: now, UpdatedAt: now}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	card, err := cardRepo.UpdateOwned(context.Background(), 10, "user-1", map[string]interface{}{"front": "new front"})

	assert.NoError(t, err)
	assert.NotNil(t, card)
	assert.Equal(t, "new front", card.Front)
	// Fields not included in the update are left unchanged.
	assert.Equal(t, "A1", card.Back)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_UpdateOwned_NotOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	card, err := cardRepo.UpdateOwned(context.Background(), 10, "user-2", map[string]interface{}{"front": "hijacked"})

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_DeleteOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnRows(cardRows(model.Card{ID: 10, DeckID: 1, Front: "Q1", Back: "A1", CreatedAt: now, UpdatedAt: now}))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := cardRepo.DeleteOwned(context.Background(), 10, "user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_DeleteOwned_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "cards" JOIN decks ON decks.id = cards.deck_id WHERE cards.id = .* AND decks.user_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	err := cardRepo.DeleteOwned(context.Background(), 99, "user-1")

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
