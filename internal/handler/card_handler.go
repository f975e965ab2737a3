package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"flashdeck/internal/cache"
	"flashdeck/internal/model"
	"flashdeck/internal/repository"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cardRepo    repository.CardRepositoryInterface
	revalidator cache.Revalidator
}

func NewCardHandler(cardRepo repository.CardRepositoryInterface, revalidator cache.Revalidator) *CardHandler {
	return &CardHandler{
		cardRepo:    cardRepo,
		revalidator: revalidator,
	}
}

type CreateCardRequest struct {
	Front string `json:"front" binding:"required,max=1000"`
	Back  string `json:"back" binding:"required,max=1000"`
}

type UpdateCardRequest struct {
	Front *string `json:"front" binding:"omitempty,min=1,max=1000"`
	Back  *string `json:"back" binding:"omitempty,min=1,max=1000"`
}

type CardResponse struct {
	ID        uint   `json:"id"`
	DeckID    uint   `json:"deck_id"`
	Front     string `json:"front"`
	Back      string `json:"back"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:        card.ID,
		DeckID:    card.DeckID,
		Front:     card.Front,
		Back:      card.Back,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
		UpdatedAt: card.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *CardHandler) revalidate(c *gin.Context, path string) {
	if err := h.revalidator.Revalidate(c.Request.Context(), path); err != nil {
		log.Printf("⚠️  Failed to revalidate %s: %v", path, err)
	}
}

// GetByDeckID lists a deck's cards, most recently updated first. Deck
// ownership is re-verified inside the repository.
func (h *CardHandler) GetByDeckID(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	cards, err := h.cardRepo.ListForDeck(c.Request.Context(), deckID, ident.UserID)
	if errors.Is(err, repository.ErrDeckNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	response := make([]CardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(&card)
	}

	c.JSON(http.StatusOK, response)
}

func (h *CardHandler) Create(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	card, err := h.cardRepo.Create(c.Request.Context(), deckID, ident.UserID, req.Front, req.Back)
	if errors.Is(err, repository.ErrDeckNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	h.revalidate(c, fmt.Sprintf("/decks/%d", deckID))

	c.JSON(http.StatusCreated, toCardResponse(card))
}

func (h *CardHandler) GetByID(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	cardID, ok := parsePositiveID(c, "id", "card")
	if !ok {
		return
	}

	card, err := h.cardRepo.GetOwned(c.Request.Context(), cardID, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, toCardResponse(card))
}

// Update applies a partial front/back edit. The owning deck id is not part of
// the request, so revalidation falls back to the wildcard deck path.
func (h *CardHandler) Update(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	cardID, ok := parsePositiveID(c, "id", "card")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	fields := map[string]interface{}{}
	if req.Front != nil {
		fields["front"] = *req.Front
	}
	if req.Back != nil {
		fields["back"] = *req.Back
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	card, err := h.cardRepo.UpdateOwned(c.Request.Context(), cardID, ident.UserID, fields)
	if errors.Is(err, repository.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	h.revalidate(c, "/decks/*")

	c.JSON(http.StatusOK, toCardResponse(card))
}

func (h *CardHandler) Delete(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	cardID, ok := parsePositiveID(c, "id", "card")
	if !ok {
		return
	}

	err := h.cardRepo.DeleteOwned(c.Request.Context(), cardID, ident.UserID)
	if errors.Is(err, repository.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	h.revalidate(c, "/decks/*")

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
