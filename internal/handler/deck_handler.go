package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"flashdeck/internal/cache"
	"flashdeck/internal/model"
	"flashdeck/internal/quota"
	"flashdeck/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type DeckHandler struct {
	deckRepo    repository.DeckRepositoryInterface
	cardRepo    repository.CardRepositoryInterface
	revalidator cache.Revalidator
}

func NewDeckHandler(deckRepo repository.DeckRepositoryInterface, cardRepo repository.CardRepositoryInterface, revalidator cache.Revalidator) *DeckHandler {
	return &DeckHandler{
		deckRepo:    deckRepo,
		cardRepo:    cardRepo,
		revalidator: revalidator,
	}
}

type CreateDeckRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

type UpdateDeckRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type DeckResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type DeckListItem struct {
	DeckResponse
	CardCount int64 `json:"card_count"`
}

type QuotaResponse struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason,omitempty"`
	DeckCount int64  `json:"deck_count"`
}

type StudyResponse struct {
	Deck  DeckResponse   `json:"deck"`
	Cards []CardResponse `json:"cards"`
}

func toDeckResponse(deck *model.Deck) DeckResponse {
	return DeckResponse{
		ID:          deck.ID,
		Title:       deck.Title,
		Description: deck.Description,
		CreatedAt:   deck.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   deck.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *DeckHandler) revalidate(c *gin.Context, path string) {
	if err := h.revalidator.Revalidate(c.Request.Context(), path); err != nil {
		log.Printf("⚠️  Failed to revalidate %s: %v", path, err)
	}
}

// Create creates a deck for the caller, re-checking the quota policy at
// insert time. The check-then-insert pair is not wrapped in a transaction;
// the limit is a soft one.
func (h *DeckHandler) Create(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	count, err := h.deckRepo.CountOwned(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check deck count"})
		return
	}

	decision := quota.Decide(ident, count)
	if !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": decision.Reason})
		return
	}

	deck := &model.Deck{
		Title:       req.Title,
		Description: req.Description,
		UserID:      ident.UserID,
	}

	if err := h.deckRepo.Create(c.Request.Context(), deck); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deck"})
		return
	}

	h.revalidate(c, "/dashboard")

	c.JSON(http.StatusCreated, toDeckResponse(deck))
}

// GetAll returns the caller's decks with card counts, most recently updated
// first.
func (h *DeckHandler) GetAll(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	decks, err := h.deckRepo.ListOwned(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve decks"})
		return
	}

	counts, err := h.deckRepo.CardCounts(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card counts"})
		return
	}

	response := make([]DeckListItem, len(decks))
	for i, deck := range decks {
		response[i] = DeckListItem{
			DeckResponse: toDeckResponse(&deck),
			CardCount:    counts[deck.ID],
		}
	}

	c.JSON(http.StatusOK, response)
}

// Quota exposes the creation policy so the UI can disable the create
// affordance before a round trip to Create.
func (h *DeckHandler) Quota(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	count, err := h.deckRepo.CountOwned(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check deck count"})
		return
	}

	decision := quota.Decide(ident, count)
	c.JSON(http.StatusOK, QuotaResponse{
		Allowed:   decision.Allowed,
		Reason:    decision.Reason,
		DeckCount: count,
	})
}

func (h *DeckHandler) GetByID(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	deck, err := h.deckRepo.GetOwned(c.Request.Context(), deckID, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deck"})
		return
	}
	if deck == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	c.JSON(http.StatusOK, toDeckResponse(deck))
}

func (h *DeckHandler) Update(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	deck, err := h.deckRepo.UpdateOwned(c.Request.Context(), deckID, ident.UserID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deck"})
		return
	}
	if deck == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found or unauthorized"})
		return
	}

	h.revalidate(c, fmt.Sprintf("/decks/%d", deckID))

	c.JSON(http.StatusOK, toDeckResponse(deck))
}

func (h *DeckHandler) Delete(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	err := h.deckRepo.DeleteOwned(c.Request.Context(), deckID, ident.UserID)
	if errors.Is(err, repository.ErrDeckNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found or unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deck"})
		return
	}

	h.revalidate(c, fmt.Sprintf("/decks/%d", deckID))
	h.revalidate(c, "/dashboard")

	c.JSON(http.StatusOK, gin.H{"message": "Deck deleted"})
}

// Study returns everything the study page needs in one payload. The deck and
// its cards are independent reads, so they are fetched concurrently.
func (h *DeckHandler) Study(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	var (
		deck  *model.Deck
		cards []model.Card
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		deck, err = h.deckRepo.GetOwned(gctx, deckID, ident.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = h.cardRepo.ListForDeck(gctx, deckID, ident.UserID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrDeckNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load study session"})
		return
	}
	if deck == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found"})
		return
	}

	response := StudyResponse{
		Deck:  toDeckResponse(deck),
		Cards: make([]CardResponse, len(cards)),
	}
	for i, card := range cards {
		response.Cards[i] = toCardResponse(&card)
	}

	c.JSON(http.StatusOK, response)
}
