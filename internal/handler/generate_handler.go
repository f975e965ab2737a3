package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"flashdeck/internal/ai"
	"flashdeck/internal/auth"
	"flashdeck/internal/cache"
	"flashdeck/internal/repository"

	"github.com/gin-gonic/gin"
)

type GenerateHandler struct {
	deckRepo    repository.DeckRepositoryInterface
	cardRepo    repository.CardRepositoryInterface
	generator   ai.Generator
	revalidator cache.Revalidator
}

func NewGenerateHandler(deckRepo repository.DeckRepositoryInterface, cardRepo repository.CardRepositoryInterface, generator ai.Generator, revalidator cache.Revalidator) *GenerateHandler {
	return &GenerateHandler{
		deckRepo:    deckRepo,
		cardRepo:    cardRepo,
		generator:   generator,
		revalidator: revalidator,
	}
}

type GenerateRequest struct {
	Count      int    `json:"count" binding:"omitempty,min=1,max=50"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type GenerateResponse struct {
	Cards    []CardResponse `json:"cards"`
	Metadata ai.Metadata    `json:"metadata"`
}

// Generate bulk-creates AI flashcards for a deck. Preconditions, first
// failure wins: caller is authenticated, caller has the AI entitlement, deck
// exists and is owned and has a non-empty description. Each generated pair is
// persisted through the same create primitive as manual entry, one insert per
// card; a mid-batch failure leaves earlier cards committed.
func (h *GenerateHandler) Generate(c *gin.Context) {
	ident, ok := callerIdentity(c)
	if !ok {
		return
	}

	deckID, ok := parsePositiveID(c, "id", "deck")
	if !ok {
		return
	}

	// The body is optional; defaults are 20 medium cards.
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	if !ident.Has(auth.FeatureAIGeneration) && !ident.Has(auth.PlanPro) {
		c.JSON(http.StatusForbidden, gin.H{"error": "AI flashcard generation requires a Pro subscription"})
		return
	}

	deck, err := h.deckRepo.GetOwned(c.Request.Context(), deckID, ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deck"})
		return
	}
	if deck == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deck not found or unauthorized"})
		return
	}

	// The description is the generation context; a title alone is not enough.
	if strings.TrimSpace(deck.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please add a description to your deck before generating AI flashcards"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), deck.Title, deck.Description, req.Count, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrMalformedOutput):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate valid flashcards. Please try again with a different prompt."})
		case errors.Is(err, ai.ErrRateLimited):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service is currently busy. Please try again in a moment."})
		case errors.Is(err, ai.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI generation is not configured"})
		default:
			log.Printf("❌ AI generation failed for deck %d: %v", deckID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate flashcards"})
		}
		return
	}

	cards := make([]CardResponse, 0, len(result.Flashcards))
	for _, flashcard := range result.Flashcards {
		card, err := h.cardRepo.Create(c.Request.Context(), deckID, ident.UserID, flashcard.Front, flashcard.Back)
		if err != nil {
			log.Printf("❌ Failed to save generated card for deck %d after %d inserts: %v", deckID, len(cards), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated flashcards"})
			return
		}
		cards = append(cards, toCardResponse(card))
	}

	h.revalidate(c, fmt.Sprintf("/decks/%d", deckID))

	c.JSON(http.StatusCreated, GenerateResponse{
		Cards:    cards,
		Metadata: result.Metadata,
	})
}

func (h *GenerateHandler) revalidate(c *gin.Context, path string) {
	if err := h.revalidator.Revalidate(c.Request.Context(), path); err != nil {
		log.Printf("⚠️  Failed to revalidate %s: %v", path, err)
	}
}
