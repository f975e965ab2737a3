package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Generation defaults matching the study app's "generate 20 medium cards" flow.
const (
	DefaultCardCount  = 20
	DefaultDifficulty = "medium"
)

var (
	// ErrMalformedOutput means the model response did not decode into a usable
	// flashcard list.
	ErrMalformedOutput = errors.New("generator returned malformed output")

	// ErrRateLimited means the upstream API refused the call with 429.
	ErrRateLimited = errors.New("generator rate limited")

	// ErrNotConfigured is returned when no API key was provided at startup.
	ErrNotConfigured = errors.New("ai generation is not configured")
)

type Flashcard struct {
	Front      string   `json:"front"`
	Back       string   `json:"back"`
	Difficulty string   `json:"difficulty,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type Metadata struct {
	Topic              string `json:"topic"`
	TotalCards         int    `json:"totalCards"`
	EstimatedStudyTime int    `json:"estimatedStudyTime,omitempty"`
}

type Result struct {
	Flashcards []Flashcard `json:"flashcards"`
	Metadata   Metadata    `json:"metadata"`
}

// Generator produces structured front/back pairs from a deck's title and
// description.
type Generator interface {
	Generate(ctx context.Context, title, description string, count int, difficulty string) (*Result, error)
}

// GeminiGenerator generates flashcards using Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func flashcardSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"flashcards": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"front":      {Type: genai.TypeString},
						"back":       {Type: genai.TypeString},
						"difficulty": {Type: genai.TypeString, Enum: []string{"easy", "medium", "hard"}},
						"tags":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					},
					Required: []string{"front", "back"},
				},
			},
			"metadata": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic":              {Type: genai.TypeString},
					"totalCards":         {Type: genai.TypeInteger},
					"estimatedStudyTime": {Type: genai.TypeInteger},
				},
				Required: []string{"topic", "totalCards"},
			},
		},
		Required: []string{"flashcards"},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, title, description string, count int, difficulty string) (*Result, error) {
	if count <= 0 {
		count = DefaultCardCount
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	prompt := buildPrompt(title, description, count, difficulty)

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   flashcardSchema(),
			Temperature:      genai.Ptr[float32](0.7),
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
		}
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Text()), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(result.Flashcards) == 0 {
		return nil, fmt.Errorf("%w: empty flashcard list", ErrMalformedOutput)
	}
	for _, card := range result.Flashcards {
		if card.Front == "" || card.Back == "" {
			return nil, fmt.Errorf("%w: card with empty front or back", ErrMalformedOutput)
		}
	}

	if result.Metadata.Topic == "" {
		result.Metadata.Topic = title
	}
	if result.Metadata.TotalCards == 0 {
		result.Metadata.TotalCards = len(result.Flashcards)
	}
	return &result, nil
}

// UnconfiguredGenerator stands in when no API key is available so the rest of
// the app still wires up.
type UnconfiguredGenerator struct{}

var _ Generator = UnconfiguredGenerator{}

func (UnconfiguredGenerator) Generate(ctx context.Context, title, description string, count int, difficulty string) (*Result, error) {
	return nil, ErrNotConfigured
}
