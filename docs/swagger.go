package docs

import "github.com/swaggo/swag"

// @title           Flashdeck API
// @version         1.0
// @description     API for managing flashcard decks, cards, study sessions, and AI generation

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Decks
// @tag.description Deck management and quota

// @tag.name Cards
// @tag.description Card management operations

// @tag.name Generation
// @tag.description AI flashcard generation

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
