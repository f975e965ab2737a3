package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"flashdeck/internal/auth"
	"flashdeck/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Human-readable labels for request struct fields, matching what the study
// front-end shows next to its form inputs.
var fieldLabels = map[string]string{
	"Title":       "Title",
	"Description": "Description",
	"Front":       "Front content",
	"Back":        "Back content",
	"Email":       "Email",
	"Name":        "Name",
	"Password":    "Password",
	"Count":       "Card count",
	"Difficulty":  "Difficulty",
}

// bindingErrorMessage turns a binding failure into a single message listing
// every violated constraint, so one round trip surfaces all form errors.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return "Validation failed: " + strings.Join(msgs, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if l, ok := fieldLabels[fe.Field()]; ok {
		label = l
	}

	numeric := fe.Kind() >= reflect.Int && fe.Kind() <= reflect.Float64

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if numeric {
			return label + " must be at least " + fe.Param()
		}
		if fe.Param() == "1" {
			return label + " is required"
		}
		return label + " is too short"
	case "max":
		if numeric {
			return label + " must be at most " + fe.Param()
		}
		return label + " is too long"
	case "email":
		return label + " must be a valid email address"
	case "oneof":
		return label + " must be one of: " + fe.Param()
	}
	return label + " is invalid"
}

// callerIdentity pulls the resolved identity from the request context. A
// missing identity short-circuits with 401 before anything else runs.
func callerIdentity(c *gin.Context) (*auth.Identity, bool) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil || ident.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	return ident, true
}

// parsePositiveID parses a path parameter that must be a positive integer.
func parsePositiveID(c *gin.Context, param, label string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}
