package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/signdeck/internal/api/shared"
	"github.com/phrazzld/signdeck/internal/domain"
	"github.com/phrazzld/signdeck/internal/domain/quiz"
	"github.com/phrazzld/signdeck/internal/service/auth"
	"github.com/phrazzld/signdeck/internal/store"
)

// ErrQuizNotFound is returned when an answer names a quiz that was never
// issued or has been evicted.
var ErrQuizNotFound = errors.New("quiz not found")

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, ErrQuizNotFound),
		errors.Is(err, quiz.ErrChallengeNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrNotEnoughItems):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidItemID),
		errors.Is(err, domain.ErrUnknownLessonType),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, quiz.ErrWrongChallenge),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, shared.ErrInvalidBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that carries
// no internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, ErrQuizNotFound):
		return "Quiz not found"
	case errors.Is(err, quiz.ErrChallengeNotFound):
		return "Challenge not found"

	// Clients match on this exact text to prompt the learner for more items.
	case errors.Is(err, domain.ErrNotEnoughItems):
		return "not enough items"

	case errors.Is(err, domain.ErrInvalidRating):
		return "Invalid rating: must be one of badly, partly, well"
	case errors.Is(err, domain.ErrInvalidItemID):
		return "Invalid item ID"
	case errors.Is(err, domain.ErrUnknownLessonType):
		return "Unknown lesson type"
	case errors.Is(err, quiz.ErrWrongChallenge):
		return "Answer does not fit the challenge type"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, shared.ErrInvalidBody):
		return "Invalid request format"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrUnavailable):
		return "Storage is temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := strings.ToLower(fe.Field())
	if tag := fe.Tag(); tag != "" {
		return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
	}
	return fmt.Sprintf("Invalid %s", field)
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid element"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. A non-empty message
// overrides the default safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
