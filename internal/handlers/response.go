// File: internal/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/iyunix/campus-market/internal/domain"
	"github.com/iyunix/campus-market/internal/services/listing_services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Logger interface for HTTP handlers
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// categoryFromRequest reads the {category} route variable.
func categoryFromRequest(r *http.Request) (domain.Category, bool) {
	category, err := domain.ParseCategory(mux.Vars(r)["category"])
	return category, err == nil
}

// statusFor maps a listing service error to an HTTP status and a message safe to show.
func statusFor(err error) (int, string) {
	var listingErr *listing_services.ListingError
	if !errors.As(err, &listingErr) {
		return http.StatusInternalServerError, "Something went wrong on our end."
	}
	switch listingErr.Type {
	case listing_services.ErrTypeValidation, listing_services.ErrTypeChallengeMismatch:
		return http.StatusBadRequest, listingErr.Message
	case listing_services.ErrTypeNotFound:
		return http.StatusNotFound, listingErr.Message
	default:
		return http.StatusInternalServerError, listingErr.Message
	}
}
