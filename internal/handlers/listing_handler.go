// File: internal/handlers/listing_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/campus-market/internal/services/listing_services"
)

// ListingHandler serves the public JSON reads. Only published listings are ever returned.
type ListingHandler struct {
	listings *listing_services.ListingService
	logger   Logger
}

func NewListingHandler(listings *listing_services.ListingService, logger Logger) *ListingHandler {
	return &ListingHandler{listings: listings, logger: logger}
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown category")
		return
	}
	listings, err := h.listings.ListPublished(r.Context(), category)
	if err != nil {
		status, msg := statusFor(err)
		writeJSONError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "Unknown category")
		return
	}
	l, err := h.listings.GetPublished(r.Context(), category, mux.Vars(r)["id"])
	if err != nil {
		status, msg := statusFor(err)
		writeJSONError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
