// File: internal/handlers/contact_handler.go
package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/iyunix/campus-market/internal/dtos"
	"github.com/iyunix/campus-market/internal/services/listing_services"
)

const maxContactBody = 16 << 10

type ContactHandler struct {
	contacts *listing_services.ContactService
	logger   Logger
}

func NewContactHandler(contacts *listing_services.ContactService, logger Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// NotifyViewContact accepts {id, type} as JSON or as a form and mails the admin.
func (h *ContactHandler) NotifyViewContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	var req dtos.ContactViewRequestDTO
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.ID = r.PostFormValue("id")
		req.Type = r.PostFormValue("type")
	}

	category, err := req.Validate()
	if err != nil {
		var vErr *dtos.ValidationError
		if errors.As(err, &vErr) {
			writeJSONError(w, http.StatusBadRequest, vErr.Reason)
			return
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.contacts.NotifyContactViewed(r.Context(), category, req.ID); err != nil {
		status, msg := statusFor(err)
		writeJSONError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
