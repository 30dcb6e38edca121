// File: internal/handlers/verification_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/iyunix/campus-market/internal/dtos"
	"github.com/iyunix/campus-market/internal/services/listing_services"
)

type VerificationHandler struct {
	verifications *listing_services.VerificationService
	logger        Logger
}

func NewVerificationHandler(verifications *listing_services.VerificationService, logger Logger) *VerificationHandler {
	return &VerificationHandler{verifications: verifications, logger: logger}
}

// ShowForm renders the OTP form with id and email carried over from the mailed link.
func (h *VerificationHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}
	query := r.URL.Query()
	renderTemplate(w, http.StatusOK, "verify_form.html", map[string]interface{}{
		"Title":  category.Title(),
		"Action": "/verify-otp/" + category.String(),
		"ID":     query.Get("id"),
		"Email":  query.Get("email"),
	})
}

// Verify handles the OTP form post.
func (h *VerificationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, http.StatusBadRequest, "Invalid form data", "The form could not be read.", "")
		return
	}

	req := dtos.OTPVerificationRequestDTO{
		ID:    r.PostFormValue("id"),
		Email: r.PostFormValue("email"),
		OTP:   r.PostFormValue("otp"),
	}
	if err := req.Validate(); err != nil {
		var vErr *dtos.ValidationError
		msg := err.Error()
		if errors.As(err, &vErr) {
			msg = vErr.Reason
		}
		renderError(w, http.StatusBadRequest, "Invalid OTP", msg, "")
		return
	}

	listing, err := h.verifications.Verify(r.Context(), category, req.ID, req.Email, req.OTP)
	if err != nil {
		status, msg := statusFor(err)
		renderError(w, status, msg, "The listing could not be verified.", "")
		return
	}

	renderTemplate(w, http.StatusOK, "verify_result.html", map[string]interface{}{
		"Title":      category.Title(),
		"ItemName":   listing.ItemName,
		"BrowsePath": category.BrowsePath(),
	})
}
