// File: internal/handlers/submission_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/iyunix/campus-market/internal/domain"
	"github.com/iyunix/campus-market/internal/dtos"
	"github.com/iyunix/campus-market/internal/services/listing_services"
	"github.com/iyunix/campus-market/internal/services/media"
)

const (
	multipartMemory   = 32 << 20
	maxSubmissionBody = domain.MaxListingImages*media.MaxImageSize + 1<<20
	imagesField       = "images"
)

// SubmissionHandler accepts the sell and lease forms.
type SubmissionHandler struct {
	submissions *listing_services.SubmissionService
	images      media.ImageStore
	logger      Logger
}

func NewSubmissionHandler(submissions *listing_services.SubmissionService, images media.ImageStore, logger Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, images: images, logger: logger}
}

// Submit handles POST /preowned/{category}. Form fields are validated before
// any image is stored, so a rejected form leaves nothing behind.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	category, ok := categoryFromRequest(r)
	if !ok {
		NotFoundPage(w, r)
		return
	}
	back := category.FormPath()

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			renderError(w, http.StatusRequestEntityTooLarge, "Upload too large", "Images are limited to 10MB each.", back)
			return
		}
		h.logger.Warn("invalid submission form", "error", err, "category", category)
		renderError(w, http.StatusBadRequest, "Invalid form data", "The form could not be read.", back)
		return
	}
	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
		files = r.MultipartForm.File[imagesField]
	}

	req := dtos.ListingSubmissionRequestDTO{
		SellerName:      r.FormValue("sellerName"),
		Email:           r.FormValue("email"),
		ContactNumber:   r.FormValue("contactNumber"),
		WhatsappNumber:  r.FormValue("whatsappNumber"),
		ItemName:        r.FormValue("itemName"),
		ItemDescription: r.FormValue("itemDescription"),
		Price:           r.FormValue("price"),
		PricePeriod:     r.FormValue("pricePeriod"),
		ImageCount:      len(files),
	}
	if _, err := req.Validate(h.submissions.EmailDomain()); err != nil {
		var vErr *dtos.ValidationError
		if errors.As(err, &vErr) {
			renderError(w, http.StatusBadRequest, "Invalid submission", vErr.Reason, back)
			return
		}
		renderError(w, http.StatusBadRequest, "Invalid submission", err.Error(), back)
		return
	}

	refs, err := h.saveImages(r.Context(), category, files)
	if err != nil {
		if errors.Is(err, media.ErrInvalidFileType) || errors.Is(err, media.ErrFileTooBig) {
			renderError(w, http.StatusBadRequest, "Invalid image", err.Error(), back)
			return
		}
		h.logger.Error("failed to store listing images", "error", err, "category", category)
		renderError(w, http.StatusInternalServerError, "Upload failed", "Your images could not be saved. Please try again.", back)
		return
	}

	ref, err := h.submissions.Submit(r.Context(), category, req, refs)
	if err != nil {
		status, msg := statusFor(err)
		renderError(w, status, "Submission failed", msg, back)
		return
	}

	renderTemplate(w, http.StatusOK, "submission_sent.html", map[string]interface{}{
		"Email":     ref.Email,
		"VerifyURL": ref.URL,
	})
}

func (h *SubmissionHandler) saveImages(ctx context.Context, category domain.Category, files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		ref, err := h.saveImage(ctx, category, fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fh.Filename, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (h *SubmissionHandler) saveImage(ctx context.Context, category domain.Category, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.images.Save(ctx, category.ImageArea(), media.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
}
