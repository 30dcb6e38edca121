// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/iyunix/campus-market/internal/middleware"
	"github.com/iyunix/campus-market/internal/ratelimit"
	"github.com/iyunix/campus-market/internal/services/listing_services"
	"github.com/iyunix/campus-market/internal/services/media"
)

// RouterConfig carries everything the HTTP surface depends on.
// A nil limiter disables rate limiting on that endpoint.
type RouterConfig struct {
	Listings      *listing_services.ListingService
	Submissions   *listing_services.SubmissionService
	Verifications *listing_services.VerificationService
	Contacts      *listing_services.ContactService
	Images        media.ImageStore

	SubmissionLimiter *ratelimit.MemoryRateLimiter
	ContactLimiter    *ratelimit.MemoryRateLimiter

	AllowedOrigins []string
	Logger         Logger
}

const categoryPattern = "{category:sell|lease}"

// NewRouter wires every route behind CORS, panic recovery and request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	listingHandler := NewListingHandler(cfg.Listings, cfg.Logger)
	submissionHandler := NewSubmissionHandler(cfg.Submissions, cfg.Images, cfg.Logger)
	verificationHandler := NewVerificationHandler(cfg.Verifications, cfg.Logger)
	contactHandler := NewContactHandler(cfg.Contacts, cfg.Logger)
	logHandler := NewLogHandler(cfg.Logger)

	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(cfg.Logger))
	r.Use(middleware.LoggingMiddleware(cfg.Logger))

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/api/log", logHandler.LogFrontendEvent).Methods("POST")
	r.PathPrefix(media.URLPrefix).Handler(http.StripPrefix(media.URLPrefix, cfg.Images.Handler())).Methods("GET", "HEAD")

	// --- Listing API ---
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/"+categoryPattern+"/listings", listingHandler.List).Methods("GET")
	api.HandleFunc("/"+categoryPattern+"/listings/{id}", listingHandler.Get).Methods("GET")
	api.Handle("/notify-view-contact", limited(cfg.ContactLimiter, "notify-view-contact", cfg.Logger, http.HandlerFunc(contactHandler.NotifyViewContact))).Methods("POST")

	// --- Submission and verification pages ---
	r.Handle("/preowned/"+categoryPattern, limited(cfg.SubmissionLimiter, "submit", cfg.Logger, http.HandlerFunc(submissionHandler.Submit))).Methods("POST")
	r.HandleFunc("/verify-otp/"+categoryPattern, verificationHandler.ShowForm).Methods("GET")
	r.HandleFunc("/verify-otp/"+categoryPattern, verificationHandler.Verify).Methods("POST")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(NotFoundPage)
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedPage)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsOptions := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return corsOptions.Handler(r)
}

func limited(limiter *ratelimit.MemoryRateLimiter, name string, logger Logger, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return middleware.RateLimitMiddleware(limiter, name, logger)(next)
}
