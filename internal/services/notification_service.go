// File: internal/services/notification_service.go
package services

import (
    "bytes"
    "context"
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/yuin/goldmark"

    "github.com/iyunix/campus-market/internal/domain"
    "github.com/iyunix/campus-market/internal/services/mail"
)

const defaultSendTimeout = 45 * time.Second

// VerificationCodeNotice is what a submitter receives after posting a listing.
type VerificationCodeNotice struct {
    Email     string
    Code      string
    VerifyURL string
    Category  domain.Category
    ListingID string
}

// NotificationService renders mail bodies from Markdown and hands them to a mail.Provider.
//
// The two call sites have different failure policies and each has its own method:
// SendVerificationCodeAsync runs in the background and only logs failures, while
// NotifyContactViewed is synchronous and returns the failure to its caller.
type NotificationService struct {
    provider       mail.Provider
    retry          *mail.RetryConfig
    adminRecipient string
    sendTimeout    time.Duration
    logger         Logger
    md             goldmark.Markdown
    inflight       sync.WaitGroup
}

func NewNotificationService(provider mail.Provider, retry *mail.RetryConfig, adminRecipient string, logger Logger) *NotificationService {
    if retry == nil {
        retry = mail.DefaultRetryConfig()
    }
    return &NotificationService{
        provider:       provider,
        retry:          retry,
        adminRecipient: adminRecipient,
        sendTimeout:    defaultSendTimeout,
        logger:         logger,
        md:             goldmark.New(),
    }
}

// SendVerificationCodeAsync mails the code and link in the background.
// The submission never waits for, or learns about, the outcome.
func (s *NotificationService) SendVerificationCodeAsync(notice VerificationCodeNotice) {
    s.inflight.Add(1)
    go func() {
        defer s.inflight.Done()

        ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
        defer cancel()

        if err := s.sendVerificationCode(ctx, notice); err != nil {
            s.logger.Error("verification code delivery failed",
                "error", err,
                "listing_id", notice.ListingID,
                "category", notice.Category,
                "email", MaskEmail(notice.Email))
            return
        }
        s.logger.Info("verification code delivered",
            "listing_id", notice.ListingID,
            "category", notice.Category,
            "email", MaskEmail(notice.Email))
    }()
}

func (s *NotificationService) sendVerificationCode(ctx context.Context, notice VerificationCodeNotice) error {
    body, err := s.render(fmt.Sprintf("Your OTP: **%s**\n\nVerify: <%s>\n", notice.Code, notice.VerifyURL))
    if err != nil {
        return err
    }
    msg := mail.Message{
        To:       notice.Email,
        Subject:  fmt.Sprintf("OTP for Your %s Listing", notice.Category.Title()),
        HTMLBody: body,
    }
    return mail.RetryWithBackoff(ctx, s.retry, func(ctx context.Context) error {
        return s.provider.Send(ctx, msg)
    })
}

// NotifyContactViewed tells the admin recipient that someone asked for a listing's contact details.
func (s *NotificationService) NotifyContactViewed(ctx context.Context, listing domain.Listing) error {
    if s.adminRecipient == "" {
        return &mail.MailError{Type: mail.ErrTypeConfig, Message: "no admin recipient configured"}
    }
    body, err := s.render(fmt.Sprintf("Someone clicked \"View Contact\" for tool: **%s** (ID: %s)\n",
        escapeMarkdown(listing.ItemName), escapeMarkdown(listing.ID)))
    if err != nil {
        return err
    }
    msg := mail.Message{
        To:       s.adminRecipient,
        Subject:  "Contact viewed for listing " + listing.ItemName,
        HTMLBody: body,
    }
    if err := s.provider.Send(ctx, msg); err != nil {
        return fmt.Errorf("failed to send contact notification: %w", err)
    }
    s.logger.Info("contact view notification sent", "listing_id", listing.ID, "category", listing.Category)
    return nil
}

// Wait blocks until background sends finish or ctx is done.
func (s *NotificationService) Wait(ctx context.Context) error {
    done := make(chan struct{})
    go func() {
        s.inflight.Wait()
        close(done)
    }()
    select {
    case <-done:
        return nil
    case <-ctx.Done():
        return ctx.Err()
    }
}

func (s *NotificationService) render(markdown string) (string, error) {
    var buf bytes.Buffer
    if err := s.md.Convert([]byte(markdown), &buf); err != nil {
        return "", fmt.Errorf("failed to render mail body: %w", err)
    }
    return buf.String(), nil
}

var markdownEscaper = strings.NewReplacer(
    `\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`,
    "<", `\<`, ">", `\>`, "#", `\#`, "!", `\!`,
)

// escapeMarkdown keeps user text literal inside a Markdown template.
func escapeMarkdown(s string) string {
    return markdownEscaper.Replace(s)
}
