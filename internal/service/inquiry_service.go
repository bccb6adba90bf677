package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ctisourcing/intake-api/internal/api/dto/v1/inquiry"
	"github.com/ctisourcing/intake-api/internal/api/mapper"
	"github.com/ctisourcing/intake-api/internal/api/sanitization"
	"github.com/ctisourcing/intake-api/internal/api/validation"
	"github.com/ctisourcing/intake-api/internal/logging"
	"github.com/ctisourcing/intake-api/internal/monitoring"
	"github.com/ctisourcing/intake-api/internal/ratelimit"
)

// Placeholder text for optional fields left empty by the submitter
const (
	PlaceholderNoPhone   = "Not provided"
	PlaceholderNoVolume  = "Not specified"
	PlaceholderNoMessage = "No message provided"
)

// InquirySettings holds the fixed addressing for outbound notifications
type InquirySettings struct {
	// OperatorEmail is the fixed mailbox that receives every inquiry
	OperatorEmail string

	// FromAddress is the sender identity for both outbound messages,
	// in display form
	FromAddress string
}

// InquiryService runs the inquiry intake pipeline: rate limit,
// validate, sanitize, then dispatch the operator notification and the
// submitter confirmation. Each step is a hard gate; a failure
// short-circuits with no side effects from later steps.
type InquiryService struct {
	limiter  ratelimit.Limiter
	mailer   Mailer
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	validate *validator.Validate
	settings InquirySettings
}

// NewInquiryService creates the intake pipeline service
func NewInquiryService(limiter ratelimit.Limiter, mailer Mailer, metrics *monitoring.Metrics, logger *logging.Logger, settings InquirySettings) *InquiryService {
	return &InquiryService{
		limiter:  limiter,
		mailer:   mailer,
		metrics:  metrics,
		logger:   logger,
		validate: validation.New(),
		settings: settings,
	}
}

// sanitizedInquiry holds the field values prepared for interpolation
// into HTML mail bodies
type sanitizedInquiry struct {
	FullName        string
	CompanyName     string
	Email           string
	Phone           string
	ProductInterest string
	EstimatedVolume string
	Message         string
}

// Submit processes one inquiry from sourceAddr. On success exactly two
// emails have been dispatched; on any rejection, none.
func (s *InquiryService) Submit(ctx context.Context, req *inquiry.InquiryRequest, sourceAddr string) error {
	// The rate-limit table is mutated on every call, before any other
	// gate runs
	decision, err := s.limiter.Allow(ctx, sourceAddr)
	if err != nil {
		s.metrics.InquiriesTotal.WithLabelValues(monitoring.ResultInternalError).Inc()
		return fmt.Errorf("rate limit check failed: %w", err)
	}
	if !decision.Allowed {
		s.metrics.InquiriesTotal.WithLabelValues(monitoring.ResultRateLimited).Inc()
		s.metrics.RateLimitBlocks.Inc()
		s.logger.Warn("Rate limited inquiry from %s (%d submissions in window)", sourceAddr, decision.Count)
		return &RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	if err := validation.ValidateInquiry(s.validate, req); err != nil {
		s.metrics.InquiriesTotal.WithLabelValues(validationResult(err)).Inc()
		return err
	}

	// Sanitization runs even though validation already constrains the
	// character set; it is the last line of defense against markup
	// injection into the outbound mail
	clean := sanitize(req)

	if err := s.mailer.Send(s.operatorNotification(clean, req.Email)); err != nil {
		s.metrics.InquiriesTotal.WithLabelValues(monitoring.ResultDispatchFailed).Inc()
		s.metrics.EmailsTotal.WithLabelValues(monitoring.EmailKindNotification, monitoring.EmailStatusFailed).Inc()
		return &DispatchError{Err: err}
	}
	s.metrics.EmailsTotal.WithLabelValues(monitoring.EmailKindNotification, monitoring.EmailStatusSent).Inc()

	// The operator has the inquiry at this point, so a confirmation
	// failure is reported but does not fail the submission
	if err := s.mailer.Send(s.confirmation(clean, req.Email)); err != nil {
		s.metrics.EmailsTotal.WithLabelValues(monitoring.EmailKindConfirmation, monitoring.EmailStatusFailed).Inc()
		s.logger.Error("Confirmation email to %s failed after operator notification succeeded: %v", req.Email, err)
	} else {
		s.metrics.EmailsTotal.WithLabelValues(monitoring.EmailKindConfirmation, monitoring.EmailStatusSent).Inc()
	}

	s.metrics.InquiriesTotal.WithLabelValues(monitoring.ResultAccepted).Inc()
	return nil
}

func validationResult(err error) string {
	var missing *validation.MissingFieldsError
	var format *validation.FieldFormatError
	switch {
	case errors.As(err, &missing):
		return monitoring.ResultMissingFields
	case errors.Is(err, validation.ErrInvalidEmail):
		return monitoring.ResultInvalidEmail
	case errors.As(err, &format):
		return monitoring.ResultInvalidFormat
	default:
		return monitoring.ResultInternalError
	}
}

func sanitize(req *inquiry.InquiryRequest) *sanitizedInquiry {
	return &sanitizedInquiry{
		FullName:        sanitization.SanitizeField(req.FullName, validation.MaxNameLength),
		CompanyName:     sanitization.SanitizeField(req.CompanyName, validation.MaxCompanyLength),
		Email:           sanitization.SanitizeField(req.Email, validation.MaxEmailLength),
		Phone:           sanitization.SanitizeField(req.Phone, validation.MaxNameLength),
		ProductInterest: sanitization.SanitizeField(req.ProductInterest, validation.MaxNameLength),
		EstimatedVolume: sanitization.SanitizeField(req.EstimatedVolume, validation.MaxNameLength),
		Message:         sanitization.SanitizeField(req.Message, validation.MaxMessageLength),
	}
}

// operatorNotification builds the message for the operator mailbox.
// The submitter's raw email goes into Reply-To, which is a header
// field, not HTML content.
func (s *InquiryService) operatorNotification(clean *sanitizedInquiry, replyTo string) *EmailMessage {
	phone := clean.Phone
	if phone == "" {
		phone = PlaceholderNoPhone
	}
	volume := clean.EstimatedVolume
	if volume == "" {
		volume = PlaceholderNoVolume
	}
	message := clean.Message
	if message == "" {
		message = PlaceholderNoMessage
	}

	body := fmt.Sprintf(
		`<h2>New Quote Request</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Product Interest:</strong> %s</p>
<p><strong>Estimated Volume:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		clean.FullName,
		clean.CompanyName,
		clean.Email,
		phone,
		clean.ProductInterest,
		volume,
		message,
	)

	return &EmailMessage{
		From:    s.settings.FromAddress,
		To:      s.settings.OperatorEmail,
		ReplyTo: replyTo,
		Subject: fmt.Sprintf("New Quote Request from %s", clean.CompanyName),
		HTML:    body,
	}
}

// confirmation builds the receipt for the submitter. Enumeration
// values are shown with their display labels; anything outside the
// enumeration falls back to the sanitized raw value.
func (s *InquiryService) confirmation(clean *sanitizedInquiry, to string) *EmailMessage {
	interest := mapper.ProductInterestLabel(clean.ProductInterest)
	volume := mapper.EstimatedVolumeLabel(clean.EstimatedVolume)
	if volume == "" {
		volume = PlaceholderNoVolume
	}

	messageBlock := ""
	if clean.Message != "" {
		messageBlock = fmt.Sprintf(
			`<p style="margin:16px 0 4px;"><strong>Your message:</strong></p>
<p style="margin:0;color:#555;">%s</p>`,
			clean.Message,
		)
	}

	body := fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px;">
  <h2 style="color:#8a5a00;">Thank you for your inquiry</h2>
  <p>We have received your quote request for <strong>%s</strong> and our team
  will get back to you within one business day.</p>
  <table style="border-collapse:collapse;margin:16px 0;">
    <tr><td style="padding:4px 12px 4px 0;color:#777;">Product interest</td><td style="padding:4px 0;"><strong>%s</strong></td></tr>
    <tr><td style="padding:4px 12px 4px 0;color:#777;">Estimated volume</td><td style="padding:4px 0;"><strong>%s</strong></td></tr>
  </table>
  %s
  <p style="margin-top:24px;color:#777;font-size:13px;">CTI Sourcing &middot; Tanzanian beeswax and honey for US buyers</p>
</div>`,
		clean.CompanyName,
		interest,
		volume,
		messageBlock,
	)

	return &EmailMessage{
		From:    s.settings.FromAddress,
		To:      to,
		Subject: "We received your quote request",
		HTML:    body,
	}
}
