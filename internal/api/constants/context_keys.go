package constants

// Context keys for validated requests
const (
	// Inquiry context keys
	ContextKeyInquiry = "inquiry"

	// Analytics context keys
	ContextKeyTrackEvent = "trackEvent"

	// Request context keys
	ContextKeyRequestID = "RequestID"
	ContextKeyRawBody   = "rawBody"
)
