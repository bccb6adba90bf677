package inquiry

// InquiryRequest represents a quote/contact inquiry submission from the
// marketing site. Field-level constraints are enforced by the intake
// pipeline, not by binding tags, so that rejections follow the
// documented gate order.
type InquiryRequest struct {
	FullName        string `json:"fullName"`
	CompanyName     string `json:"companyName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	ProductInterest string `json:"productInterest"`
	EstimatedVolume string `json:"estimatedVolume,omitempty"`
	Message         string `json:"message,omitempty"`
}

// InquiryResponse represents the response after submitting an inquiry
type InquiryResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
