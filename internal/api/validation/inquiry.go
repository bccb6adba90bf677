package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/ctisourcing/intake-api/internal/api/dto/v1/inquiry"
)

// New returns a validator with all custom validations registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// ValidateInquiry runs the submission gates in their documented order:
// required-field presence, then email grammar, then per-field format
// checks. The first failing gate decides the returned error; later
// gates are not evaluated.
func ValidateInquiry(v *validator.Validate, req *inquiry.InquiryRequest) error {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "fullName")
	}
	if req.CompanyName == "" {
		missing = append(missing, "companyName")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.ProductInterest == "" {
		missing = append(missing, "productInterest")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if v.Var(req.Email, "strict_email") != nil {
		return ErrInvalidEmail
	}

	if v.Var(req.FullName, "fullname") != nil {
		return &FieldFormatError{Field: "fullName"}
	}
	if v.Var(req.CompanyName, "company") != nil {
		return &FieldFormatError{Field: "companyName"}
	}
	if req.Phone != "" && v.Var(req.Phone, "usphone") != nil {
		return &FieldFormatError{Field: "phone"}
	}
	if v.Var(req.ProductInterest, "product_interest") != nil {
		return &FieldFormatError{Field: "productInterest"}
	}
	if req.EstimatedVolume != "" && v.Var(req.EstimatedVolume, "estimated_volume") != nil {
		return &FieldFormatError{Field: "estimatedVolume"}
	}
	if len(req.Message) > MaxMessageLength {
		return &FieldFormatError{Field: "message"}
	}

	return nil
}
