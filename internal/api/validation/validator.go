package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Maximum lengths for inquiry fields
const (
	MaxNameLength    = 200
	MaxCompanyLength = 200
	MaxEmailLength   = 200
	MaxMessageLength = 2000
)

var (
	// emailRegex enforces the strict address grammar used for inquiry
	// submissions. Deliberately stricter than RFC 5322.
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// fullNameRegex allows letters, spaces, hyphens, apostrophes and periods
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z\s'.\-]+$`)

	// companyRegex allows alphanumerics, spaces and common punctuation
	companyRegex = regexp.MustCompile(`^[a-zA-Z0-9\s&.,'()\-\/]+$`)

	// usPhoneRegex matches the literal pattern (XXX) XXX-XXXX
	usPhoneRegex = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// ProductInterests is the fixed enumeration of accepted productInterest values
var ProductInterests = map[string]bool{
	"beeswax": true,
	"honey":   true,
	"both":    true,
	"other":   true,
}

// EstimatedVolumes is the fixed enumeration of accepted estimatedVolume values
var EstimatedVolumes = map[string]bool{
	"under-500kg": true,
	"500kg-1mt":   true,
	"1mt-5mt":     true,
	"over-5mt":    true,
	"not-sure":    true,
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("strict_email", validateStrictEmail)
	v.RegisterValidation("fullname", validateFullName)
	v.RegisterValidation("company", validateCompanyName)
	v.RegisterValidation("usphone", validateUSPhone)
	v.RegisterValidation("product_interest", validateProductInterest)
	v.RegisterValidation("estimated_volume", validateEstimatedVolume)
}

func validateStrictEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

func validateFullName(fl validator.FieldLevel) bool {
	return IsValidFullName(fl.Field().String())
}

func validateCompanyName(fl validator.FieldLevel) bool {
	return IsValidCompanyName(fl.Field().String())
}

func validateUSPhone(fl validator.FieldLevel) bool {
	return IsValidUSPhone(fl.Field().String())
}

func validateProductInterest(fl validator.FieldLevel) bool {
	return ProductInterests[fl.Field().String()]
}

func validateEstimatedVolume(fl validator.FieldLevel) bool {
	return EstimatedVolumes[fl.Field().String()]
}

// IsValidEmail checks the strict email grammar and the length cap
func IsValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidFullName checks the personal-name character allow-list
func IsValidFullName(name string) bool {
	if name == "" || len(name) > MaxNameLength {
		return false
	}
	return fullNameRegex.MatchString(name)
}

// IsValidCompanyName checks the company-name character allow-list
func IsValidCompanyName(name string) bool {
	if name == "" || len(name) > MaxCompanyLength {
		return false
	}
	return companyRegex.MatchString(name)
}

// IsValidUSPhone checks the fixed (XXX) XXX-XXXX pattern
func IsValidUSPhone(phone string) bool {
	return usPhoneRegex.MatchString(phone)
}
