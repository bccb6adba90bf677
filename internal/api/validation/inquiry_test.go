package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ctisourcing/intake-api/internal/api/dto/v1/inquiry"
)

func validRequest() *inquiry.InquiryRequest {
	return &inquiry.InquiryRequest{
		FullName:        "Jane Smith",
		CompanyName:     "Acme Co",
		Email:           "jane@acme.com",
		Phone:           "(555) 123-4567",
		ProductInterest: "beeswax",
		EstimatedVolume: "1mt-5mt",
		Message:         "Looking for a reliable supplier.",
	}
}

func TestValidateInquiry(t *testing.T) {
	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		if err := ValidateInquiry(v, validRequest()); err != nil {
			t.Errorf("ValidateInquiry returned %v, want nil", err)
		}
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		req := validRequest()
		req.Phone = ""
		req.EstimatedVolume = ""
		req.Message = ""
		if err := ValidateInquiry(v, req); err != nil {
			t.Errorf("ValidateInquiry returned %v, want nil", err)
		}
	})

	t.Run("missing required fields reported together", func(t *testing.T) {
		req := validRequest()
		req.FullName = ""
		req.Email = ""
		err := ValidateInquiry(v, req)

		var missing *MissingFieldsError
		if !errors.As(err, &missing) {
			t.Fatalf("ValidateInquiry returned %v, want MissingFieldsError", err)
		}
		if len(missing.Fields) != 2 || missing.Fields[0] != "fullName" || missing.Fields[1] != "email" {
			t.Errorf("missing fields = %v, want [fullName email]", missing.Fields)
		}
	})

	t.Run("presence gate runs before format gates", func(t *testing.T) {
		// With fullName absent and email malformed, the presence
		// error wins.
		req := validRequest()
		req.FullName = ""
		req.Email = "not-an-email"
		err := ValidateInquiry(v, req)

		var missing *MissingFieldsError
		if !errors.As(err, &missing) {
			t.Fatalf("ValidateInquiry returned %v, want MissingFieldsError", err)
		}
	})

	t.Run("email gate runs before other format gates", func(t *testing.T) {
		req := validRequest()
		req.Email = "not-an-email"
		req.FullName = "Jane123"
		err := ValidateInquiry(v, req)

		if !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("ValidateInquiry returned %v, want ErrInvalidEmail", err)
		}
	})

	t.Run("malformed phone names the field", func(t *testing.T) {
		req := validRequest()
		req.Phone = "555-1234"
		err := ValidateInquiry(v, req)

		var format *FieldFormatError
		if !errors.As(err, &format) {
			t.Fatalf("ValidateInquiry returned %v, want FieldFormatError", err)
		}
		if format.Field != "phone" {
			t.Errorf("field = %q, want phone", format.Field)
		}
	})

	t.Run("unknown product interest rejected", func(t *testing.T) {
		req := validRequest()
		req.ProductInterest = "propolis"
		err := ValidateInquiry(v, req)

		var format *FieldFormatError
		if !errors.As(err, &format) || format.Field != "productInterest" {
			t.Fatalf("ValidateInquiry returned %v, want FieldFormatError{productInterest}", err)
		}
	})

	t.Run("unknown estimated volume rejected", func(t *testing.T) {
		req := validRequest()
		req.EstimatedVolume = "a-lot"
		err := ValidateInquiry(v, req)

		var format *FieldFormatError
		if !errors.As(err, &format) || format.Field != "estimatedVolume" {
			t.Fatalf("ValidateInquiry returned %v, want FieldFormatError{estimatedVolume}", err)
		}
	})

	t.Run("oversized message rejected", func(t *testing.T) {
		req := validRequest()
		req.Message = strings.Repeat("a", MaxMessageLength+1)
		err := ValidateInquiry(v, req)

		var format *FieldFormatError
		if !errors.As(err, &format) || format.Field != "message" {
			t.Fatalf("ValidateInquiry returned %v, want FieldFormatError{message}", err)
		}
	})

	t.Run("every enumeration value accepted", func(t *testing.T) {
		for interest := range ProductInterests {
			for volume := range EstimatedVolumes {
				req := validRequest()
				req.ProductInterest = interest
				req.EstimatedVolume = volume
				if err := ValidateInquiry(v, req); err != nil {
					t.Errorf("ValidateInquiry(%s, %s) returned %v, want nil", interest, volume, err)
				}
			}
		}
	})
}

func TestMissingFieldsErrorMessage(t *testing.T) {
	err := &MissingFieldsError{Fields: []string{"fullName", "email"}}
	want := "missing required fields: fullName, email"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
