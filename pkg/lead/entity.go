package lead

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"
)

// Source is the channel a lead came in through.
type Source string

const (
	SourceWebsite  Source = "website"
	SourceReferral Source = "referral"
	SourceSocial   Source = "social"
	SourceOther    Source = "other"
)

func (s Source) Valid() bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceSocial, SourceOther:
		return true
	}
	return false
}

// Status is the position of a lead in the sales pipeline.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Lead is a prospective-customer inquiry owned by exactly one business.
// Only Status and Message are mutable after creation.
type Lead struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Company    string    `json:"company"`
	Message    string    `json:"message"`
	Source     Source    `json:"source"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInput is the externally supplied part of a new lead. The owning
// business is never part of it; the use case injects the caller's tenant.
type CreateInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	Source    string `json:"source"`
}

// ValidationError reports per-field constraint violations.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid lead: %s", strings.Join(names, ", "))
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Validate checks field constraints, canonicalizes the phone number to
// digits only and defaults the source to "website". It returns a
// *ValidationError listing every violated field.
func (in *CreateInput) Validate() error {
	verr := newValidationError()

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.FirstName == "" || len(in.FirstName) > 100 {
		verr.Fields["first_name"] = "must be between 1 and 100 characters"
	}
	if in.LastName == "" || len(in.LastName) > 100 {
		verr.Fields["last_name"] = "must be between 1 and 100 characters"
	}
	if !validEmail(in.Email) {
		verr.Fields["email"] = "must be a valid email address"
	}
	if phone, ok := normalizePhone(in.Phone); ok {
		in.Phone = phone
	} else {
		verr.Fields["phone"] = "must contain 10 to 15 digits"
	}
	if len(in.Company) > 200 {
		verr.Fields["company"] = "must be at most 200 characters"
	}
	if len(in.Message) > 2000 {
		verr.Fields["message"] = "must be at most 2000 characters"
	}
	if in.Source == "" {
		in.Source = string(SourceWebsite)
	} else if !Source(in.Source).Valid() {
		verr.Fields["source"] = "must be one of: website, referral, social, other"
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	// Reject addresses with a display name ("Jane <jane@x.com>").
	return err == nil && addr.Address == s
}

// normalizePhone strips everything but digits ("+1 (555) 555-1234"
// becomes "15555551234") and requires 10 to 15 digits.
func normalizePhone(s string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) < 10 || len(digits) > 15 {
		return "", false
	}
	return digits, true
}
