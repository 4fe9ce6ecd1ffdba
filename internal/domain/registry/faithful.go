package registry

import (
	"net/mail"
	"strings"
	"time"
)

// Faithful is a registered member profile. UserEmail links the profile to its
// login account when one has been provisioned.
type Faithful struct {
	ID                string
	FullName          string
	Email             string
	UserEmail         string
	Phone             string
	Gender            string
	DateOfBirth       string
	PlaceOfBirth      string
	MaritalStatus     string
	Occupation        string
	Mosque            string
	NationalIDNumber  string
	ProfileImage      string
	SpecialNeedsProof string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ApplyFields merges payload into f. Unknown keys are rejected rather than
// silently applied.
func (f *Faithful) ApplyFields(fields map[string]any) error {
	for key, raw := range fields {
		var err error
		switch key {
		case "full_name":
			f.FullName, err = asString(raw)
		case "email":
			f.Email, err = asString(raw)
		case "user_id", "user_email":
			f.UserEmail, err = asString(raw)
		case "phone":
			f.Phone, err = asString(raw)
		case "gender":
			f.Gender, err = asString(raw)
		case "date_of_birth":
			f.DateOfBirth, err = asString(raw)
		case "place_of_birth":
			f.PlaceOfBirth, err = asString(raw)
		case "marital_status":
			f.MaritalStatus, err = asString(raw)
		case "occupation":
			f.Occupation, err = asString(raw)
		case "mosque":
			f.Mosque, err = asString(raw)
		case "national_id_number":
			f.NationalIDNumber, err = asString(raw)
		case "profile_image":
			f.ProfileImage, err = asString(raw)
		case "special_needs_proof":
			f.SpecialNeedsProof, err = asString(raw)
		default:
			return Validationf("unknown field %q for faithful profile", key)
		}
		if err != nil {
			return Validationf("invalid value for %q: %v", key, err)
		}
	}
	return nil
}

// Validate checks the fields a profile cannot be persisted without.
func (f *Faithful) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return Validationf("missing required field: full_name")
	}
	if strings.TrimSpace(f.Email) == "" {
		return Validationf("missing required field: email")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return Validationf("invalid email %q", f.Email)
	}
	return nil
}
