package registry

import (
	"strings"
	"time"
)

// Mosque is a place of worship that households, profiles and imams refer to.
type Mosque struct {
	ID              string
	MosqueName      string
	Location        string
	DateEstablished string
	HeadImam        string
	TotalCapacity   int
	ContactEmail    string
	ContactPhone    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m *Mosque) ApplyFields(fields map[string]any) error {
	for key, raw := range fields {
		var err error
		switch key {
		case "mosque_name":
			m.MosqueName, err = asString(raw)
		case "location":
			m.Location, err = asString(raw)
		case "date_established":
			m.DateEstablished, err = asString(raw)
		case "head_imam":
			m.HeadImam, err = asString(raw)
		case "total_capacity":
			m.TotalCapacity, err = asInt(raw)
		case "contact_email":
			m.ContactEmail, err = asString(raw)
		case "contact_phone":
			m.ContactPhone, err = asString(raw)
		default:
			return Validationf("unknown field %q for mosque", key)
		}
		if err != nil {
			return Validationf("invalid value for %q: %v", key, err)
		}
	}
	return nil
}

func (m *Mosque) Validate() error {
	if strings.TrimSpace(m.MosqueName) == "" {
		return Validationf("missing required field: mosque_name")
	}
	return nil
}
