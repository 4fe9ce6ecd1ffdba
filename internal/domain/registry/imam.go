package registry

import (
	"strings"
	"time"
)

// Imam ties a faithful profile to a mosque appointment. Certifications and
// assignment logs are owned child rows, replaced wholesale on update.
type Imam struct {
	ID                string
	Faithful          string
	MosqueAssigned    string
	DateAppointed     string
	YearsOfExperience int
	RoleInMosque      string
	Status            string
	Certifications    []Certification
	AssignmentLogs    []AssignmentLog
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Certification is one credential held by an imam. Attachment is a stored
// file URL, never raw payload bytes.
type Certification struct {
	Idx               int
	CertificationName string
	IssuingBody       string
	DateAwarded       string
	Attachment        string
}

// AssignmentLog records one mosque reassignment.
type AssignmentLog struct {
	OldMosque string
	NewMosque string
	Reason    string
	MovedBy   string
	MovedAt   time.Time
}

func (i *Imam) ApplyFields(fields map[string]any) error {
	for key, raw := range fields {
		var err error
		switch key {
		case "faithful":
			i.Faithful, err = asString(raw)
		case "mosque_assigned":
			i.MosqueAssigned, err = asString(raw)
		case "date_appointed":
			i.DateAppointed, err = asString(raw)
		case "years_of_experience":
			i.YearsOfExperience, err = asInt(raw)
		case "role_in_mosque":
			i.RoleInMosque, err = asString(raw)
		case "status":
			i.Status, err = asString(raw)
		default:
			return Validationf("unknown field %q for imam", key)
		}
		if err != nil {
			return Validationf("invalid value for %q: %v", key, err)
		}
	}
	return nil
}

func (i *Imam) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"faithful", i.Faithful},
		{"mosque_assigned", i.MosqueAssigned},
		{"date_appointed", i.DateAppointed},
	} {
		if strings.TrimSpace(field.value) == "" {
			return Validationf("missing required field: %s", field.name)
		}
	}
	return nil
}
