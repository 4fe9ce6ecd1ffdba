package registry

import (
	"strings"
	"time"
)

// Household groups faithful profiles living at one address.
type Household struct {
	ID              string
	HouseholdName   string
	HeadOfHousehold string
	AddressLine     string
	Mosque          string
	TotalMembers    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (h *Household) ApplyFields(fields map[string]any) error {
	for key, raw := range fields {
		var err error
		switch key {
		case "household_name":
			h.HouseholdName, err = asString(raw)
		case "head_of_household":
			h.HeadOfHousehold, err = asString(raw)
		case "address_line":
			h.AddressLine, err = asString(raw)
		case "mosque":
			h.Mosque, err = asString(raw)
		case "total_members":
			h.TotalMembers, err = asInt(raw)
		default:
			return Validationf("unknown field %q for household", key)
		}
		if err != nil {
			return Validationf("invalid value for %q: %v", key, err)
		}
	}
	return nil
}

func (h *Household) Validate() error {
	if strings.TrimSpace(h.HouseholdName) == "" {
		return Validationf("missing required field: household_name")
	}
	return nil
}
