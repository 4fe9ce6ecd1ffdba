package registry_test

import (
	"testing"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

func TestHouseholdApplyFields(t *testing.T) {
	t.Parallel()

	var h registry.Household
	err := h.ApplyFields(map[string]any{
		"household_name": " Musa Family ",
		"total_members":  float64(6),
		"mosque":         "central-mosque",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h.HouseholdName != "Musa Family" {
		t.Fatalf("unexpected household name: %q", h.HouseholdName)
	}
	if h.TotalMembers != 6 {
		t.Fatalf("unexpected total members: %d", h.TotalMembers)
	}
}

func TestHouseholdApplyFieldsRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	var h registry.Household
	err := h.ApplyFields(map[string]any{"favourite_colour": "green"})
	if err == nil {
		t.Fatal("expected error")
	}
	if registry.KindOf(err) != registry.KindValidation {
		t.Fatalf("expected validation kind, got %v", registry.KindOf(err))
	}
}

func TestHouseholdApplyFieldsFromSpreadsheetCells(t *testing.T) {
	t.Parallel()

	var h registry.Household
	err := h.ApplyFields(map[string]any{
		"household_name": "Kintu Family",
		"total_members":  "4",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if h.TotalMembers != 4 {
		t.Fatalf("unexpected total members: %d", h.TotalMembers)
	}
}

func TestMosqueValidateRequiresName(t *testing.T) {
	t.Parallel()

	m := registry.Mosque{Location: "Kampala"}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if registry.KindOf(err) != registry.KindValidation {
		t.Fatalf("expected validation kind, got %v", registry.KindOf(err))
	}
}

func TestFaithfulValidate(t *testing.T) {
	t.Parallel()

	f := registry.Faithful{FullName: "Aisha Nakato", Email: "aisha@example.com"}
	if err := f.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f.Email = "not-an-email"
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for bad email")
	}
}

func TestImamValidateNamesMissingField(t *testing.T) {
	t.Parallel()

	i := registry.Imam{Faithful: "prof-1", DateAppointed: "2021-03-01"}
	err := i.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "missing required field: mosque_assigned" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestNewAccountNormalizesEmail(t *testing.T) {
	t.Parallel()

	acct, err := registry.NewAccount(" Umar@Example.COM ", "Umar Kaggwa", "hash")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acct.Email != "umar@example.com" {
		t.Fatalf("unexpected email: %q", acct.Email)
	}
	if acct.Role != "member" {
		t.Fatalf("unexpected role: %q", acct.Role)
	}
}

func TestKindOfUntaggedErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := registry.Internal("persist failed", nil)
	if registry.KindOf(err) != registry.KindInternal {
		t.Fatalf("expected internal kind")
	}
}
