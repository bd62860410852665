package enums

import "testing"

func TestParseItemKindDefaultsToService(t *testing.T) {
	if got := ParseItemKind("produto"); got != ItemKindProduct {
		t.Fatalf("got %s", got)
	}
	if got := ParseItemKind("peça"); got != ItemKindService {
		t.Fatalf("non-product input should normalize to service, got %s", got)
	}
}

func TestStaffRoleParse(t *testing.T) {
	role, err := ParseStaffRole("gerente")
	if err != nil {
		t.Fatalf("ParseStaffRole: %v", err)
	}
	if role != StaffRoleManager || role.IsAdmin() {
		t.Fatalf("unexpected role %s", role)
	}

	if _, err := ParseStaffRole("estagiario"); err == nil {
		t.Fatalf("expected error for unknown role")
	}

	if !StaffRoleAdmin.IsAdmin() {
		t.Fatalf("admin should unlock admin screens")
	}
}

func TestPeriodCycle(t *testing.T) {
	if got := PeriodToday.Next(); got != PeriodWeek {
		t.Fatalf("got %s", got)
	}
	if got := PeriodMonth.Next(); got != PeriodToday {
		t.Fatalf("cycle should wrap, got %s", got)
	}
	if Period("ano").IsValid() {
		t.Fatalf("unknown period must be invalid")
	}
}
