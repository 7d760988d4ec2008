package access

import (
	"testing"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
)

func TestGate_Allowed(t *testing.T) {
	g := NewGate(DefaultPolicy)

	tests := []struct {
		role models.Role
		op   Operation
		want bool
	}{
		{models.RoleAdmin, EquipmentWrite, true},
		{models.RoleSuperAdmin, EquipmentWrite, true},
		{models.RoleDoctor, EquipmentWrite, true},
		{models.RoleReceptionist, EquipmentWrite, false},
		{models.RolePatient, EquipmentWrite, false},
		{models.RoleAdmin, ClinicCreate, true},
		{models.RoleSuperAdmin, ClinicCreate, false},
		{models.RoleDoctor, ClinicAssign, false},
		{models.RolePatient, ServiceRead, true},
		{models.RolePatient, PrescriptionWrite, false},
		{models.RoleDoctor, PrescriptionWrite, true},
		{models.RoleAdmin, Operation("unknown.op"), false},
		{models.Role(""), ClinicRead, false},
	}
	for _, tt := range tests {
		if got := g.Allowed(tt.role, tt.op); got != tt.want {
			t.Errorf("Allowed(%q, %s) = %v, want %v", tt.role, tt.op, got, tt.want)
		}
	}
}

func TestGate_CheckReturnsForbidden(t *testing.T) {
	g := NewGate(DefaultPolicy)

	err := g.Check(models.RolePatient, ClinicDelete)
	if !apperror.Is(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := g.Check(models.RoleAdmin, ClinicDelete); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGate_EveryOperationHasRoles(t *testing.T) {
	for op, roles := range DefaultPolicy {
		if len(roles) == 0 {
			t.Errorf("operation %s allows nobody", op)
		}
		for _, r := range roles {
			if !r.Valid() {
				t.Errorf("operation %s lists invalid role %q", op, r)
			}
		}
	}
}

func TestCanCreateRole(t *testing.T) {
	tests := []struct {
		caller, target models.Role
		want           bool
	}{
		{models.RoleSuperAdmin, models.RoleAdmin, true},
		{models.RoleSuperAdmin, models.RoleSuperAdmin, true},
		{models.RoleAdmin, models.RoleDoctor, true},
		{models.RoleAdmin, models.RoleAdmin, false},
		{models.RoleReceptionist, models.RolePatient, true},
		{models.RoleReceptionist, models.RoleDoctor, false},
		{models.RoleDoctor, models.RolePatient, false},
		{models.RolePatient, models.RolePatient, false},
	}
	for _, tt := range tests {
		if got := CanCreateRole(tt.caller, tt.target); got != tt.want {
			t.Errorf("CanCreateRole(%s, %s) = %v, want %v", tt.caller, tt.target, got, tt.want)
		}
	}
}

func TestCanManageRole(t *testing.T) {
	tests := []struct {
		caller, target models.Role
		want           bool
	}{
		{models.RoleSuperAdmin, models.RoleSuperAdmin, true},
		{models.RoleSuperAdmin, models.RoleAdmin, true},
		{models.RoleAdmin, models.RoleSuperAdmin, false},
		{models.RoleAdmin, models.RoleAdmin, false},
		{models.RoleAdmin, models.RoleDoctor, true},
		{models.RoleAdmin, models.RoleReceptionist, true},
		{models.RoleAdmin, models.RolePatient, true},
		{models.RoleReceptionist, models.RolePatient, true},
		{models.RoleDoctor, models.RolePatient, false},
	}
	for _, tt := range tests {
		if got := CanManageRole(tt.caller, tt.target); got != tt.want {
			t.Errorf("CanManageRole(%s, %s) = %v, want %v", tt.caller, tt.target, got, tt.want)
		}
	}
}
