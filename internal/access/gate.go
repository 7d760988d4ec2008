// Package access decides which roles may invoke which operations.
package access

import (
	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
)

type Operation string

const (
	UserCreate Operation = "user.create"
	UserRead   Operation = "user.read"
	UserList   Operation = "user.list"
	UserDelete Operation = "user.delete"

	ClinicCreate Operation = "clinic.create"
	ClinicList   Operation = "clinic.list"
	ClinicRead   Operation = "clinic.read"
	ClinicUpdate Operation = "clinic.update"
	ClinicDelete Operation = "clinic.delete"
	ClinicAssign Operation = "clinic.assign"

	EquipmentRead  Operation = "equipment.read"
	EquipmentWrite Operation = "equipment.write"

	ServiceRead  Operation = "service.read"
	ServiceWrite Operation = "service.write"

	ConsultationRead   Operation = "consultation.read"
	ConsultationWrite  Operation = "consultation.write"
	ConsultationDelete Operation = "consultation.delete"

	PrescriptionRead   Operation = "prescription.read"
	PrescriptionWrite  Operation = "prescription.write"
	PrescriptionDelete Operation = "prescription.delete"
)

var (
	superAdmin   = models.RoleSuperAdmin
	admin        = models.RoleAdmin
	receptionist = models.RoleReceptionist
	doctor       = models.RoleDoctor
	patient      = models.RolePatient
)

// DefaultPolicy is the static allow-list of the API.
var DefaultPolicy = map[Operation][]models.Role{
	UserCreate: {superAdmin, admin, receptionist},
	UserRead:   {superAdmin, admin, receptionist, doctor},
	UserList:   {superAdmin, admin, receptionist, doctor},
	UserDelete: {superAdmin, admin},

	ClinicCreate: {admin},
	ClinicList:   {superAdmin, admin},
	ClinicRead:   {superAdmin, admin, doctor, receptionist},
	ClinicUpdate: {superAdmin, admin},
	ClinicDelete: {superAdmin, admin},
	ClinicAssign: {superAdmin, admin},

	EquipmentRead:  {superAdmin, admin, doctor, receptionist},
	EquipmentWrite: {superAdmin, admin, doctor},

	ServiceRead:  models.AllRoles,
	ServiceWrite: {superAdmin, admin},

	ConsultationRead:   models.AllRoles,
	ConsultationWrite:  {superAdmin, admin, doctor, receptionist},
	ConsultationDelete: {superAdmin, admin, doctor},

	PrescriptionRead:   {superAdmin, admin, doctor, patient},
	PrescriptionWrite:  {doctor},
	PrescriptionDelete: {superAdmin, admin, doctor},
}

// creatable lists the roles each caller role may create and remove
// accounts for.
var creatable = map[models.Role][]models.Role{
	superAdmin:   models.AllRoles,
	admin:        {doctor, receptionist, patient},
	receptionist: {patient},
}

// Gate is a pure predicate over (caller role, operation). It performs no I/O.
type Gate struct {
	allowed map[Operation]map[models.Role]struct{}
}

func NewGate(policy map[Operation][]models.Role) *Gate {
	g := &Gate{allowed: make(map[Operation]map[models.Role]struct{}, len(policy))}
	for op, roles := range policy {
		set := make(map[models.Role]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		g.allowed[op] = set
	}
	return g
}

// Allowed reports whether role may perform op. Unknown operations deny.
func (g *Gate) Allowed(role models.Role, op Operation) bool {
	set, ok := g.allowed[op]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

func (g *Gate) Check(role models.Role, op Operation) error {
	if !g.Allowed(role, op) {
		return apperror.Forbidden("Role %q is not allowed to perform %s", role, op)
	}
	return nil
}

// CanCreateRole reports whether a caller with role caller may create a
// user with role target.
func CanCreateRole(caller, target models.Role) bool {
	for _, r := range creatable[caller] {
		if r == target {
			return true
		}
	}
	return false
}

// CanManageRole reports whether caller may remove an account holding role
// target. It follows the same table as CanCreateRole.
func CanManageRole(caller, target models.Role) bool {
	return CanCreateRole(caller, target)
}
