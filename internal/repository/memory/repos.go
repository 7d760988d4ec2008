package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

func sameID(a *primitive.ObjectID, b primitive.ObjectID) bool {
	return a != nil && *a == b
}

// --- Users ---

type users struct{ d *db }

func (r *users) Create(_ context.Context, u *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}
	if _, exists := r.d.users.rows[u.ID]; exists {
		return repository.ErrDuplicate
	}
	r.d.users.put(u)
	return nil
}

func (r *users) emailTaken(email string, except primitive.ObjectID) bool {
	for id, existing := range r.d.users.rows {
		if id != except && existing.Email == email {
			return true
		}
	}
	return false
}

func (r *users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.users.get(id)
}

func (r *users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, u := range r.d.users.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) List(_ context.Context, f models.UserFilter) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.users.filter(func(u *models.User) bool {
		if f.Role != "" && u.Role != f.Role {
			return false
		}
		if f.ClinicID != nil && !sameID(u.ClinicID, *f.ClinicID) {
			return false
		}
		return true
	}), nil
}

func (r *users) Update(_ context.Context, u *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}
	return r.d.users.replace(u)
}

func (r *users) SetClinic(_ context.Context, ids []primitive.ObjectID, clinicID *primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	for _, id := range ids {
		if _, ok := r.d.users.rows[id]; !ok {
			return repository.ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, id := range ids {
		u := r.d.users.rows[id]
		if clinicID != nil {
			cid := *clinicID
			u.ClinicID = &cid
		} else {
			u.ClinicID = nil
		}
		u.UpdatedAt = now
		r.d.users.rows[id] = u
	}
	return nil
}

func (r *users) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.users.remove(id)
}

// --- Clinics ---

type clinics struct{ d *db }

func (r *clinics) conflicts(c *models.Clinic) bool {
	for id, existing := range r.d.clinics.rows {
		if id == c.ID {
			continue
		}
		if existing.Name == c.Name || existing.Email == c.Email || existing.Phone == c.Phone {
			return true
		}
	}
	return false
}

func (r *clinics) Create(_ context.Context, c *models.Clinic) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	r.d.clinics.put(c)
	return nil
}

func (r *clinics) FindByID(_ context.Context, id primitive.ObjectID) (*models.Clinic, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.clinics.get(id)
}

func (r *clinics) ExistsConflicting(_ context.Context, name, email, phone string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.conflicts(&models.Clinic{Name: name, Email: email, Phone: phone}), nil
}

func (r *clinics) List(_ context.Context, addedBy *primitive.ObjectID) ([]models.Clinic, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.clinics.filter(func(c *models.Clinic) bool {
		return addedBy == nil || c.AddedBy == *addedBy
	}), nil
}

func (r *clinics) Update(_ context.Context, c *models.Clinic) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	return r.d.clinics.replace(c)
}

func (r *clinics) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.clinics.remove(id)
}

// --- Equipment ---

type equipment struct{ d *db }

func (r *equipment) Create(_ context.Context, e *models.Equipment) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	r.d.equipment.put(e)
	return nil
}

func (r *equipment) FindByID(_ context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.equipment.get(id)
}

func (r *equipment) List(_ context.Context, f models.EquipmentFilter) ([]models.Equipment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.equipment.filter(func(e *models.Equipment) bool {
		if f.ActiveOnly && !e.IsActive {
			return false
		}
		return f.ClinicID == nil || sameID(e.ClinicID, *f.ClinicID)
	}), nil
}

func (r *equipment) ListLowStock(_ context.Context, clinicID *primitive.ObjectID) ([]models.Equipment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.equipment.filter(func(e *models.Equipment) bool {
		if !e.LowStock() {
			return false
		}
		return clinicID == nil || sameID(e.ClinicID, *clinicID)
	}), nil
}

func (r *equipment) Update(_ context.Context, e *models.Equipment) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.equipment.replace(e)
}

func (r *equipment) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.equipment.remove(id)
}

// --- Medical services ---

type medicalServices struct{ d *db }

func (r *medicalServices) Create(_ context.Context, s *models.MedicalService) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.d.services.put(s)
	return nil
}

func (r *medicalServices) FindByID(_ context.Context, id primitive.ObjectID) (*models.MedicalService, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.services.get(id)
}

func (r *medicalServices) List(_ context.Context, clinicID *primitive.ObjectID) ([]models.MedicalService, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.services.filter(func(s *models.MedicalService) bool {
		return clinicID == nil || s.ClinicID == *clinicID
	}), nil
}

func (r *medicalServices) Update(_ context.Context, s *models.MedicalService) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.services.replace(s)
}

func (r *medicalServices) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.services.remove(id)
}

// --- Consultations ---

type consultations struct{ d *db }

func matchRecord(f models.RecordFilter, patient, doctor primitive.ObjectID, clinic *primitive.ObjectID) bool {
	if f.PatientID != nil && *f.PatientID != patient {
		return false
	}
	if f.DoctorID != nil && *f.DoctorID != doctor {
		return false
	}
	if f.ClinicID != nil && !sameID(clinic, *f.ClinicID) {
		return false
	}
	return true
}

func (r *consultations) Create(_ context.Context, c *models.Consultation) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.d.consultations.put(c)
	return nil
}

func (r *consultations) FindByID(_ context.Context, id primitive.ObjectID) (*models.Consultation, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.consultations.get(id)
}

func (r *consultations) List(_ context.Context, f models.RecordFilter) ([]models.Consultation, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.consultations.filter(func(c *models.Consultation) bool {
		if f.Status != "" && c.Status != f.Status {
			return false
		}
		return matchRecord(f, c.PatientID, c.DoctorID, c.ClinicID)
	}), nil
}

func (r *consultations) Update(_ context.Context, c *models.Consultation) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.consultations.replace(c)
}

func (r *consultations) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.consultations.remove(id)
}

// --- Prescriptions ---

type prescriptions struct{ d *db }

func (r *prescriptions) Create(_ context.Context, p *models.Prescription) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.d.prescriptions.put(p)
	return nil
}

func (r *prescriptions) FindByID(_ context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return r.d.prescriptions.get(id)
}

func (r *prescriptions) List(_ context.Context, f models.RecordFilter) ([]models.Prescription, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	return r.d.prescriptions.filter(func(p *models.Prescription) bool {
		return matchRecord(f, p.PatientID, p.DoctorID, nil)
	}), nil
}

func (r *prescriptions) Update(_ context.Context, p *models.Prescription) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.prescriptions.replace(p)
}

func (r *prescriptions) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.prescriptions.remove(id)
}
