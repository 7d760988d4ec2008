// Package memory is a process-local implementation of the repository
// interfaces. It mirrors the unique indexes of the Mongo backend and
// supports snapshot-based transactions.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

type table[T any] struct {
	rows    map[primitive.ObjectID]T
	id      func(*T) primitive.ObjectID
	created func(*T) time.Time
}

func newTable[T any](id func(*T) primitive.ObjectID, created func(*T) time.Time) *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T), id: id, created: created}
}

func (t *table[T]) get(id primitive.ObjectID) (*T, error) {
	v, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (t *table[T]) put(v *T) {
	t.rows[t.id(v)] = *v
}

func (t *table[T]) replace(v *T) error {
	if _, ok := t.rows[t.id(v)]; !ok {
		return repository.ErrNotFound
	}
	t.put(v)
	return nil
}

func (t *table[T]) remove(id primitive.ObjectID) error {
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// filter returns matching rows newest first.
func (t *table[T]) filter(keep func(*T) bool) []T {
	out := make([]T, 0)
	for _, v := range t.rows {
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := t.created(&out[i]), t.created(&out[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return t.id(&out[i]).Hex() > t.id(&out[j]).Hex()
	})
	return out
}

func (t *table[T]) clone() *table[T] {
	c := newTable(t.id, t.created)
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

type db struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         *table[models.User]
	clinics       *table[models.Clinic]
	equipment     *table[models.Equipment]
	services      *table[models.MedicalService]
	consultations *table[models.Consultation]
	prescriptions *table[models.Prescription]
}

func newDB() *db {
	return &db{
		users: newTable(
			func(u *models.User) primitive.ObjectID { return u.ID },
			func(u *models.User) time.Time { return u.CreatedAt }),
		clinics: newTable(
			func(c *models.Clinic) primitive.ObjectID { return c.ID },
			func(c *models.Clinic) time.Time { return c.CreatedAt }),
		equipment: newTable(
			func(e *models.Equipment) primitive.ObjectID { return e.ID },
			func(e *models.Equipment) time.Time { return e.CreatedAt }),
		services: newTable(
			func(s *models.MedicalService) primitive.ObjectID { return s.ID },
			func(s *models.MedicalService) time.Time { return s.CreatedAt }),
		consultations: newTable(
			func(c *models.Consultation) primitive.ObjectID { return c.ID },
			func(c *models.Consultation) time.Time { return c.CreatedAt }),
		prescriptions: newTable(
			func(p *models.Prescription) primitive.ObjectID { return p.ID },
			func(p *models.Prescription) time.Time { return p.CreatedAt }),
	}
}

func (d *db) snapshot() *db {
	return &db{
		users:         d.users.clone(),
		clinics:       d.clinics.clone(),
		equipment:     d.equipment.clone(),
		services:      d.services.clone(),
		consultations: d.consultations.clone(),
		prescriptions: d.prescriptions.clone(),
	}
}

func (d *db) restore(s *db) {
	d.users = s.users
	d.clinics = s.clinics
	d.equipment = s.equipment
	d.services = s.services
	d.consultations = s.consultations
	d.prescriptions = s.prescriptions
}

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	d := newDB()
	return &repository.Store{
		Users:           &users{d},
		Clinics:         &clinics{d},
		Equipment:       &equipment{d},
		MedicalServices: &medicalServices{d},
		Consultations:   &consultations{d},
		Prescriptions:   &prescriptions{d},
		Tx:              &tx{d},
	}
}

type tx struct{ d *db }

// WithTransaction serialises transactions and restores the pre-transaction
// snapshot when fn fails. Writes made outside a transaction while one is
// running are lost on rollback.
func (t *tx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.d.txMu.Lock()
	defer t.d.txMu.Unlock()

	t.d.mu.RLock()
	snap := t.d.snapshot()
	t.d.mu.RUnlock()

	if err := fn(ctx); err != nil {
		t.d.mu.Lock()
		t.d.restore(snap)
		t.d.mu.Unlock()
		return err
	}
	return nil
}
