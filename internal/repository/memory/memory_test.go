package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

func TestUsers_UniqueEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Users.Create(ctx, &models.User{Email: "a@x.tn", Role: models.RoleDoctor}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := s.Users.Create(ctx, &models.User{Email: "a@x.tn", Role: models.RolePatient})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUsers_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := &models.User{Email: "a@x.tn", FullName: "Before"}
	_ = s.Users.Create(ctx, u)

	got, _ := s.Users.FindByID(ctx, u.ID)
	got.FullName = "Mutated"

	again, _ := s.Users.FindByID(ctx, u.ID)
	if again.FullName != "Before" {
		t.Errorf("stored row was mutated through a returned pointer")
	}
}

func TestUsers_SetClinicAllOrNothing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := &models.User{Email: "d@x.tn", Role: models.RoleDoctor}
	_ = s.Users.Create(ctx, u)
	clinic := primitive.NewObjectID()

	err := s.Users.SetClinic(ctx, []primitive.ObjectID{u.ID, primitive.NewObjectID()}, &clinic)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, _ := s.Users.FindByID(ctx, u.ID)
	if got.ClinicID != nil {
		t.Error("no user may change when one id is unknown")
	}

	if err := s.Users.SetClinic(ctx, []primitive.ObjectID{u.ID}, &clinic); err != nil {
		t.Fatalf("set clinic: %v", err)
	}
	listed, _ := s.Users.List(ctx, models.UserFilter{ClinicID: &clinic})
	if len(listed) != 1 {
		t.Fatalf("expected one user in clinic, got %d", len(listed))
	}

	if err := s.Users.SetClinic(ctx, []primitive.ObjectID{u.ID}, nil); err != nil {
		t.Fatalf("detach: %v", err)
	}
	got, _ = s.Users.FindByID(ctx, u.ID)
	if got.ClinicID != nil {
		t.Error("expected clinic to be cleared")
	}
}

func TestClinics_ConflictOnAnyField(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	base := &models.Clinic{Name: "Clinic A", Email: "a@x.tn", Phone: "+21612345678"}
	if err := s.Clinics.Create(ctx, base); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name, email, phone string
		want               bool
	}{
		{"Clinic A", "b@x.tn", "+21600000000", true},
		{"Clinic B", "a@x.tn", "+21600000000", true},
		{"Clinic B", "b@x.tn", "+21612345678", true},
		{"Clinic B", "b@x.tn", "+21600000000", false},
	}
	for _, tt := range tests {
		got, err := s.Clinics.ExistsConflicting(ctx, tt.name, tt.email, tt.phone)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if got != tt.want {
			t.Errorf("ExistsConflicting(%s, %s, %s) = %v, want %v", tt.name, tt.email, tt.phone, got, tt.want)
		}
	}
}

func TestEquipment_LowStock(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	clinic := primitive.NewObjectID()

	rows := []*models.Equipment{
		{Name: "gloves", Quantity: 0, MinStock: 10, IsActive: true, ClinicID: &clinic},
		{Name: "masks", Quantity: 10, MinStock: 10, IsActive: true},
		{Name: "gauze", Quantity: 11, MinStock: 10, IsActive: true},
		{Name: "old drill", Quantity: 0, MinStock: 1, IsActive: false},
		{Name: "zero-zero", Quantity: 0, MinStock: 0, IsActive: true},
	}
	for _, e := range rows {
		if err := s.Equipment.Create(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	low, err := s.Equipment.ListLowStock(ctx, nil)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	names := map[string]bool{}
	for _, e := range low {
		names[e.Name] = true
	}
	if len(low) != 3 || !names["gloves"] || !names["masks"] || !names["zero-zero"] {
		t.Errorf("unexpected low stock rows: %v", names)
	}

	scoped, _ := s.Equipment.ListLowStock(ctx, &clinic)
	if len(scoped) != 1 || scoped[0].Name != "gloves" {
		t.Errorf("expected only gloves for clinic, got %v", scoped)
	}

	active, _ := s.Equipment.List(ctx, models.EquipmentFilter{ActiveOnly: true})
	if len(active) != 4 {
		t.Errorf("expected 4 active rows, got %d", len(active))
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	_ = s.MedicalServices.Create(ctx, &models.MedicalService{Name: "old", CreatedAt: now.Add(-time.Hour)})
	_ = s.MedicalServices.Create(ctx, &models.MedicalService{Name: "new", CreatedAt: now})

	got, _ := s.MedicalServices.List(ctx, nil)
	if len(got) != 2 || got[0].Name != "new" {
		t.Errorf("expected newest first, got %v", got)
	}
}

func TestTx_RollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := &models.User{Email: "r@x.tn", Role: models.RoleReceptionist}
	_ = s.Users.Create(ctx, u)
	clinic := primitive.NewObjectID()
	boom := errors.New("boom")

	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.Users.SetClinic(ctx, []primitive.ObjectID{u.ID}, &clinic); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := s.Users.FindByID(ctx, u.ID)
	if got.ClinicID != nil {
		t.Error("write inside failed transaction must be rolled back")
	}

	err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.Users.SetClinic(ctx, []primitive.ObjectID{u.ID}, &clinic)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	got, _ = s.Users.FindByID(ctx, u.ID)
	if got.ClinicID == nil || *got.ClinicID != clinic {
		t.Error("committed write missing")
	}
}

func TestDelete_Missing(t *testing.T) {
	s := NewStore()
	if err := s.Clinics.Delete(context.Background(), primitive.NewObjectID()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
