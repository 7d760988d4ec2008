package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository/memory"
	"github.com/harentsoaR/clinique-api/internal/services"
	"github.com/harentsoaR/clinique-api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	h      *Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	notifier := services.NewLogNotifier(log)

	issuer, err := utils.NewTokenIssuer("handler-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	h := &Handler{
		Users:           services.NewUserService(store, utils.Hasher{Cost: bcrypt.MinCost}, log),
		Clinics:         services.NewClinicService(store, notifier, log),
		Equipment:       services.NewEquipmentService(store, log),
		MedicalServices: services.NewMedicalServiceService(store, log),
		Consultations:   services.NewConsultationService(store, log),
		Prescriptions:   services.NewPrescriptionService(store, notifier, log),
		Issuer:          issuer,
		Gate:            access.NewGate(access.DefaultPolicy),
		Log:             log,
	}
	r := gin.New()
	h.Register(r)
	return &testServer{t: t, router: r, h: h}
}

// account creates a user of role directly and returns it with a token.
func (s *testServer) account(email string, role models.Role) (*models.User, string) {
	s.t.Helper()
	u, err := s.h.Users.CreateUser(context.Background(), models.CreateUserRequest{
		FullName: "Test User",
		Email:    email,
		Password: "secret123",
	}, role)
	if err != nil {
		s.t.Fatalf("create %s: %v", role, err)
	}
	tok, err := s.h.Issuer.GenerateJWT(u)
	if err != nil {
		s.t.Fatalf("token: %v", err)
	}
	return u, tok
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestClinicConflictOnPhone(t *testing.T) {
	s := newTestServer(t)
	_, adminTok := s.account("admin@clinique.tn", models.RoleAdmin)

	rec := s.do(http.MethodPost, "/clinique", adminTok, gin.H{
		"name": "Clinic A", "address": "Tunis", "phone": "+21611111111", "email": "a@clinique.tn",
	})
	expectStatus(t, rec, http.StatusCreated)
	created := decode[models.Clinic](t, rec)

	rec = s.do(http.MethodPost, "/clinique", adminTok, gin.H{
		"name": "Clinic B", "address": "Sousse", "phone": "+21611111111", "email": "b@clinique.tn",
	})
	expectStatus(t, rec, http.StatusConflict)
	body := decode[errorBody](t, rec)
	if body.StatusCode != http.StatusConflict || body.Message != "Clinique with this name, email or phone number already exists" {
		t.Fatalf("unexpected body %+v", body)
	}

	rec = s.do(http.MethodGet, "/clinique", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if all := decode[[]models.Clinic](t, rec); len(all) != 1 || all[0].ID != created.ID {
		t.Fatalf("expected only Clinic A, got %+v", all)
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/register", "", gin.H{
		"fullName": "Sami Ben Ali", "email": "sami@mail.tn", "password": "password1", "role": "admin",
	})
	expectStatus(t, rec, http.StatusCreated)
	user := decode[map[string]any](t, rec)
	if user["role"] != string(models.RolePatient) {
		t.Fatalf("register must create a patient, got %v", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password hash leaked in response")
	}

	rec = s.do(http.MethodPost, "/auth/register", "", gin.H{
		"fullName": "Sami Again", "email": "sami@mail.tn", "password": "password1",
	})
	expectStatus(t, rec, http.StatusConflict)

	rec = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "sami@mail.tn", "password": "wrong-pass"})
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = s.do(http.MethodPost, "/auth/login", "", gin.H{"email": "sami@mail.tn", "password": "password1"})
	expectStatus(t, rec, http.StatusOK)
	login := decode[struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}](t, rec)
	if login.Token == "" {
		t.Fatal("missing token")
	}

	rec = s.do(http.MethodGet, "/auth/curr", login.Token, nil)
	expectStatus(t, rec, http.StatusOK)
	if me := decode[models.User](t, rec); me.Email != "sami@mail.tn" {
		t.Fatalf("unexpected current user %+v", me)
	}

	rec = s.do(http.MethodPut, "/users/me", login.Token, gin.H{"fullName": "Sami B."})
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, s.do(http.MethodGet, "/auth/curr", "", nil), http.StatusUnauthorized)
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	_, adminTok := s.account("admin@clinique.tn", models.RoleAdmin)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"bad clinic id", http.MethodGet, "/clinique/not-an-id", nil},
		{"missing clinic fields", http.MethodPost, "/clinique", gin.H{"name": "X"}},
		{"bad phone", http.MethodPost, "/clinique", gin.H{"name": "Clinic", "address": "a", "phone": "123", "email": "c@c.tn"}},
		{"negative quantity", http.MethodPost, "/equipment", gin.H{"name": "gloves", "quantity": -1, "minStock": 1, "unitPrice": 1}},
		{"unknown role filter", http.MethodGet, "/users?role=nurse", nil},
		{"empty assignment", http.MethodPatch, "/clinique/assign-user", gin.H{"cliniqueId": "64b7f0000000000000000000", "role": "doctor", "userIds": []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, adminTok, tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			if b := decode[errorBody](t, rec); b.StatusCode != http.StatusBadRequest {
				t.Fatalf("unexpected body %+v", b)
			}
		})
	}
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	_, patientTok := s.account("p@clinique.tn", models.RolePatient)
	_, recTok := s.account("r@clinique.tn", models.RoleReceptionist)
	_, superTok := s.account("root@clinique.tn", models.RoleSuperAdmin)
	doctor, doctorTok := s.account("d@clinique.tn", models.RoleDoctor)

	clinicBody := gin.H{"name": "Clinic", "address": "a", "phone": "+21612345678", "email": "c@c.tn"}

	tests := []struct {
		name   string
		token  string
		method string
		path   string
		body   any
		status int
	}{
		{"patient cannot create clinic", patientTok, http.MethodPost, "/clinique", clinicBody, http.StatusForbidden},
		{"super-admin cannot create clinic", superTok, http.MethodPost, "/clinique", clinicBody, http.StatusForbidden},
		{"patient cannot list users", patientTok, http.MethodGet, "/users?role=doctor", nil, http.StatusForbidden},
		{"receptionist cannot create admin", recTok, http.MethodPost, "/users", gin.H{
			"fullName": "Evil", "email": "evil@c.tn", "password": "password1", "role": "admin"}, http.StatusForbidden},
		{"receptionist creates patient", recTok, http.MethodPost, "/users", gin.H{
			"fullName": "New Patient", "email": "np@c.tn", "password": "password1", "role": "patient"}, http.StatusCreated},
		{"super-admin creates admin", superTok, http.MethodPost, "/users", gin.H{
			"fullName": "New Admin", "email": "na@c.tn", "password": "password1", "role": "admin"}, http.StatusCreated},
		{"doctor reads doctor by role", doctorTok, http.MethodGet, "/users/" + doctor.ID.Hex() + "?role=doctor", nil, http.StatusOK},
		{"role mismatch is not found", doctorTok, http.MethodGet, "/users/" + doctor.ID.Hex() + "?role=patient", nil, http.StatusNotFound},
		{"doctor cannot write prescriptions without patient", doctorTok, http.MethodPost, "/prescriptions", gin.H{}, http.StatusBadRequest},
		{"receptionist cannot write prescriptions", recTok, http.MethodPost, "/prescriptions", gin.H{}, http.StatusForbidden},
		{"patient reads services", patientTok, http.MethodGet, "/medical-services", nil, http.StatusOK},
		{"patient cannot read equipment", patientTok, http.MethodGet, "/equipment", nil, http.StatusForbidden},
		{"no token", "", http.MethodGet, "/equipment", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, s.do(tt.method, tt.path, tt.token, tt.body), tt.status)
		})
	}
}

func TestDeleteUserFollowsRoleTable(t *testing.T) {
	s := newTestServer(t)
	_, adminTok := s.account("admin@clinique.tn", models.RoleAdmin)
	_, superTok := s.account("root@clinique.tn", models.RoleSuperAdmin)
	root2, _ := s.account("root2@clinique.tn", models.RoleSuperAdmin)
	otherAdmin, _ := s.account("admin2@clinique.tn", models.RoleAdmin)
	doctor, doctorTok := s.account("d@clinique.tn", models.RoleDoctor)
	patient, _ := s.account("p@clinique.tn", models.RolePatient)

	tests := []struct {
		name   string
		token  string
		target *models.User
		status int
	}{
		{"admin cannot delete super-admin", adminTok, root2, http.StatusForbidden},
		{"admin cannot delete admin", adminTok, otherAdmin, http.StatusForbidden},
		{"admin deletes doctor", adminTok, doctor, http.StatusOK},
		{"admin deletes patient", adminTok, patient, http.StatusOK},
		{"super-admin deletes admin", superTok, otherAdmin, http.StatusOK},
		{"super-admin deletes super-admin", superTok, root2, http.StatusOK},
		{"deleted user is not found", superTok, doctor, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectStatus(t, s.do(http.MethodDelete, "/users/"+tt.target.ID.Hex(), tt.token, nil), tt.status)
		})
	}

	rec := s.do(http.MethodGet, "/auth/curr", doctorTok, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
	if b := decode[errorBody](t, rec); b.Message != "User no longer exists" {
		t.Fatalf("unexpected message %q", b.Message)
	}
}

func TestAssignmentEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, adminTok := s.account("admin@clinique.tn", models.RoleAdmin)
	d1, _ := s.account("d1@clinique.tn", models.RoleDoctor)
	d2, _ := s.account("d2@clinique.tn", models.RoleDoctor)
	p, _ := s.account("p@clinique.tn", models.RolePatient)

	rec := s.do(http.MethodPost, "/clinique", adminTok, gin.H{
		"name": "Clinic A", "address": "Tunis", "phone": "+21611111111", "email": "a@clinique.tn",
	})
	expectStatus(t, rec, http.StatusCreated)
	clinic := decode[models.Clinic](t, rec)

	rec = s.do(http.MethodPatch, "/clinique/assign-user", adminTok, gin.H{
		"cliniqueId": clinic.ID.Hex(), "role": "doctor", "userIds": []string{d1.ID.Hex(), p.ID.Hex()},
	})
	expectStatus(t, rec, http.StatusBadRequest)

	rec = s.do(http.MethodGet, "/clinique/"+clinic.ID.Hex()+"/staff?role=doctor", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if staff := decode[[]models.User](t, rec); len(staff) != 0 {
		t.Fatalf("failed batch must not assign anyone, got %d", len(staff))
	}

	rec = s.do(http.MethodPatch, "/clinique/assign-user", adminTok, gin.H{
		"cliniqueId": clinic.ID.Hex(), "role": "doctor", "userIds": []string{d1.ID.Hex(), d2.ID.Hex()},
	})
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/clinique/"+clinic.ID.Hex()+"/staff?role=doctor", adminTok, nil)
	if staff := decode[[]models.User](t, rec); len(staff) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(staff))
	}

	rec = s.do(http.MethodPatch, "/clinique/unassign-user", adminTok, gin.H{
		"role": "doctor", "userIds": []string{d2.ID.Hex()},
	})
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/clinique/mine", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	mine := decode[[]map[string]any](t, rec)
	if len(mine) != 1 {
		t.Fatalf("expected one clinic, got %d", len(mine))
	}
	if addedBy, ok := mine[0]["addedBy"].(map[string]any); !ok || addedBy["email"] != "admin@clinique.tn" {
		t.Fatalf("addedBy not populated: %v", mine[0]["addedBy"])
	}

	rec = s.do(http.MethodDelete, "/clinique/"+clinic.ID.Hex(), adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if msg := decode[map[string]string](t, rec); msg["message"] == "" {
		t.Fatal("delete should return a message")
	}
	expectStatus(t, s.do(http.MethodGet, "/clinique/"+clinic.ID.Hex(), adminTok, nil), http.StatusNotFound)
}

func TestLowStockEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, adminTok := s.account("admin@clinique.tn", models.RoleAdmin)

	for _, e := range []gin.H{
		{"name": "gloves", "quantity": 100, "minStock": 10, "unitPrice": 0.2},
		{"name": "masks", "quantity": 3, "minStock": 10, "unitPrice": 0.5},
		{"name": "gauze", "quantity": 0, "minStock": 0, "unitPrice": 1},
	} {
		expectStatus(t, s.do(http.MethodPost, "/equipment", adminTok, e), http.StatusCreated)
	}

	rec := s.do(http.MethodGet, "/equipment/low-stock", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	low := decode[[]models.Equipment](t, rec)
	if len(low) != 2 {
		t.Fatalf("expected masks and gauze, got %+v", low)
	}
	for _, e := range low {
		if e.Name == "gloves" {
			t.Fatal("gloves are not low on stock")
		}
	}
}

func TestConsultationAndPrescriptionFlow(t *testing.T) {
	s := newTestServer(t)
	doctor, doctorTok := s.account("d@clinique.tn", models.RoleDoctor)
	patient, patientTok := s.account("p@clinique.tn", models.RolePatient)
	_, otherTok := s.account("p2@clinique.tn", models.RolePatient)

	rec := s.do(http.MethodPost, "/consultations", doctorTok, gin.H{
		"patientId": patient.ID.Hex(), "date": time.Now().Add(time.Hour).Format(time.RFC3339), "reason": "checkup",
	})
	expectStatus(t, rec, http.StatusCreated)
	cons := decode[models.Consultation](t, rec)
	if cons.DoctorID != doctor.ID {
		t.Fatalf("doctor should default to caller")
	}

	rec = s.do(http.MethodPost, "/prescriptions", doctorTok, gin.H{
		"patientId":      patient.ID.Hex(),
		"consultationId": cons.ID.Hex(),
		"medications":    []gin.H{{"name": "Paracetamol", "dosage": "1g", "frequency": "3x/day"}},
	})
	expectStatus(t, rec, http.StatusCreated)
	rx := decode[models.Prescription](t, rec)

	expectStatus(t, s.do(http.MethodGet, "/prescriptions/"+rx.ID.Hex(), patientTok, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/prescriptions/"+rx.ID.Hex(), otherTok, nil), http.StatusNotFound)

	rec = s.do(http.MethodGet, "/consultations", otherTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if rows := decode[[]models.Consultation](t, rec); len(rows) != 0 {
		t.Fatalf("other patient should see no consultations, got %d", len(rows))
	}

	rec = s.do(http.MethodGet, "/consultations?status=scheduled", patientTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if rows := decode[[]models.Consultation](t, rec); len(rows) != 1 {
		t.Fatalf("expected one scheduled consultation, got %d", len(rows))
	}
	expectStatus(t, s.do(http.MethodGet, "/consultations?status=lost", patientTok, nil), http.StatusBadRequest)

	rec = s.do(http.MethodPut, "/consultations/"+cons.ID.Hex(), doctorTok, gin.H{"status": "completed"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Consultation](t, rec); got.Status != models.ConsultationCompleted {
		t.Fatalf("status not updated: %s", got.Status)
	}

	expectStatus(t, s.do(http.MethodDelete, "/consultations/"+cons.ID.Hex(), patientTok, nil), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodDelete, "/prescriptions/"+rx.ID.Hex(), doctorTok, nil), http.StatusOK)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK)

	s.h.Health = func(context.Context) error { return context.DeadlineExceeded }
	expectStatus(t, s.do(http.MethodGet, "/health", "", nil), http.StatusServiceUnavailable)
}
