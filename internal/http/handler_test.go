package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"fleet-service/internal/auth"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

const testSecret = "handler-test-secret"

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

type testServer struct {
	router *gin.Engine
	store  *repository.MemStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now, err := time.Parse(time.RFC3339, "2024-01-02T00:00:00Z")
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	store := repository.NewMemStore()
	clk := stubClock{now: now}
	log := zerolog.Nop()

	handler := NewHandler(
		service.NewVehicleService(store),
		service.NewDriverService(store),
		service.NewAssignmentService(store, service.NopNotifier{}, clk, log),
		service.NewBlockService(store, clk, log),
		service.NewDocumentService(store, clk, 30),
		service.NewServiceRecordService(store, 500),
		log,
	)
	router := NewRouter(handler, middleware.Auth(auth.NewParser(testSecret)), "test")
	return &testServer{router: router, store: store}
}

func token(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: "u-" + role,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedVehicle(t *testing.T) *model.Vehicle {
	t.Helper()
	vehicle := &model.Vehicle{
		PlateNumber: "KZ100AB",
		Model:       "Kamaz 65115",
		Year:        2020,
		Status:      model.VehicleStatusAvailable,
	}
	if err := s.store.InsertVehicle(context.Background(), vehicle); err != nil {
		t.Fatalf("insert vehicle: %v", err)
	}
	return vehicle
}

func (s *testServer) seedDriver(t *testing.T) *model.Driver {
	t.Helper()
	driver := &model.Driver{FullName: "Test Driver", LicenseNumber: "DL-HTTP-1"}
	if err := s.store.InsertDriver(context.Background(), driver); err != nil {
		t.Fatalf("insert driver: %v", err)
	}
	return driver
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	if rec := srv.do(t, http.MethodGet, "/fleet/vehicles", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/fleet/vehicles", "garbage-token", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/fleet/vehicles", token(t, model.RoleViewer), nil); rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}

func TestCreateAssignmentEndpoint(t *testing.T) {
	srv := newTestServer(t)
	vehicle := srv.seedVehicle(t)
	driver := srv.seedDriver(t)
	dispatcher := token(t, model.RoleDispatcher)

	body := gin.H{
		"vehicle_id": vehicle.ID.String(),
		"driver_id":  driver.ID.String(),
		"start_time": "2024-01-01T00:00:00Z",
		"end_time":   "2024-01-05T00:00:00Z",
	}
	rec := srv.do(t, http.MethodPost, "/fleet/assignments", dispatcher, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data model.Assignment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Status != model.AssignmentStatusActive {
		t.Errorf("status = %s, want ACTIVE", created.Data.Status)
	}

	// Overlap: 409 with the structured conflict payload.
	rec = srv.do(t, http.MethodPost, "/fleet/assignments", dispatcher, gin.H{
		"vehicle_id": vehicle.ID.String(),
		"driver_id":  driver.ID.String(),
		"start_time": "2024-01-03T00:00:00Z",
		"end_time":   "2024-01-06T00:00:00Z",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("overlap: status = %d, want 409", rec.Code)
	}
	var conflictBody struct {
		Conflict struct {
			ResourceKind string `json:"resource_kind"`
			RecordID     string `json:"record_id"`
		} `json:"conflict"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &conflictBody); err != nil {
		t.Fatalf("decode conflict: %v", err)
	}
	if conflictBody.Conflict.RecordID != created.Data.ID.String() {
		t.Errorf("conflict record_id = %s, want %s", conflictBody.Conflict.RecordID, created.Data.ID)
	}
	if conflictBody.Conflict.ResourceKind == "" {
		t.Error("conflict resource_kind missing")
	}

	// Viewer may read but not schedule.
	if rec := srv.do(t, http.MethodPost, "/fleet/assignments", token(t, model.RoleViewer), body); rec.Code != http.StatusForbidden {
		t.Errorf("viewer create: status = %d, want 403", rec.Code)
	}

	// Complete, then completing again is an invalid state.
	completePath := fmt.Sprintf("/fleet/assignments/%s/complete", created.Data.ID)
	if rec := srv.do(t, http.MethodPut, completePath, dispatcher, nil); rec.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodPut, completePath, dispatcher, nil); rec.Code != http.StatusConflict {
		t.Errorf("double complete: status = %d, want 409", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	srv := newTestServer(t)
	dispatcher := token(t, model.RoleDispatcher)

	// Unknown assignment id.
	rec := srv.do(t, http.MethodGet, "/fleet/assignments/2e9239aa-61c8-4326-b8a0-94a9a06e3af6", dispatcher, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown assignment: status = %d, want 404", rec.Code)
	}

	// Malformed id.
	rec = srv.do(t, http.MethodGet, "/fleet/assignments/not-a-uuid", dispatcher, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want 400", rec.Code)
	}

	// Vehicle registration is admin-only.
	rec = srv.do(t, http.MethodPost, "/fleet/vehicles", dispatcher, gin.H{
		"plate_number": "KZ200CD",
		"model":        "MAZ 5440",
		"year":         2021,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("dispatcher register vehicle: status = %d, want 403", rec.Code)
	}
	rec = srv.do(t, http.MethodPost, "/fleet/vehicles", token(t, model.RoleAdmin), gin.H{
		"plate_number": "KZ200CD",
		"model":        "MAZ 5440",
		"year":         2021,
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("admin register vehicle: status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: status = %d, want 200", rec.Code)
	}
}
