package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/auth"
	"github.com/tripeasy-dev/tripeasy/internal/middleware"
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"github.com/tripeasy-dev/tripeasy/internal/services"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	os.Setenv("JWT_SECRET", "test-secret")

	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

// setupTestDB points the global connection at a fresh in-memory database.
// A single pooled connection keeps the in-memory database alive for the
// whole test.
func setupTestDB(t *testing.T) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := conn.DB()

	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}

	sqlDB.SetMaxOpenConns(1)

	db.DB = conn

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
}

func newTestRouter() *gin.Engine {
	r := gin.New()

	api := r.Group("/api")

	api.GET("/invites/:token", GetInviteByToken)
	api.POST("/invites/:token/accept", middleware.AuthMiddleware(), AcceptInvite)

	accounts := api.Group("/auth")
	accounts.POST("/register", Register)
	accounts.POST("/login", Login)

	trips := api.Group("/trips", middleware.AuthMiddleware())
	trips.POST("", CreateTrip)
	trips.GET("", ListTrips)
	trips.GET("/:trip_id", GetTrip)
	trips.PATCH("/:trip_id", UpdateTrip)
	trips.DELETE("/:trip_id", DeleteTrip)
	trips.GET("/:trip_id/summary", GetTripSummary)
	trips.GET("/:trip_id/members", ListMembers)
	trips.PATCH("/:trip_id/members/:member_id", UpdateMemberRole)
	trips.DELETE("/:trip_id/members/:member_id", RemoveMember)
	trips.GET("/:trip_id/invites", ListInvites)
	trips.POST("/:trip_id/invites", CreateInvite)

	authed := api.Group("", middleware.AuthMiddleware())
	authed.POST("/activities", CreateActivity)
	authed.POST("/expenses", CreateExpense)
	authed.POST("/tasks", CreateTask)
	authed.POST("/packing-items", CreatePackingItem)
	authed.POST("/notes", CreateNote)

	return r
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createTestUser(t *testing.T, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$unusedhashunusedhashunusedhashunusedhashunused",
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func createTestTrip(t *testing.T, r *gin.Engine, token string) TripResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/trips", token, gin.H{
		"name":        "Summer in Lisbon",
		"destination": "Lisbon, Portugal",
		"start_date":  "2026-06-01",
		"end_date":    "2026-06-04",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating trip, got %d: %s", w.Code, w.Body.String())
	}

	var trip TripResponse
	decodeBody(t, w, &trip)

	return trip
}

// addMember attaches a user to a trip directly, bypassing the invite flow.
func addMember(t *testing.T, user models.User, tripID uint, role string) models.TripMember {
	t.Helper()

	member := models.TripMember{
		UserID: user.ID,
		TripID: tripID,
		Role:   role,
	}

	if err := db.DB.Create(&member).Error; err != nil {
		t.Fatalf("failed to add member: %v", err)
	}

	return member
}

// stubInviteEmail replaces outbound delivery for the duration of a test.
func stubInviteEmail(t *testing.T, fn func(msg services.TripInviteEmail) error) {
	t.Helper()

	original := sendTripInviteEmail
	sendTripInviteEmail = fn

	t.Cleanup(func() {
		sendTripInviteEmail = original
	})
}
