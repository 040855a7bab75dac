package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
)

func TestCreateTripSeedsOwnerAndDays(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	trip := createTestTrip(t, r, tokenFor(t, owner))

	var member models.TripMember
	if err := db.DB.Where("user_id = ? AND trip_id = ?", owner.ID, trip.ID).First(&member).Error; err != nil {
		t.Fatalf("expected creator membership: %v", err)
	}
	if member.Role != models.RoleOwner {
		t.Errorf("expected creator role OWNER, got %q", member.Role)
	}

	// June 1 through June 4 inclusive is four days.
	var dayCount int64
	if err := db.DB.Model(&models.TripDay{}).Where("trip_id = ?", trip.ID).Count(&dayCount).Error; err != nil {
		t.Fatalf("failed to count days: %v", err)
	}
	if dayCount != 4 {
		t.Errorf("expected 4 seeded days, got %d", dayCount)
	}
}

func TestCreateTripRejectsInvertedDates(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")

	w := doRequest(t, r, http.MethodPost, "/api/trips", tokenFor(t, owner), gin.H{
		"name":        "Backwards",
		"destination": "Nowhere",
		"start_date":  "2026-06-04",
		"end_date":    "2026-06-01",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListTripsIncludesRole(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	editor := createTestUser(t, "Bruno", "bruno@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	addMember(t, editor, trip.ID, models.RoleEditor)

	w := doRequest(t, r, http.MethodGet, "/api/trips", tokenFor(t, editor), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var trips []TripOverview
	decodeBody(t, w, &trips)

	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	if trips[0].Role != models.RoleEditor {
		t.Errorf("expected role EDITOR in listing, got %q", trips[0].Role)
	}
}

func TestGetTripRequiresMembership(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	outsider := createTestUser(t, "Otto", "otto@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))

	w := doRequest(t, r, http.MethodGet, "/api/trips/"+itoa(trip.ID), tokenFor(t, outsider), nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/api/trips/"+itoa(trip.ID), tokenFor(t, owner), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for member, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateTripPatchSemantics(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	ownerToken := tokenFor(t, owner)
	trip := createTestTrip(t, r, ownerToken)

	w := doRequest(t, r, http.MethodPatch, "/api/trips/"+itoa(trip.ID), ownerToken, gin.H{
		"description": "A week of pastel de nata",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Trip
	if err := db.DB.First(&stored, trip.ID).Error; err != nil {
		t.Fatalf("failed to reload trip: %v", err)
	}
	if stored.Description != "A week of pastel de nata" {
		t.Errorf("expected description updated, got %q", stored.Description)
	}
	if stored.Name != "Summer in Lisbon" {
		t.Errorf("untouched field changed, name is %q", stored.Name)
	}

	// A present empty string clears the field.
	w = doRequest(t, r, http.MethodPatch, "/api/trips/"+itoa(trip.ID), ownerToken, gin.H{
		"description": "",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if err := db.DB.First(&stored, trip.ID).Error; err != nil {
		t.Fatalf("failed to reload trip: %v", err)
	}
	if stored.Description != "" {
		t.Errorf("expected description cleared, got %q", stored.Description)
	}

	// An empty patch is rejected.
	w = doRequest(t, r, http.MethodPatch, "/api/trips/"+itoa(trip.ID), ownerToken, gin.H{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateTripForbiddenForViewer(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	viewer := createTestUser(t, "Vera", "vera@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	addMember(t, viewer, trip.ID, models.RoleViewer)

	w := doRequest(t, r, http.MethodPatch, "/api/trips/"+itoa(trip.ID), tokenFor(t, viewer), gin.H{
		"name": "Hijacked",
	})

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteTripOwnerOnly(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	editor := createTestUser(t, "Bruno", "bruno@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	addMember(t, editor, trip.ID, models.RoleEditor)

	w := doRequest(t, r, http.MethodDelete, "/api/trips/"+itoa(trip.ID), tokenFor(t, editor), nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, "/api/trips/"+itoa(trip.ID), tokenFor(t, owner), nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for owner, got %d: %s", w.Code, w.Body.String())
	}

	var tripCount, dayCount, memberCount int64
	db.DB.Model(&models.Trip{}).Where("id = ?", trip.ID).Count(&tripCount)
	db.DB.Model(&models.TripDay{}).Where("trip_id = ?", trip.ID).Count(&dayCount)
	db.DB.Model(&models.TripMember{}).Where("trip_id = ?", trip.ID).Count(&memberCount)

	if tripCount != 0 || dayCount != 0 || memberCount != 0 {
		t.Errorf("expected trip and children removed, found trip=%d days=%d members=%d",
			tripCount, dayCount, memberCount)
	}
}
