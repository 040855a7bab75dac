package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/db"
	"github.com/tripeasy-dev/tripeasy/internal/models"
)

func TestListMembers(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	viewer := createTestUser(t, "Vera", "vera@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	addMember(t, viewer, trip.ID, models.RoleViewer)

	w := doRequest(t, r, http.MethodGet, "/api/trips/"+itoa(trip.ID)+"/members", tokenFor(t, viewer), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var members []MemberResponse
	decodeBody(t, w, &members)

	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	byEmail := make(map[string]MemberResponse, len(members))
	for _, member := range members {
		byEmail[member.Email] = member
	}

	if byEmail["ana@example.com"].Role != models.RoleOwner {
		t.Errorf("expected ana to be OWNER, got %q", byEmail["ana@example.com"].Role)
	}
	if byEmail["vera@example.com"].Role != models.RoleViewer {
		t.Errorf("expected vera to be VIEWER, got %q", byEmail["vera@example.com"].Role)
	}
}

func TestUpdateMemberRole(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	viewer := createTestUser(t, "Vera", "vera@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	member := addMember(t, viewer, trip.ID, models.RoleViewer)

	w := doRequest(t, r, http.MethodPatch,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), tokenFor(t, owner), gin.H{
			"role": models.RoleEditor,
		})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.TripMember
	if err := db.DB.First(&stored, member.ID).Error; err != nil {
		t.Fatalf("failed to reload member: %v", err)
	}
	if stored.Role != models.RoleEditor {
		t.Errorf("expected role EDITOR, got %q", stored.Role)
	}
}

func TestUpdateMemberRoleOwnerOnly(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	editor := createTestUser(t, "Bruno", "bruno@example.com")
	viewer := createTestUser(t, "Vera", "vera@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	addMember(t, editor, trip.ID, models.RoleEditor)
	member := addMember(t, viewer, trip.ID, models.RoleViewer)

	// Editors manage content, not people.
	w := doRequest(t, r, http.MethodPatch,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), tokenFor(t, editor), gin.H{
			"role": models.RoleEditor,
		})

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for editor, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateMemberRoleRejectsInvalidRole(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	viewer := createTestUser(t, "Vera", "vera@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	member := addMember(t, viewer, trip.ID, models.RoleViewer)

	w := doRequest(t, r, http.MethodPatch,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), tokenFor(t, owner), gin.H{
			"role": "ADMIN",
		})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLastOwnerCannotBeDemoted(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	ownerToken := tokenFor(t, owner)
	trip := createTestTrip(t, r, ownerToken)

	var member models.TripMember
	if err := db.DB.Where("user_id = ? AND trip_id = ?", owner.ID, trip.ID).First(&member).Error; err != nil {
		t.Fatalf("failed to load owner membership: %v", err)
	}

	w := doRequest(t, r, http.MethodPatch,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), ownerToken, gin.H{
			"role": models.RoleViewer,
		})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 demoting the sole owner, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), ownerToken, nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 removing the sole owner, got %d: %s", w.Code, w.Body.String())
	}
}

func TestOwnerCanStepDownWithCoOwner(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	coOwner := createTestUser(t, "Bruno", "bruno@example.com")
	ownerToken := tokenFor(t, owner)

	trip := createTestTrip(t, r, ownerToken)
	addMember(t, coOwner, trip.ID, models.RoleOwner)

	var member models.TripMember
	if err := db.DB.Where("user_id = ? AND trip_id = ?", owner.ID, trip.ID).First(&member).Error; err != nil {
		t.Fatalf("failed to load owner membership: %v", err)
	}

	w := doRequest(t, r, http.MethodPatch,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), ownerToken, gin.H{
			"role": models.RoleEditor,
		})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a co-owner present, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.TripMember
	if err := db.DB.First(&stored, member.ID).Error; err != nil {
		t.Fatalf("failed to reload member: %v", err)
	}
	if stored.Role != models.RoleEditor {
		t.Errorf("expected role EDITOR, got %q", stored.Role)
	}
}

func TestRemoveMember(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	editor := createTestUser(t, "Bruno", "bruno@example.com")

	trip := createTestTrip(t, r, tokenFor(t, owner))
	member := addMember(t, editor, trip.ID, models.RoleEditor)

	w := doRequest(t, r, http.MethodDelete,
		"/api/trips/"+itoa(trip.ID)+"/members/"+itoa(member.ID), tokenFor(t, owner), nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.DB.Model(&models.TripMember{}).Where("id = ?", member.ID).Count(&count)

	if count != 0 {
		t.Errorf("expected membership removed, still present")
	}

	// The removed user no longer sees the trip.
	w = doRequest(t, r, http.MethodGet, "/api/trips/"+itoa(trip.ID), tokenFor(t, editor), nil)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after removal, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRemoveMemberUnknownID(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	owner := createTestUser(t, "Ana", "ana@example.com")
	ownerToken := tokenFor(t, owner)
	trip := createTestTrip(t, r, ownerToken)

	w := doRequest(t, r, http.MethodDelete,
		"/api/trips/"+itoa(trip.ID)+"/members/9999", ownerToken, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
