package service

import (
	"career_compass_backend/internal/util"
	"errors"
	"testing"
)

func TestCreateAndUpdateMaterial(t *testing.T) {
	db := newTestDB(t)
	svc := newMaterialService(db)
	admin := seedUser(t, db, "admin@example.com")

	material, err := svc.CreateMaterial(admin.ID, &MaterialCreateRequest{
		Title:        "Go Fundamentals",
		URL:          "https://example.com/go",
		Category:     "Web Dev",
		ResourceType: "course",
		Level:        "Beginner",
		IsFree:       true,
	})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if material.CreatedBy != admin.ID || !material.IsActive {
		t.Fatalf("material not initialized: %+v", material)
	}

	updated, err := svc.UpdateMaterial(material.ID, &MaterialUpdateRequest{
		Title:    strPtr("Go Fundamentals 2nd Edition"),
		IsActive: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateMaterial: %v", err)
	}
	if updated.Title != "Go Fundamentals 2nd Edition" || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}

	// 未提供的字段保持不变
	if updated.URL != "https://example.com/go" || updated.Level != "Beginner" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateMaterialNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newMaterialService(db)

	_, err := svc.UpdateMaterial(999, &MaterialUpdateRequest{Title: strPtr("x")})
	if !errors.Is(err, util.ErrMaterialNotFound) {
		t.Fatalf("err = %v, want ErrMaterialNotFound", err)
	}
}

func TestDeactivatedMaterialHiddenFromList(t *testing.T) {
	db := newTestDB(t)
	svc := newMaterialService(db)
	admin := seedUser(t, db, "admin@example.com")
	user := seedUser(t, db, "user@example.com")

	material, err := svc.CreateMaterial(admin.ID, &MaterialCreateRequest{
		Title: "Hidden Course",
		URL:   "https://example.com/hidden",
	})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}

	if err := svc.DeactivateMaterial(material.ID); err != nil {
		t.Fatalf("DeactivateMaterial: %v", err)
	}

	materials, total, err := svc.ListForUser(user.ID, &MaterialListRequest{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if total != 0 || len(materials) != 0 {
		t.Fatalf("deactivated material still listed: total=%d", total)
	}
}
