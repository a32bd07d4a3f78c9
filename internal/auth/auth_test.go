package auth

import (
	"errors"
	"testing"
)

func TestServiceBasic(t *testing.T) {
	svc := New(999, []int64{10, 20})

	if !svc.IsAuthorized(10) || !svc.IsAuthorized(20) {
		t.Fatalf("initial allow-list not effective")
	}
	if !svc.IsAuthorized(999) {
		t.Fatalf("admin must always be authorized")
	}
	if svc.IsAuthorized(30) {
		t.Fatalf("unexpected allowed")
	}
	if !svc.IsAdmin(999) || svc.IsAdmin(10) {
		t.Fatalf("admin check wrong")
	}
}

func TestPromote(t *testing.T) {
	svc := New(999, nil)

	if err := svc.Promote(999, 555); err != nil {
		t.Fatalf("admin promote: %v", err)
	}
	if !svc.IsAuthorized(555) {
		t.Fatalf("promote not effective")
	}

	// idempotent
	if err := svc.Promote(999, 555); err != nil {
		t.Fatalf("repeat promote: %v", err)
	}
	ids := svc.AllowedIDs()
	if len(ids) != 1 || ids[0] != 555 {
		t.Fatalf("want exactly one occurrence of 555, got %v", ids)
	}
}

func TestPromoteForbidden(t *testing.T) {
	svc := New(999, []int64{10})

	err := svc.Promote(10, 555)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if svc.IsAuthorized(555) {
		t.Fatalf("allow-list mutated by forbidden promote")
	}
}

func TestAllowedIDsSnapshot(t *testing.T) {
	svc := New(999, []int64{3, 1, 2})

	ids := svc.AllowedIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("want sorted [1 2 3], got %v", ids)
	}

	_ = svc.Promote(999, 4)
	ids = svc.AllowedIDs()
	if len(ids) != 4 {
		t.Fatalf("snapshot stale after promote: %v", ids)
	}
}
