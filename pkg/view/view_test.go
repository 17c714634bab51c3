package view

import (
	"errors"
	"testing"

	"github.com/matst80/slask-storefront/pkg/types"
)

func TestDefaults(t *testing.T) {
	s := NewState(types.DefaultFilterGroups())
	snap := s.Snapshot()
	if !snap.SidebarVisible {
		t.Errorf("Expected sidebar to be visible by default")
	}
	if snap.SortMenuOpen || snap.MobileDrawerOpen || snap.MobileNavOpen {
		t.Errorf("Expected menus to be closed by default, got %+v", snap)
	}
	if len(snap.Expanded) != 8 {
		t.Errorf("Expected 8 group flags, got %d", len(snap.Expanded))
	}
	for id, open := range snap.Expanded {
		if open {
			t.Errorf("Expected group %s to be collapsed", id)
		}
	}
}

func TestFlipIsIndependent(t *testing.T) {
	s := NewState(types.DefaultFilterGroups())
	v, err := s.Flip(SortMenu)
	if err != nil || !v {
		t.Fatalf("Expected sort menu open, got %v %v", v, err)
	}
	v, _ = s.Flip(MobileNav)
	if !v {
		t.Errorf("Expected mobile nav open")
	}
	if open, _ := s.Get(SortMenu); !open {
		t.Errorf("Expected sort menu to stay open when another toggle flips")
	}
	v, _ = s.Flip(Sidebar)
	if v {
		t.Errorf("Expected sidebar hidden after flip")
	}
	v, _ = s.Flip(GroupToggle("fabric"))
	if !v {
		t.Errorf("Expected fabric expanded")
	}
	if open, _ := s.Get(GroupToggle("pattern")); open {
		t.Errorf("Expected pattern to stay collapsed")
	}
}

func TestSet(t *testing.T) {
	s := NewState(nil)
	_, _ = s.Flip(MobileDrawer)
	if err := s.Set(MobileDrawer, false); err != nil {
		t.Fatal(err)
	}
	if open, _ := s.Get(MobileDrawer); open {
		t.Errorf("Expected drawer closed")
	}
	if err := s.Set(MobileDrawer, false); err != nil {
		t.Errorf("Expected closing a closed drawer to be a no-op, got %v", err)
	}
}

func TestUnknownToggle(t *testing.T) {
	s := NewState(types.DefaultFilterGroups())
	for _, name := range []Toggle{"cart", GroupToggle("colour"), "group:"} {
		if _, err := s.Flip(name); !errors.Is(err, ErrUnknownToggle) {
			t.Errorf("Expected ErrUnknownToggle for %s, got %v", name, err)
		}
		if err := s.Set(name, true); !errors.Is(err, ErrUnknownToggle) {
			t.Errorf("Expected ErrUnknownToggle for %s, got %v", name, err)
		}
	}
}

func TestWishlist(t *testing.T) {
	s := NewState(nil)
	if !s.ToggleWishlist(3) {
		t.Errorf("Expected product 3 to be wishlisted")
	}
	if s.IsWishlisted(4) {
		t.Errorf("Expected product 4 not to be wishlisted")
	}
	if s.ToggleWishlist(3) {
		t.Errorf("Expected second toggle to remove product 3")
	}
	if s.IsWishlisted(3) {
		t.Errorf("Expected product 3 removed")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewState(types.DefaultFilterGroups())
	snap := s.Snapshot()
	snap.Expanded["fabric"] = true
	if open, _ := s.Get(GroupToggle("fabric")); open {
		t.Errorf("Expected snapshot changes not to leak into state")
	}
}
