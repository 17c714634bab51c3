package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matst80/slask-storefront/pkg/types"
)

type Toggle string

const (
	Sidebar      Toggle = "sidebar"
	SortMenu     Toggle = "sortMenu"
	MobileDrawer Toggle = "mobileDrawer"
	MobileNav    Toggle = "mobileNav"

	groupPrefix = "group:"
)

var ErrUnknownToggle = errors.New("unknown view toggle")

// GroupToggle names the expanded flag of a filter group.
func GroupToggle(groupId string) Toggle {
	return Toggle(groupPrefix + groupId)
}

// State is the set of independent visibility flags of one page session.
// No flag changes another one, couplings live in the page controller.
type State struct {
	sidebarVisible   bool
	sortMenuOpen     bool
	mobileDrawerOpen bool
	mobileNavOpen    bool
	expanded         map[string]bool
	wishlist         map[types.ProductId]struct{}
}

func NewState(groups []types.FilterGroup) *State {
	s := &State{
		sidebarVisible: true,
		expanded:       make(map[string]bool, len(groups)),
		wishlist:       make(map[types.ProductId]struct{}),
	}
	for _, g := range groups {
		s.expanded[g.Id] = false
	}
	return s
}

func (s *State) flag(name Toggle) (*bool, error) {
	switch name {
	case Sidebar:
		return &s.sidebarVisible, nil
	case SortMenu:
		return &s.sortMenuOpen, nil
	case MobileDrawer:
		return &s.mobileDrawerOpen, nil
	case MobileNav:
		return &s.mobileNavOpen, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownToggle, name)
}

// Flip inverts the toggle and returns its new value.
func (s *State) Flip(name Toggle) (bool, error) {
	if id, ok := s.groupId(name); ok {
		s.expanded[id] = !s.expanded[id]
		return s.expanded[id], nil
	}
	f, err := s.flag(name)
	if err != nil {
		return false, err
	}
	*f = !*f
	return *f, nil
}

func (s *State) Set(name Toggle, value bool) error {
	if id, ok := s.groupId(name); ok {
		s.expanded[id] = value
		return nil
	}
	f, err := s.flag(name)
	if err != nil {
		return err
	}
	*f = value
	return nil
}

func (s *State) Get(name Toggle) (bool, error) {
	if id, ok := s.groupId(name); ok {
		return s.expanded[id], nil
	}
	f, err := s.flag(name)
	if err != nil {
		return false, err
	}
	return *f, nil
}

func (s *State) groupId(name Toggle) (string, bool) {
	id, ok := strings.CutPrefix(string(name), groupPrefix)
	if !ok {
		return "", false
	}
	_, found := s.expanded[id]
	return id, found
}

func (s *State) ToggleWishlist(id types.ProductId) bool {
	if _, found := s.wishlist[id]; found {
		delete(s.wishlist, id)
		return false
	}
	s.wishlist[id] = struct{}{}
	return true
}

func (s *State) IsWishlisted(id types.ProductId) bool {
	_, found := s.wishlist[id]
	return found
}

type Snapshot struct {
	SidebarVisible   bool            `json:"sidebarVisible"`
	SortMenuOpen     bool            `json:"sortMenuOpen"`
	MobileDrawerOpen bool            `json:"mobileDrawerOpen"`
	MobileNavOpen    bool            `json:"mobileNavOpen"`
	Expanded         map[string]bool `json:"expanded"`
}

func (s *State) Snapshot() Snapshot {
	expanded := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		expanded[k] = v
	}
	return Snapshot{
		SidebarVisible:   s.sidebarVisible,
		SortMenuOpen:     s.sortMenuOpen,
		MobileDrawerOpen: s.mobileDrawerOpen,
		MobileNavOpen:    s.mobileNavOpen,
		Expanded:         expanded,
	}
}
