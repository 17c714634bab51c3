package selection

import (
	"errors"
	"fmt"

	"github.com/matst80/slask-storefront/pkg/types"
)

var (
	ErrUnknownGroup  = errors.New("unknown filter group")
	ErrUnknownOption = errors.New("unknown filter option")
)

// Sidebar holds one selection per filter group plus the CUSTOMIZABLE checkbox.
// Selections are informational, they never filter the product list.
type Sidebar struct {
	groups       []types.FilterGroup
	selected     map[string]Set
	customizable bool
}

func NewSidebar(groups []types.FilterGroup) *Sidebar {
	s := &Sidebar{
		groups:   groups,
		selected: make(map[string]Set, len(groups)),
	}
	for _, g := range groups {
		s.selected[g.Id] = All()
	}
	return s
}

func (s *Sidebar) group(id string) (*types.FilterGroup, bool) {
	for i := range s.groups {
		if s.groups[i].Id == id {
			return &s.groups[i], true
		}
	}
	return nil, false
}

func (s *Sidebar) Toggle(groupId, option string) (Set, error) {
	g, ok := s.group(groupId)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupId)
	}
	if !g.HasOption(option) {
		return nil, fmt.Errorf("%w: %s in %s", ErrUnknownOption, option, groupId)
	}
	next := s.selected[groupId].Toggle(option)
	s.selected[groupId] = next
	return next, nil
}

func (s *Sidebar) Selection(groupId string) (Set, bool) {
	sel, ok := s.selected[groupId]
	return sel, ok
}

func (s *Sidebar) ToggleCustomizable() bool {
	s.customizable = !s.customizable
	return s.customizable
}

func (s *Sidebar) Customizable() bool {
	return s.customizable
}

func (s *Sidebar) Groups() []types.FilterGroup {
	return s.groups
}

type OptionState struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type GroupState struct {
	Id       string        `json:"id"`
	Label    string        `json:"label"`
	Selected []string      `json:"selected"`
	Display  string        `json:"display"`
	Options  []OptionState `json:"options"`
}

// State returns a copy of every group selection in configuration order.
func (s *Sidebar) State() []GroupState {
	ret := make([]GroupState, 0, len(s.groups))
	for _, g := range s.groups {
		sel := s.selected[g.Id]
		options := make([]OptionState, len(g.Options))
		for i, o := range g.Options {
			options[i] = OptionState{Value: o, Checked: sel.Contains(o)}
		}
		ret = append(ret, GroupState{
			Id:       g.Id,
			Label:    g.Label,
			Selected: append([]string(nil), sel...),
			Display:  sel.DisplayLabel(),
			Options:  options,
		})
	}
	return ret
}
