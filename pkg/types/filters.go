package types

import (
	"errors"
	"fmt"
)

// AllOption is the sentinel meaning no specific filter value is selected.
const AllOption = "All"

type FilterGroup struct {
	Id      string   `json:"id" yaml:"id" validate:"required"`
	Label   string   `json:"label" yaml:"label" validate:"required"`
	Options []string `json:"options" yaml:"options" validate:"required,min=1,dive,required"`
}

func (g *FilterGroup) HasOption(option string) bool {
	for _, o := range g.Options {
		if o == option {
			return true
		}
	}
	return false
}

var ErrMissingAllOption = errors.New("first filter option must be All")

// ValidateFilterGroups checks field rules, unique ids and the leading All sentinel.
func ValidateFilterGroups(groups []FilterGroup) error {
	seen := make(map[string]struct{}, len(groups))
	for i := range groups {
		g := &groups[i]
		if err := validate.Struct(*g); err != nil {
			return fmt.Errorf("filter group %q: %w", g.Id, err)
		}
		if g.Options[0] != AllOption {
			return fmt.Errorf("filter group %q: %w", g.Id, ErrMissingAllOption)
		}
		for _, o := range g.Options[1:] {
			if o == AllOption {
				return fmt.Errorf("filter group %q: All may only be the first option", g.Id)
			}
		}
		if _, found := seen[g.Id]; found {
			return fmt.Errorf("duplicate filter group id %q", g.Id)
		}
		seen[g.Id] = struct{}{}
	}
	return nil
}

func DefaultFilterGroups() []FilterGroup {
	return []FilterGroup{
		{Id: "idealFor", Label: "IDEAL FOR", Options: []string{AllOption, "Men", "Women", "Baby & Kids"}},
		{Id: "occasion", Label: "OCCASION", Options: []string{AllOption, "Casual", "Formal", "Party", "Work"}},
		{Id: "work", Label: "WORK", Options: []string{AllOption}},
		{Id: "fabric", Label: "FABRIC", Options: []string{AllOption, "Cotton", "Linen", "Silk", "Recycled"}},
		{Id: "segment", Label: "SEGMENT", Options: []string{AllOption}},
		{Id: "suitableFor", Label: "SUITABLE FOR", Options: []string{AllOption}},
		{Id: "rawMaterials", Label: "RAW MATERIALS", Options: []string{AllOption}},
		{Id: "pattern", Label: "PATTERN", Options: []string{AllOption, "Solid", "Stripes", "Checks", "Floral"}},
	}
}

func DefaultNavLinks() []string {
	return []string{"SHOP", "SKILLS", "STORIES", "ABOUT", "CONTACT US"}
}
