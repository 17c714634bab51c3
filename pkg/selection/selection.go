package selection

import (
	"slices"
	"strings"

	"github.com/matst80/slask-storefront/pkg/types"
)

const labelSeparator = ", "

// Set is either exactly {All} or a non-empty list of specific options in the
// order they were selected.
type Set []string

func All() Set {
	return Set{types.AllOption}
}

func (s Set) IsAll() bool {
	return len(s) == 1 && s[0] == types.AllOption
}

func (s Set) Contains(option string) bool {
	return slices.Contains(s, option)
}

// Toggle returns the selection after toggling option. The receiver is left as is.
func (s Set) Toggle(option string) Set {
	if option == types.AllOption {
		return All()
	}
	without := make(Set, 0, len(s)+1)
	for _, o := range s {
		if o != types.AllOption {
			without = append(without, o)
		}
	}
	if idx := slices.Index(without, option); idx >= 0 {
		without = slices.Delete(without, idx, idx+1)
		if len(without) == 0 {
			return All()
		}
		return without
	}
	return append(without, option)
}

func (s Set) DisplayLabel() string {
	if len(s) == 0 || s.Contains(types.AllOption) {
		return types.AllOption
	}
	return strings.Join(s, labelSeparator)
}

// Valid reports whether the set is All alone or a non-empty set without All.
func (s Set) Valid() bool {
	if len(s) == 0 {
		return false
	}
	if s.Contains(types.AllOption) {
		return s.IsAll()
	}
	return true
}
