package selection

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleScenario(t *testing.T) {
	s := All()
	steps := []struct {
		option   string
		expected Set
	}{
		{"Cotton", Set{"Cotton"}},
		{"Linen", Set{"Cotton", "Linen"}},
		{"Cotton", Set{"Linen"}},
		{"Linen", Set{types.AllOption}},
	}
	for _, step := range steps {
		s = s.Toggle(step.option)
		if !slices.Equal(s, step.expected) {
			t.Errorf("Expected %v after toggling %s, got %v", step.expected, step.option, s)
		}
	}
}

func TestToggleAllResets(t *testing.T) {
	for _, s := range []Set{All(), {"Cotton"}, {"Cotton", "Linen", "Silk"}} {
		res := s.Toggle(types.AllOption)
		if !res.IsAll() {
			t.Errorf("Expected {All} from %v, got %v", s, res)
		}
	}
}

func TestToggleDoesNotModifyReceiver(t *testing.T) {
	s := Set{"Cotton", "Linen"}
	_ = s.Toggle("Cotton")
	_ = s.Toggle("Silk")
	assert.Equal(t, Set{"Cotton", "Linen"}, s)
}

func TestSelectionStaysValidForRandomSequences(t *testing.T) {
	options := []string{types.AllOption, "Cotton", "Linen", "Silk", "Recycled"}
	r := rand.New(rand.NewSource(1))
	for range 200 {
		s := All()
		for range 30 {
			s = s.Toggle(options[r.Intn(len(options))])
			if !s.Valid() {
				t.Fatalf("Expected valid selection, got %v", s)
			}
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "All", All().DisplayLabel())
	assert.Equal(t, "Men", Set{"Men"}.DisplayLabel())
	assert.Equal(t, "Women, Men", Set{"Women", "Men"}.DisplayLabel())
}

func TestSidebarToggle(t *testing.T) {
	sb := NewSidebar(types.DefaultFilterGroups())

	sel, err := sb.Toggle("fabric", "Cotton")
	require.NoError(t, err)
	assert.Equal(t, Set{"Cotton"}, sel)

	other, ok := sb.Selection("pattern")
	require.True(t, ok)
	assert.True(t, other.IsAll(), "groups must not affect each other")

	_, err = sb.Toggle("colour", "Red")
	assert.True(t, errors.Is(err, ErrUnknownGroup))

	_, err = sb.Toggle("fabric", "Wool")
	assert.True(t, errors.Is(err, ErrUnknownOption))

	current, _ := sb.Selection("fabric")
	assert.Equal(t, Set{"Cotton"}, current, "failed toggles leave the selection untouched")
}

func TestSidebarState(t *testing.T) {
	sb := NewSidebar(types.DefaultFilterGroups())
	_, _ = sb.Toggle("idealFor", "Women")
	_, _ = sb.Toggle("idealFor", "Men")

	state := sb.State()
	require.Len(t, state, 8)
	assert.Equal(t, "idealFor", state[0].Id)
	assert.Equal(t, "Women, Men", state[0].Display)
	assert.False(t, state[0].Options[0].Checked)
	assert.True(t, state[0].Options[1].Checked)
	assert.True(t, state[0].Options[2].Checked)
	assert.Equal(t, "All", state[1].Display)
}

func TestCustomizable(t *testing.T) {
	sb := NewSidebar(nil)
	assert.False(t, sb.Customizable())
	assert.True(t, sb.ToggleCustomizable())
	assert.False(t, sb.ToggleCustomizable())
}
