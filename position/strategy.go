package position

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownStrategy is returned by Lookup for names with no strategy.
var ErrUnknownStrategy = errors.New("unknown positioning strategy")

// Strategy is a named, immutable bundle of fit, alignment and arrow
// behavior. Every Position call builds its own Session from it, so one
// Strategy value can serve any number of target/anchor pairs.
type Strategy struct {
	name  string
	fit   FitStrategy
	align AlignStrategy
	arrow ArrowStrategy
}

// NewStrategy assembles a strategy. A nil arrow means WithoutArrow.
func NewStrategy(name string, fit FitStrategy, align AlignStrategy, arrow ArrowStrategy) Strategy {
	if arrow == nil {
		arrow = WithoutArrow()
	}
	return Strategy{name: name, fit: fit, align: align, arrow: arrow}
}

// Name returns the strategy name.
func (s Strategy) Name() string {
	return s.name
}

func (s Strategy) String() string {
	return s.name
}

// The scenario strategies.
var (
	// VerticalTooltip: above the anchor if possible, centered, with arrow.
	VerticalTooltip = NewStrategy("vertical-tooltip", PreferAbove{}, HorizontalCenter{}, WithArrow(VerticalArrow{}))
	// HorizontalTooltip: right of the anchor if possible, centered, with arrow.
	HorizontalTooltip = NewStrategy("horizontal-tooltip", HorizontalTarget{}, VerticalCenter{}, WithArrow(HorizontalArrow{}))
	// Dropdown: below the anchor if possible, flush with one of its edges.
	Dropdown = NewStrategy("dropdown", PreferBelow{}, HorizontalFlush{}, WithoutArrow())
	// Popup: above the anchor if possible, horizontal position left to styles.
	Popup = NewStrategy("popup", PreferAbove{}, Unaligned{}, WithoutArrow())
)

var registry = map[string]Strategy{
	VerticalTooltip.name:   VerticalTooltip,
	HorizontalTooltip.name: HorizontalTooltip,
	Dropdown.name:          Dropdown,
	Popup.name:             Popup,
}

// Strategies returns the scenario strategies sorted by name.
func Strategies() []Strategy {
	out := make([]Strategy, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Lookup returns the scenario strategy with the given name.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}
