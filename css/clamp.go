// Package css formats and evaluates the small set of CSS values the
// positioner writes: pixel lengths and the clamp() expression used for
// --target-top and --target-left.
package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number formats v the way a JavaScript template literal would for the
// values we write: shortest decimal form, no exponent, no negative zero.
func Number(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Px formats v as a CSS pixel length.
func Px(v float64) string {
	return Number(v) + "px"
}

// Clamp is clamp(<Min>px, <Value>px, calc(100% - <Reserve>px)).
//
// The percentage refers to the containing block size along the axis, so the
// resolved value keeps an element of size Reserve inside its container.
type Clamp struct {
	Min     float64
	Value   float64
	Reserve float64
}

// String serializes the expression.
func (c Clamp) String() string {
	return fmt.Sprintf("clamp(%s, %s, calc(100%% - %s))", Px(c.Min), Px(c.Value), Px(c.Reserve))
}

// Resolve evaluates the expression for a container of the given size.
// As in CSS, the minimum wins when it exceeds the maximum.
func (c Clamp) Resolve(container float64) float64 {
	max := container - c.Reserve
	return math.Max(c.Min, math.Min(c.Value, max))
}

// ParseClamp parses a value produced by Clamp.String.
func ParseClamp(s string) (Clamp, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "clamp(") || !strings.HasSuffix(s, ")") {
		return Clamp{}, fmt.Errorf("css: not a clamp() expression: %q", s)
	}
	args := splitArgs(s[len("clamp(") : len(s)-1])
	if len(args) != 3 {
		return Clamp{}, fmt.Errorf("css: clamp() takes 3 arguments, got %d in %q", len(args), s)
	}

	var c Clamp
	var err error
	if c.Min, err = ParsePx(args[0]); err != nil {
		return Clamp{}, err
	}
	if c.Value, err = ParsePx(args[1]); err != nil {
		return Clamp{}, err
	}

	max := strings.TrimSpace(args[2])
	if !strings.HasPrefix(max, "calc(") || !strings.HasSuffix(max, ")") {
		return Clamp{}, fmt.Errorf("css: unexpected clamp() maximum %q", max)
	}
	expr := strings.TrimSpace(max[len("calc(") : len(max)-1])
	rest, ok := strings.CutPrefix(expr, "100%")
	if !ok {
		return Clamp{}, fmt.Errorf("css: unexpected calc() expression %q", expr)
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "-")
	if !ok {
		return Clamp{}, fmt.Errorf("css: unexpected calc() expression %q", expr)
	}
	if c.Reserve, err = ParsePx(rest); err != nil {
		return Clamp{}, err
	}
	return c, nil
}

// ParsePx parses a pixel length such as "12.5px". A bare "0" is accepted.
func ParsePx(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	num, ok := strings.CutSuffix(s, "px")
	if !ok {
		return 0, fmt.Errorf("css: not a pixel length: %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("css: bad pixel length %q: %w", s, err)
	}
	return v, nil
}

// splitArgs splits on commas that are not nested in parentheses.
func splitArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}
