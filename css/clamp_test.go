package css

import (
	"strings"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{40, "40"},
		{12.5, "12.5"},
		{-30, "-30"},
		{0.1 + 0.2, "0.30000000000000004"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Px(7); got != "7px" {
		t.Errorf("Px(7) = %q, want 7px", got)
	}
}

func TestClampString(t *testing.T) {
	c := Clamp{Min: 0, Value: 40, Reserve: 50}
	want := "clamp(0px, 40px, calc(100% - 50px))"
	if got := c.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestClampResolve(t *testing.T) {
	tests := []struct {
		name      string
		c         Clamp
		container float64
		want      float64
	}{
		{"inside", Clamp{Value: 40, Reserve: 50}, 500, 40},
		{"negative clamps to min", Clamp{Value: -20, Reserve: 50}, 500, 0},
		{"past max clamps to max", Clamp{Value: 480, Reserve: 50}, 500, 450},
		{"min wins over max", Clamp{Value: 10, Reserve: 600}, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Resolve(tt.container); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseClamp(t *testing.T) {
	for _, c := range []Clamp{
		{Value: 40, Reserve: 50},
		{Value: -12.5, Reserve: 0},
		{Min: 4, Value: 1000, Reserve: 33.25},
	} {
		got, err := ParseClamp(c.String())
		if err != nil {
			t.Fatalf("ParseClamp(%q) failed: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("ParseClamp(%q) = %+v, want %+v", c.String(), got, c)
		}
	}
}

func TestParseClampErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"40px",
		"clamp(0px, 40px)",
		"clamp(0px, 40em, calc(100% - 5px))",
		"clamp(0px, 40px, 100px)",
		"clamp(0px, 40px, calc(50% - 5px))",
	} {
		if _, err := ParseClamp(in); err == nil {
			t.Errorf("Expected error for %q", in)
		} else if !strings.HasPrefix(err.Error(), "css:") {
			t.Errorf("Expected css-prefixed error, got %v", err)
		}
	}
}
