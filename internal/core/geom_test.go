package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max int
		expected      int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.min, tt.max, got, tt.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n   int
		expected int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-5, 4, 3},
	}

	for _, tt := range tests {
		if got := Wrap(tt.val, tt.n); got != tt.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tt.val, tt.n, got, tt.expected)
		}
	}
}

func TestActionDelta(t *testing.T) {
	tests := []struct {
		action Action
		dx, dy int
		ok     bool
	}{
		{ActionUp, 0, -1, true},
		{ActionDown, 0, 1, true},
		{ActionLeft, -1, 0, true},
		{ActionRight, 1, 0, true},
		{ActionSelect, 0, 0, false},
		{ActionNone, 0, 0, false},
	}

	for _, tt := range tests {
		dx, dy, ok := tt.action.Delta()
		if dx != tt.dx || dy != tt.dy || ok != tt.ok {
			t.Errorf("%v.Delta() = (%d, %d, %v), expected (%d, %d, %v)", tt.action, dx, dy, ok, tt.dx, tt.dy, tt.ok)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionHint.String() != "Hint" {
		t.Errorf("ActionHint.String() = %q", ActionHint.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
