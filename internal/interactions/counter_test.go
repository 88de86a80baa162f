// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import (
	"reflect"
	"testing"
)

func TestCounterInsertionOrder(t *testing.T) {
	c := NewCounter()
	c.Add("b")
	c.Add("a")
	c.Add("b")
	c.Add("c")

	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(c.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", c.Keys(), want)
	}
	if c.Count("b") != 2 || c.Count("a") != 1 || c.Count("missing") != 0 {
		t.Errorf("counts wrong: b=%d a=%d missing=%d",
			c.Count("b"), c.Count("a"), c.Count("missing"))
	}
}

func TestCounterTopStableTies(t *testing.T) {
	c := NewCounter()
	c.Add("x")
	c.Add("y")
	c.Add("z")
	c.Add("z")

	// z wins on count; x and y tie and keep insertion order.
	want := []string{"z", "x", "y"}
	if got := c.Top(0); !reflect.DeepEqual(got, want) {
		t.Errorf("Top(0) = %v, want %v", got, want)
	}
	if got := c.Top(2); !reflect.DeepEqual(got, []string{"z", "x"}) {
		t.Errorf("Top(2) = %v, want [z x]", got)
	}
}
