// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"testing"

	"github.com/aarzilli/nucular"
	"golang.org/x/mobile/event/key"
)

func TestLadderStep(t *testing.T) {
	ctrl := func(v bool) func() bool { return func() bool { return v } }
	press := func(code key.Code, mods key.Modifiers) key.Event {
		return key.Event{Code: code, Modifiers: mods, Direction: key.DirPress}
	}

	cases := []struct {
		name      string
		keys      []key.Event
		scroll    int
		ctrl      bool
		wantStep  int
		wantReset bool
	}{
		{"nothing", nil, 0, false, 0, false},
		{"wheel without ctrl", nil, 2, false, 0, false},
		{"wheel up with ctrl", nil, 1, true, 1, false},
		{"wheel down with ctrl", nil, -3, true, -3, false},
		{"ctrl plus", []key.Event{press(key.CodeEqualSign, key.ModControl)}, 0, false, 1, false},
		{"ctrl minus", []key.Event{press(key.CodeHyphenMinus, key.ModControl)}, 0, false, -1, false},
		{"keypad", []key.Event{press(key.CodeKeypadPlusSign, key.ModControl), press(key.CodeKeypadPlusSign, key.ModControl)}, 0, false, 2, false},
		{"plus without ctrl", []key.Event{press(key.CodeEqualSign, 0)}, 0, false, 0, false},
		{"ctrl zero", []key.Event{press(key.Code0, key.ModControl)}, 0, false, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := &nucular.Input{}
			in.Keyboard.Keys = c.keys
			in.Mouse.ScrollDelta = float32(c.scroll)
			step, reset := ladderStep(in, ctrl(c.ctrl))
			if step != c.wantStep || reset != c.wantReset {
				t.Errorf("got step=%d reset=%t, want %d %t", step, reset, c.wantStep, c.wantReset)
			}
		})
	}
}

func TestLadderStepAsksOnlyOnScroll(t *testing.T) {
	asked := false
	ladderStep(&nucular.Input{}, func() bool { asked = true; return true })
	if asked {
		t.Errorf("modifier state queried without wheel movement")
	}
}
