// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"log"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/aarzilli/nucular"
	"golang.org/x/mobile/event/key"
)

// ctrlState answers whether a Control key is held. The toolkit only passes
// on key presses, so the X server is asked for the modifier mask instead.
type ctrlState struct {
	once sync.Once
	xu   *xgbutil.XUtil
}

func (c *ctrlState) held() bool {
	c.once.Do(func() {
		xu, err := xgbutil.NewConn()
		if err != nil {
			log.Printf("Couldn't connect to X for modifier state: %v\n", err)
			return
		}
		c.xu = xu
	})
	if c.xu == nil {
		return false
	}
	reply, err := xproto.QueryPointer(c.xu.Conn(), c.xu.RootWin()).Reply()
	if err != nil {
		log.Printf("Couldn't query pointer: %v\n", err)
		return false
	}
	return reply.Mask&xproto.KeyButMaskControl != 0
}

// ladderStep turns one frame of input into a move along the ladder.
// Ctrl with the wheel or with +/- steps, Ctrl+0 goes back to the middle.
// ctrlHeld is only asked when the wheel moved.
func ladderStep(in *nucular.Input, ctrlHeld func() bool) (step int, reset bool) {
	for _, e := range in.Keyboard.Keys {
		if e.Modifiers&key.ModControl == 0 {
			continue
		}
		switch e.Code {
		case key.CodeEqualSign, key.CodeKeypadPlusSign:
			step++
		case key.CodeHyphenMinus, key.CodeKeypadHyphenMinus:
			step--
		case key.Code0, key.CodeKeypad0:
			reset = true
		}
	}
	if in.Mouse.ScrollDelta != 0 && ctrlHeld() {
		step += int(in.Mouse.ScrollDelta)
	}
	return step, reset
}
