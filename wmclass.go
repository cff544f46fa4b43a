// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"log"
	"time"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// fixWindowClass finds our top-level window by title and gives it a
// WM_CLASS so task bars group and label it. The toolkit does not set one.
func fixWindowClass() {
	xu, err := xgbutil.NewConn()
	if err != nil {
		log.Printf("Couldn't create XU xdg conn: %+v\n", err)
		return
	}
	defer xu.Conn().Close()

	for i := 0; i < 100; i++ {
		wnds, _ := ewmh.ClientListGet(xu)
		for _, w := range wnds {
			n, _ := ewmh.WmNameGet(xu, w)
			if n != appName {
				continue
			}
			// an error here means the window has no WM_CLASS yet
			if _, err := icccm.WmClassGet(xu, w); err == nil {
				return
			}
			class := icccm.WmClass{Class: appName, Instance: appName}
			if err := icccm.WmClassSet(xu, w, &class); err != nil {
				log.Printf("Couldn't set WM_CLASS: %v\n", err)
			}
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	log.Printf("Gave up looking for window '%s'\n", appName)
}
