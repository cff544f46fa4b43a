// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package fonts

import (
	"log"

	nfont "github.com/aarzilli/nucular/font"
	nstyle "github.com/aarzilli/nucular/style"
)

// Stack switches the font of a toolkit style for the widgets drawn between
// Push and the matching Pop. The toolkit reads the style font when each
// widget is drawn, so a pushed font only affects widgets emitted after it.
type Stack struct {
	prev []nfont.Face
}

func (s *Stack) Push(st *nstyle.Style, face nfont.Face) {
	s.prev = append(s.prev, st.Font)
	st.Font = face
}

func (s *Stack) Pop(st *nstyle.Style) {
	if len(s.prev) == 0 {
		log.Printf("Font stack underflow\n")
		return
	}
	st.Font = s.prev[len(s.prev)-1]
	s.prev = s.prev[:len(s.prev)-1]
}

// Depth is the number of pushes not yet popped.
func (s *Stack) Depth() int {
	return len(s.prev)
}
