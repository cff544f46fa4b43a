// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package fonts

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Source is a TrueType font file and its contents. An empty Path means the
// built-in Go Regular font.
type Source struct {
	Path string
	TTF  []byte
}

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

func (r Range) Contains(c rune) bool {
	return c >= r.Lo && c <= r.Hi
}

// Len returns the number of code points in the range.
func (r Range) Len() int {
	if r.Hi < r.Lo {
		return 0
	}
	return int(r.Hi-r.Lo) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("U+%04X-U+%04X", r.Lo, r.Hi)
}

// IconSource is a font whose glyphs inside Ranges are merged on top of the
// base font of every rung.
type IconSource struct {
	Source
	Ranges []Range
}

// Contains reports whether c falls in one of the icon ranges.
func (s IconSource) Contains(c rune) bool {
	for _, r := range s.Ranges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Builtin returns the font used when no base font was given.
func Builtin() Source {
	return Source{TTF: goregular.TTF}
}

// ReadSource loads the font at path. An empty path yields Builtin.
func ReadSource(path string) (Source, error) {
	if path == "" {
		return Builtin(), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("reading font %s: %w", path, err)
	}
	src := Source{Path: path, TTF: buf}
	if _, err := src.parse(); err != nil {
		return Source{}, err
	}
	return src, nil
}

// Name returns the full font name recorded in the file, or the path when the
// file carries none.
func (s Source) Name() string {
	fnt, err := s.parse()
	if err == nil {
		if n := fnt.Name(truetype.NameIDFontFullName); n != "" {
			return n
		}
	}
	if s.Path == "" {
		return "Go Regular"
	}
	return s.Path
}

func (s Source) parse() (*truetype.Font, error) {
	fnt, err := parseCached(s.TTF)
	if err != nil {
		name := s.Path
		if name == "" {
			name = "built-in font"
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return fnt, nil
}
