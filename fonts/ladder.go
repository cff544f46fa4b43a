// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

// Package fonts loads one text font at a fixed ladder of pixel sizes and
// merges icon fonts into every rung.
package fonts

import (
	"fmt"
	"log"

	nfont "github.com/aarzilli/nucular/font"
)

const (
	Steps       = 11 // rungs in a ladder, odd so there is a middle one
	Stride      = 2  // pixels between neighbouring rungs
	MinSize     = 6
	DefaultSize = 16

	// MaxListed caps the glyphs recorded for each icon range.
	MaxListed = 240

	center = Steps / 2
)

// MinOffset and MaxOffset bound the offsets accepted by Ladder.Rung.
const (
	MinOffset = -center
	MaxOffset = Steps - 1 - center
)

// Font is a base font at a pixel size together with the icon fonts merged
// into it.
type Font struct {
	Source
	Px    int
	Icons []IconSource
}

// Rung is one size of the ladder.
type Rung struct {
	Offset int
	Px     int // unscaled pixel size
	Text   nfont.Face
	Icons  []nfont.Face // one per icon source, same order
	Merged *MergedFace
}

// RangeInfo is an icon range as found in the loaded fonts.
type RangeInfo struct {
	Range
	Count  int    // runes of the range that have a glyph
	Glyphs []rune // the first MaxListed of them
}

// Ladder holds the faces of every rung, indexed by size offset.
type Ladder struct {
	font      Font
	scaling   float64
	name      string
	iconNames []string
	ranges    [][]RangeInfo
	rungs     [Steps]Rung
}

// ClampOffset forces offset into [MinOffset, MaxOffset].
func ClampOffset(offset int) int {
	if offset < MinOffset {
		return MinOffset
	}
	if offset > MaxOffset {
		return MaxOffset
	}
	return offset
}

// SizeAt is the pixel size of the rung at offset for a ladder based at px.
func SizeAt(px, offset int) int {
	sz := px + ClampOffset(offset)*Stride
	if sz < MinSize {
		return MinSize
	}
	return sz
}

func scaled(px int, scaling float64) int {
	if scaling <= 0 {
		scaling = 1
	}
	sz := int(float64(px) * scaling)
	if sz < 1 {
		sz = 1
	}
	return sz
}

// LoadLadder creates the toolkit faces for every rung of f. A Px that is
// not positive falls back to DefaultSize, a missing TTF to Builtin.
func LoadLadder(f Font, scaling float64) (*Ladder, error) {
	if f.Px <= 0 {
		log.Printf("Invalid base font size %d, using %d\n", f.Px, DefaultSize)
		f.Px = DefaultSize
	}
	if f.TTF == nil {
		f.Source = Builtin()
	}
	l := &Ladder{font: f, scaling: scaling, name: f.Name()}

	for i := range l.rungs {
		offset := i - center
		sz := SizeAt(f.Px, offset)
		dev := scaled(sz, scaling)

		r := Rung{Offset: offset, Px: sz}
		var err error
		r.Text, err = nfont.NewFace(f.TTF, dev)
		if err != nil {
			return nil, fmt.Errorf("loading %s at %dpx: %w", l.name, sz, err)
		}
		for _, ic := range f.Icons {
			face, err := nfont.NewFace(ic.TTF, dev)
			if err != nil {
				return nil, fmt.Errorf("loading icons %s at %dpx: %w", ic.Path, sz, err)
			}
			r.Icons = append(r.Icons, face)
		}
		r.Merged, err = NewMergedFace(f.Source, f.Icons, dev)
		if err != nil {
			return nil, err
		}
		l.rungs[i] = r
	}

	// glyph presence does not depend on size, so one rung answers for all
	m := l.Base().Merged
	for _, ic := range f.Icons {
		l.iconNames = append(l.iconNames, ic.Name())
		var infos []RangeInfo
		for _, rg := range ic.Ranges {
			n, glyphs := m.scan(rg, MaxListed)
			if n == 0 {
				log.Printf("Icon font %s has no glyphs in %s\n", ic.Path, rg)
			}
			infos = append(infos, RangeInfo{Range: rg, Count: n, Glyphs: glyphs})
		}
		l.ranges = append(l.ranges, infos)
	}
	log.Printf("Loaded %s at %d sizes from %dpx to %dpx\n", l.name, Steps, l.rungs[0].Px, l.rungs[Steps-1].Px)
	return l, nil
}

// Rung returns the rung at offset, clamped into range.
func (l *Ladder) Rung(offset int) *Rung {
	return &l.rungs[ClampOffset(offset)+center]
}

// Face returns the toolkit text face at offset.
func (l *Ladder) Face(offset int) nfont.Face {
	return l.Rung(offset).Text
}

// Base returns the rung at offset 0.
func (l *Ladder) Base() *Rung {
	return l.Rung(0)
}

// Font returns what the ladder was loaded from, with defaults filled in.
func (l *Ladder) Font() Font {
	return l.font
}

func (l *Ladder) Name() string {
	return l.name
}

func (l *Ladder) IconName(i int) string {
	return l.iconNames[i]
}

// Ranges returns the ranges of the i-th icon font with their glyphs.
func (l *Ladder) Ranges(i int) []RangeInfo {
	return l.ranges[i]
}

func (l *Ladder) BasePx() int {
	return l.font.Px
}

// Close releases the merged faces of every rung.
func (l *Ladder) Close() error {
	var err error
	for i := range l.rungs {
		if m := l.rungs[i].Merged; m != nil {
			if cerr := m.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	return err
}
