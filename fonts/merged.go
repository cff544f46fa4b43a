// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package fonts

import (
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// BaseFont is returned by MergedFace.Covered for runes served by the base font.
const BaseFont = -1

type mergedPart struct {
	fnt    *truetype.Font
	face   font.Face
	ranges []Range
}

// MergedFace is a font.Face that draws runes inside an icon font's ranges
// from that icon font, provided it has a glyph for them, and everything
// else from the base font. Icon fonts are consulted in the order given.
type MergedFace struct {
	base  mergedPart
	icons []mergedPart
}

func newFace(fnt *truetype.Font, px int) font.Face {
	return truetype.NewFace(fnt, &truetype.Options{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
}

// NewMergedFace builds a merged face at px pixels.
func NewMergedFace(base Source, icons []IconSource, px int) (*MergedFace, error) {
	fnt, err := base.parse()
	if err != nil {
		return nil, err
	}
	m := &MergedFace{base: mergedPart{fnt: fnt, face: newFace(fnt, px)}}
	for _, ic := range icons {
		ifnt, err := ic.parse()
		if err != nil {
			return nil, err
		}
		m.icons = append(m.icons, mergedPart{fnt: ifnt, face: newFace(ifnt, px), ranges: ic.Ranges})
	}
	return m, nil
}

// Covered returns the index of the icon font that serves r, or BaseFont.
func (m *MergedFace) Covered(r rune) int {
	for i := range m.icons {
		p := &m.icons[i]
		for _, rg := range p.ranges {
			if rg.Contains(r) && p.fnt.Index(r) != 0 {
				return i
			}
		}
	}
	return BaseFont
}

// Has reports whether some font of m has a real glyph for r.
func (m *MergedFace) Has(r rune) bool {
	if i := m.Covered(r); i != BaseFont {
		return true
	}
	return m.base.fnt.Index(r) != 0
}

// Coverage counts the runes of rg that have a glyph. It walks the whole
// range, so callers should not run it per frame.
func (m *MergedFace) Coverage(rg Range) int {
	n, _ := m.scan(rg, 0)
	return n
}

// scan counts the runes of rg that have a glyph and lists the first max of
// them.
func (m *MergedFace) scan(rg Range, max int) (int, []rune) {
	n := 0
	var listed []rune
	for r := rg.Lo; r <= rg.Hi && rg.Hi >= rg.Lo; r++ {
		if !m.Has(r) {
			continue
		}
		n++
		if len(listed) < max {
			listed = append(listed, r)
		}
	}
	return n, listed
}

// Glyphs returns the runes of rg that have a glyph, at most max of them
// (max <= 0 means no limit).
func (m *MergedFace) Glyphs(rg Range, max int) []rune {
	var out []rune
	for r := rg.Lo; r <= rg.Hi && rg.Hi >= rg.Lo; r++ {
		if max > 0 && len(out) >= max {
			break
		}
		if m.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *MergedFace) part(r rune) *mergedPart {
	if i := m.Covered(r); i != BaseFont {
		return &m.icons[i]
	}
	return &m.base
}

func (m *MergedFace) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	return m.part(r).face.Glyph(dot, r)
}

func (m *MergedFace) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	return m.part(r).face.GlyphBounds(r)
}

func (m *MergedFace) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	return m.part(r).face.GlyphAdvance(r)
}

// Kern only applies between runes drawn by the same font.
func (m *MergedFace) Kern(r0, r1 rune) fixed.Int26_6 {
	p0, p1 := m.part(r0), m.part(r1)
	if p0 != p1 {
		return 0
	}
	return p0.face.Kern(r0, r1)
}

// Metrics are the base font's, with the line height raised to fit the
// tallest merged font.
func (m *MergedFace) Metrics() font.Metrics {
	met := m.base.face.Metrics()
	for i := range m.icons {
		im := m.icons[i].face.Metrics()
		if im.Ascent > met.Ascent {
			met.Ascent = im.Ascent
		}
		if im.Descent > met.Descent {
			met.Descent = im.Descent
		}
		if im.Height > met.Height {
			met.Height = im.Height
		}
	}
	return met
}

func (m *MergedFace) Close() error {
	err := m.base.face.Close()
	for i := range m.icons {
		if cerr := m.icons[i].face.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Measure returns the advance width of s.
func (m *MergedFace) Measure(s string) fixed.Int26_6 {
	return font.MeasureString(m, s)
}
