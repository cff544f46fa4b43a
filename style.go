// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"image"
	"log"
	"sort"
	"strings"

	"github.com/aarzilli/nucular"
	nfont "github.com/aarzilli/nucular/font"
	nstyle "github.com/aarzilli/nucular/style"
)

const defaultTheme = "dark"

var themes = map[string]nstyle.Theme{
	"default": nstyle.DefaultTheme,
	"white":   nstyle.WhiteTheme,
	"red":     nstyle.RedTheme,
	"dark":    nstyle.DarkTheme,
}

func themeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupTheme(name string) (nstyle.Theme, string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if th, ok := themes[name]; ok {
		return th, name
	}
	log.Printf("Unknown theme '%s', using %s\n", name, defaultTheme)
	return themes[defaultTheme], defaultTheme
}

// buildStyle returns the toolkit style for theme with face as the default
// font and the app's spacing tweaks on top.
func buildStyle(theme string, scaling float64, face nfont.Face) (*nstyle.Style, string) {
	if scaling <= 0 {
		scaling = 1.0
	}
	th, name := lookupTheme(theme)
	st := nstyle.FromTheme(th, scaling)
	st.Font = face

	scale := func(v int) int { return int(float64(v) * scaling) }
	st.NormalWindow.Rounding = uint16(scale(4))
	st.NormalWindow.Padding = image.Point{scale(8), scale(8)}
	st.GroupWindow.Rounding = uint16(scale(4))
	st.Button.Rounding = uint16(scale(3))
	st.Button.Padding = image.Point{scale(6), scale(4)}
	st.Combo.Rounding = uint16(scale(3))
	return st, name
}

func applyStyle(mw nucular.MasterWindow, theme string, scaling float64, face nfont.Face) string {
	st, name := buildStyle(theme, scaling, face)
	mw.SetStyle(st)
	return name
}
