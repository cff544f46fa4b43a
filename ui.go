// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/aarzilli/nucular"
	nfont "github.com/aarzilli/nucular/font"
	"github.com/aarzilli/nucular/label"

	"fontladder/fonts"
	"fontladder/gen"
)

const (
	sampleText = "The quick brown fox jumps over the lazy dog"
	glyphCols  = 12
)

type demostate struct {
	checked  bool
	ratio    float64
	count    int
	progress int
}

type appcontext struct {
	config       *config
	ladders      []*fonts.Ladder // one per base font, command-line order
	current      int             // ladder driving the interface
	masterWindow *nucular.MasterWindow
	views        *ViewStack
	fontStack    fonts.Stack
	ctrl         ctrlState
	theme        string
	demo         demostate
	sourceText   nucular.TextEditor
	status       string
	statusOK     bool
}

func (ctx *appcontext) ladder() *fonts.Ladder {
	return ctx.ladders[ctx.current]
}

func updatefn(ctx *appcontext, w *nucular.Window) {
	ctx.views.Peek()(ctx, w)
}

func (ctx *appcontext) pushFont(w *nucular.Window, face nfont.Face) {
	ctx.fontStack.Push(w.Master().Style(), face)
}

func (ctx *appcontext) popFont(w *nucular.Window) {
	ctx.fontStack.Pop(w.Master().Style())
}

// restyle rebuilds the style after a theme or ladder offset change.
func (ctx *appcontext) restyle() {
	face := ctx.ladder().Face(ctx.config.LadderOffset)
	ctx.theme = applyStyle(*ctx.masterWindow, ctx.config.Theme, ctx.config.Scaling, face)
	ctx.config.Theme = ctx.theme
	(*ctx.masterWindow).Changed()
}

// faceRow starts a row tall enough for face.
func faceRow(w *nucular.Window, face nfont.Face, cols int) {
	pad := w.Master().Style().Text.Padding.Y
	w.RowScaled(nucular.FontHeight(face) + 2*pad + 2).Dynamic(cols)
}

// setOffset moves the interface to another rung and remembers it.
func (ctx *appcontext) setOffset(offset int) {
	offset = fonts.ClampOffset(offset)
	if offset == ctx.config.LadderOffset {
		return
	}
	ctx.config.LadderOffset = offset
	ctx.restyle()
	writeConfigAsync(ctx.config)
}

// ladderInput handles Ctrl+wheel and the Ctrl +/-/0 keys. A wheel turn it
// uses does not also scroll the window.
func ladderInput(ctx *appcontext, w *nucular.Window) {
	in := w.Input()
	step, reset := ladderStep(in, ctx.ctrl.held)
	if in.Mouse.ScrollDelta != 0 && step != 0 {
		in.Mouse.ScrollDelta = 0
	}
	switch {
	case reset:
		ctx.setOffset(0)
	case step != 0:
		ctx.setOffset(ctx.config.LadderOffset + step)
	}
}

func mainView(ctx *appcontext, w *nucular.Window) {
	ladderInput(ctx, w)

	w.MenubarBegin()
	w.Row(20).Static(80, 100)
	if w := w.Menu(label.TA("About", "LC"), 120, nil); w != nil {
		w.Row(20).Dynamic(1)
		if w.MenuItem(label.TA("Version", "LC")) {
			ctx.views.Push(versionView)
		}
	}
	if w := w.Menu(label.TA("Generate", "LC"), 160, nil); w != nil {
		w.Row(20).Dynamic(1)
		if w.MenuItem(label.TA("Preview source", "LC")) {
			openSourceView(ctx)
		}
		if w.MenuItem(label.TA("Write source", "LC")) {
			writeSource(ctx)
		}
	}
	w.MenubarEnd()

	if ctx.status != "" {
		w.Row(20).Dynamic(1)
		if ctx.statusOK {
			w.LabelColored(ctx.status, "RC", color.RGBA{34, 187, 69, 255})
		} else {
			w.LabelColored(ctx.status, "RC", color.RGBA{255, 70, 70, 255})
		}
	}

	ladderTree(ctx, w)
	iconsTree(ctx, w)
	widgetsTree(ctx, w)
}

func ladderTree(ctx *appcontext, w *nucular.Window) {
	if !w.TreePush(nucular.TreeTab, "Font ladder", true) {
		return
	}
	l := ctx.ladder()
	if len(ctx.ladders) > 1 {
		names := make([]string, len(ctx.ladders))
		for i, ld := range ctx.ladders {
			names[i] = fmt.Sprintf("%s %dpx", ld.Name(), ld.BasePx())
		}
		w.Row(25).Ratio(0.3, 0.7)
		w.Label("Font", "LC")
		if sel := w.ComboSimple(names, ctx.current, 20); sel != ctx.current {
			ctx.current = sel
			ctx.restyle()
		}
		l = ctx.ladder()
	} else {
		w.Row(20).Dynamic(1)
		w.Label(l.Name(), "LC")
	}

	w.Row(25).Ratio(0.3, 0.55, 0.15)
	w.Label("Interface size", "LC")
	if w.Input().Mouse.HoveringRect(w.LastWidgetBounds) {
		w.Tooltip("Picks the ladder rung used for every widget. Ctrl+wheel or Ctrl +/- also work.")
	}
	offset := ctx.config.LadderOffset
	if w.SliderInt(fonts.MinOffset, &offset, fonts.MaxOffset, 1) {
		ctx.setOffset(offset)
	}
	w.Label(fmt.Sprintf("%dpx", l.Rung(ctx.config.LadderOffset).Px), "RC")

	for off := fonts.MinOffset; off <= fonts.MaxOffset; off++ {
		r := l.Rung(off)
		faceRow(w, r.Text, 1)
		ctx.pushFont(w, r.Text)
		if off == ctx.config.LadderOffset {
			w.LabelColored(fmt.Sprintf("%2dpx  %s", r.Px, sampleText), "LC", color.RGBA{255, 200, 60, 255})
		} else {
			w.Label(fmt.Sprintf("%2dpx  %s", r.Px, sampleText), "LC")
		}
		ctx.popFont(w)
	}
	w.TreePop()
}

func iconsTree(ctx *appcontext, w *nucular.Window) {
	l := ctx.ladder()
	icons := l.Font().Icons
	if !w.TreePush(nucular.TreeTab, "Icons", len(icons) > 0) {
		return
	}
	if len(icons) == 0 {
		w.Row(20).Dynamic(1)
		w.Label("No icon fonts merged. Use --icon PATH RANGES... after a --font", "LC")
		w.TreePop()
		return
	}

	rung := l.Rung(ctx.config.LadderOffset)
	for i := range icons {
		for _, ri := range l.Ranges(i) {
			w.Row(20).Dynamic(1)
			w.Label(fmt.Sprintf("%s  %s  (%d glyphs)", l.IconName(i), ri.Range, ri.Count), "LC")

			faceRow(w, rung.Icons[i], glyphCols)
			for _, g := range ri.Glyphs {
				if rung.Merged.Covered(g) == i {
					ctx.pushFont(w, rung.Icons[i])
				} else {
					ctx.pushFont(w, rung.Text)
				}
				w.Label(string(g), "CC")
				ctx.popFont(w)
				if w.Input().Mouse.HoveringRect(w.LastWidgetBounds) {
					w.Tooltip(fmt.Sprintf("U+%04X", g))
				}
			}
		}
	}
	w.TreePop()
}

func widgetsTree(ctx *appcontext, w *nucular.Window) {
	if !w.TreePush(nucular.TreeTab, "Widgets", false) {
		return
	}
	d := &ctx.demo

	w.Row(25).Dynamic(2)
	w.CheckboxText("Checkbox", &d.checked)
	if w.ButtonText("Reset") {
		*d = demostate{}
	}

	w.Row(25).Ratio(0.3, 0.55, 0.15)
	w.Label("Float slider", "LC")
	w.SliderFloat(0, &d.ratio, 1, 0.01)
	w.Label(fmt.Sprintf("%.2f", d.ratio), "RC")

	w.Row(25).Dynamic(1)
	w.PropertyInt("Counter:", 0, &d.count, 100, 1, 1)

	w.Row(25).Ratio(0.3, 0.7)
	w.Label("Progress", "LC")
	w.Progress(&d.progress, 100, true)

	names := themeNames()
	sel := 0
	for i, n := range names {
		if n == ctx.theme {
			sel = i
		}
	}
	w.Row(25).Ratio(0.3, 0.7)
	w.Label("Theme", "LC")
	if nsel := w.ComboSimple(names, sel, 20); nsel != sel {
		ctx.config.Theme = names[nsel]
		ctx.restyle()
		writeConfigAsync(ctx.config)
	}
	w.TreePop()
}

func versionView(ctx *appcontext, w *nucular.Window) {
	w.Row(50).Dynamic(1)
	w.Label("Version", "CB")
	w.Row(50).Dynamic(1)
	w.Label(version, "CB")
	w.Row(50).Dynamic(1)
	w.Spacing(1)
	w.Row(20).Dynamic(2)
	w.Spacing(1)
	if w.ButtonText("OK") {
		ctx.views.Pop()
	}
}

func (ctx *appcontext) genConfig() gen.Config {
	list := make([]fonts.Font, len(ctx.ladders))
	for i, l := range ctx.ladders {
		list[i] = l.Font()
	}
	return buildGenConfig(ctx.config, list)
}

func openSourceView(ctx *appcontext) {
	src, err := gen.Render(ctx.genConfig())
	if err != nil {
		log.Printf("Couldn't render source: %v\n", err)
		ctx.status, ctx.statusOK = err.Error(), false
		return
	}
	ed := &ctx.sourceText
	ed.Flags = nucular.EditMultiline | nucular.EditReadOnly | nucular.EditSelectable | nucular.EditClipboard
	ed.Buffer = []rune(string(src))
	ed.Cursor = 0
	ctx.views.Push(sourceView)
}

func writeSource(ctx *appcontext) {
	file, err := gen.Generate(ctx.genConfig())
	if err != nil {
		log.Printf("Couldn't write source: %v\n", err)
		ctx.status, ctx.statusOK = err.Error(), false
		return
	}
	ctx.status, ctx.statusOK = "Wrote "+file, true
}

func sourceView(ctx *appcontext, w *nucular.Window) {
	w.Row(20).Dynamic(1)
	w.Label(fmt.Sprintf("package %s in %s", ctx.config.Namespace, ctx.config.SourcePath), "LC")

	w.LayoutReserveRow(25, 1)
	w.Row(0).Dynamic(1)
	ctx.sourceText.Edit(w)

	w.Row(25).Dynamic(3)
	w.Spacing(1)
	if w.ButtonText("Write") {
		writeSource(ctx)
		ctx.views.Pop()
	}
	if w.ButtonText("Back") {
		ctx.views.Pop()
	}
}
