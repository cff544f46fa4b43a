// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/aarzilli/nucular"

	"fontladder/fonts"
)

//go:generate go run scripts/embedversion.go

var appName = "fontladder"

var version = "unknown" // replaced by version.go when generated

func main() {
	opt := parseCLIOpts()

	if opt.doLog {
		log.SetOutput(os.Stdout)
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("Application starting. Version: %s\n", version)

	initializeConfigIfNot()

	ctx := appcontext{}
	ctx.config = readConfig()
	applyCLI(opt, ctx.config)

	list, err := loadFonts(opt, ctx.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't load font: %v\n", err)
		os.Exit(1)
	}

	doCLI(opt, ctx.config, list)

	for _, f := range list {
		ladder, err := fonts.LoadLadder(f, ctx.config.Scaling)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't build font ladder: %v\n", err)
			os.Exit(1)
		}
		defer ladder.Close()
		ctx.ladders = append(ctx.ladders, ladder)
	}

	if err := writeConfig(ctx.config); err != nil {
		log.Printf("%v\n", err)
	}

	ctx.views = NewViewStack()
	ctx.views.Push(mainView)

	wnd := nucular.NewMasterWindowSize(0, appName, image.Point{720, 560}, func(w *nucular.Window) {
		updatefn(&ctx, w)
	})
	if wnd == nil {
		fmt.Fprintf(os.Stderr, "Couldn't create window\n")
		os.Exit(1)
	}
	ctx.masterWindow = &wnd
	ctx.restyle()

	go fixWindowClass()
	wnd.Main()
	asyncWriter.wait()
}
