// This file is part of the program "fontladder".
// Please see the LICENSE file for copyright information.

// Package gen writes a Go package that embeds the chosen base fonts, their
// pixel sizes and the icon fonts merged into each, so another program can
// rebuild the same ladders without reading files at runtime.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"fontladder/fonts"
)

// FileName is the name of the generated source file.
const FileName = "fonts_gen.go"

const builtinFile = "goregular.ttf"

type Config struct {
	Namespace string
	Path      string       // output directory, "" for the working directory
	Fonts     []fonts.Font // base fonts in command-line order, empty for the builtin
}

type embedFile struct {
	Ident string
	File  string
	src   fonts.Source
}

type iconData struct {
	Name   string
	Ident  string
	Ranges []fonts.Range
}

type fontData struct {
	Name  string
	Ident string
	Px    int
	Icons []iconData
}

type tmplData struct {
	Package string
	Files   []embedFile
	Fonts   []fontData
}

var tmpl = template.Must(template.New(FileName).Parse(`// Code generated by fontladder. DO NOT EDIT.

package {{.Package}}

import _ "embed"

// Font is a base font, the pixel size it is rendered at and the icon fonts
// merged into it.
type Font struct {
	Name  string
	TTF   []byte
	Size  int
	Icons []Icon
}

// Icon is an icon font and the inclusive code point ranges merged from it.
type Icon struct {
	Name   string
	TTF    []byte
	Ranges [][2]rune
}
{{range .Files}}
//go:embed {{printf "%q" .File}}
var {{.Ident}} []byte
{{end}}
// Fonts lists the base fonts in the order they were given.
var Fonts = []Font{
{{- range .Fonts}}
	{
		Name: {{printf "%q" .Name}},
		TTF: {{.Ident}},
		Size: {{.Px}},
		{{- if .Icons}}
		Icons: []Icon{
		{{- range .Icons}}
			{
				Name: {{printf "%q" .Name}},
				TTF: {{.Ident}},
				Ranges: [][2]rune{
				{{- range .Ranges}}
					{ {{printf "0x%04X" .Lo}}, {{printf "0x%04X" .Hi}} },
				{{- end}}
				},
			},
		{{- end}}
		},
		{{- end}}
	},
{{- end}}
}
`))

// ValidNamespace reports whether ns can be used as a package name.
func ValidNamespace(ns string) error {
	if ns == "" {
		return errors.New("no source namespace given")
	}
	if !token.IsIdentifier(ns) || ns == "_" {
		return fmt.Errorf("source namespace '%s' is not a valid Go package name", ns)
	}
	if token.Lookup(ns).IsKeyword() {
		return fmt.Errorf("source namespace '%s' is a Go keyword", ns)
	}
	return nil
}

func ident(path string, i int) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	up := true
	for _, r := range stem {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			up = true
			continue
		}
		if up {
			r = unicode.ToUpper(r)
			up = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" || !unicode.IsLetter([]rune(id)[0]) {
		id = fmt.Sprintf("Font%d", i)
	}
	return id
}

// planner gives every distinct font file one embed variable.
type planner struct {
	data   tmplData
	idents map[string]bool
	files  map[string]fonts.Key
	byKey  map[fonts.Key]string
}

func (p *planner) embed(src fonts.Source) (string, error) {
	key := fonts.KeyOf(src.TTF)
	if id, ok := p.byKey[key]; ok {
		return id, nil
	}
	file := builtinFile
	if src.Path != "" {
		file = filepath.Base(src.Path)
	}
	if _, ok := p.files[file]; ok {
		return "", fmt.Errorf("two different fonts would be written as %s", file)
	}

	n := len(p.data.Files)
	id := ident(file, n)
	for p.idents[id] {
		id = fmt.Sprintf("%s%d", id, n)
	}
	p.idents[id] = true
	p.files[file] = key
	p.byKey[key] = id
	p.data.Files = append(p.data.Files, embedFile{Ident: id, File: file, src: src})
	return id, nil
}

func plan(cfg Config) (tmplData, error) {
	if err := ValidNamespace(cfg.Namespace); err != nil {
		return tmplData{}, err
	}
	list := cfg.Fonts
	if len(list) == 0 {
		list = []fonts.Font{{Source: fonts.Builtin()}}
	}

	p := planner{
		data:   tmplData{Package: cfg.Namespace},
		idents: map[string]bool{"Font": true, "Icon": true, "Fonts": true},
		files:  map[string]fonts.Key{},
		byKey:  map[fonts.Key]string{},
	}
	for _, f := range list {
		if f.TTF == nil {
			f.Source = fonts.Builtin()
		}
		if f.Px <= 0 {
			f.Px = fonts.DefaultSize
		}
		id, err := p.embed(f.Source)
		if err != nil {
			return tmplData{}, err
		}
		fd := fontData{Name: f.Name(), Ident: id, Px: f.Px}
		for _, ic := range f.Icons {
			iid, err := p.embed(ic.Source)
			if err != nil {
				return tmplData{}, err
			}
			fd.Icons = append(fd.Icons, iconData{Name: ic.Name(), Ident: iid, Ranges: ic.Ranges})
		}
		p.data.Fonts = append(p.data.Fonts, fd)
	}
	return p.data, nil
}

// Render returns the generated source for cfg without touching the disk.
func Render(cfg Config) ([]byte, error) {
	data, err := plan(cfg)
	if err != nil {
		return nil, err
	}
	return render(data)
}

func render(data tmplData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// Generate writes the source file and copies every font it embeds into
// cfg.Path. It returns the path of the source file.
func Generate(cfg Config) (string, error) {
	data, err := plan(cfg)
	if err != nil {
		return "", err
	}
	src, err := render(data)
	if err != nil {
		return "", err
	}

	dir := cfg.Path
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	for _, f := range data.Files {
		if _, err := copyFont(filepath.Join(dir, f.File), f.src.TTF); err != nil {
			return "", err
		}
	}

	out := filepath.Join(dir, FileName)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	log.Printf("Generated %s (package %s)\n", out, data.Package)
	return out, nil
}

// copyFont writes ttf to dst unless dst already holds the same contents.
// It reports whether it wrote.
func copyFont(dst string, ttf []byte) (bool, error) {
	if old, err := os.ReadFile(dst); err == nil && fonts.KeyOf(old) == fonts.KeyOf(ttf) {
		log.Printf("%s is up to date\n", dst)
		return false, nil
	}
	if err := os.WriteFile(dst, ttf, 0644); err != nil {
		return false, fmt.Errorf("copying font to %s: %w", dst, err)
	}
	return true, nil
}
