//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func main() {
	cmd := exec.Command("git", "describe", "--tags")
	ret, err := cmd.Output()

	if err != nil {
		panic("Couldn't read git tags to embed version number")
	}
	version := strings.TrimSpace(string(ret))

	out, err := os.Create("version.go")
	if err != nil {
		panic(err)
	}
	defer out.Close()

	fmt.Fprintf(out, "// Code generated by scripts/embedversion.go. DO NOT EDIT.\n\npackage main\n\nfunc init() {\n\tversion = %q\n}\n", version)
}
