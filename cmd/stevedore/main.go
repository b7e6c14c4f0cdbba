// Command stevedore checks a sandbox profile and prints the instance plan it
// resolves to.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/corposant/stevedore/engine"
	"github.com/corposant/stevedore/profile"
)

const (
	red   = "\033[31m"
	green = "\033[32m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func colour(c, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return c + s + reset
}

func fail(msg string, err error) {
	fmt.Println(colour(red, msg+":"), err)
	os.Exit(1)
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: stevedore <profile.hujson>")
		os.Exit(2)
	}

	p, err := profile.Load(os.Args[1])
	if err != nil {
		fail("Error loading profile", err)
	}
	if err := p.Validate(); err != nil {
		fail("Invalid profile", err)
	}

	s := engine.New()
	if err := p.Apply(s); err != nil {
		fail("Error applying profile", err)
	}

	fmt.Println(colour(green, "ok"), p.Name)
	fmt.Println(colour(dim, "instance"), s.ID())

	if len(p.Libraries) > 0 {
		fmt.Println(colour(dim, "libraries"), strings.Join(p.Libraries, ", "))
	}
	if p.MaxStack > 0 {
		fmt.Println(colour(dim, "ceiling"), p.MaxStack)
	} else {
		fmt.Println(colour(dim, "ceiling"), engine.DefaultCeiling, "(default)")
	}
	for _, d := range p.Types {
		fmt.Println(colour(dim, "type"), d.Name)
	}
}
