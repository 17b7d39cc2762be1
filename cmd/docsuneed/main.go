package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aznadocs/docsuneed/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	showIDs := flag.Bool("ids", false, "print entity ids in ls/show output")
	theme := flag.String("theme", "", "output theme: classic, neon, mono")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		ShowIDs: *showIDs,
		Theme:   *theme,
		NoColor: *noColor,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
