package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Cloth-Foundation/Cloth-sub001/colors"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/compiler"
	"github.com/Cloth-Foundation/Cloth-sub001/internal/project"
)

func main() {
	noColor := flag.Bool("no-color", false, "Disable colored output")
	debug := flag.Bool("d", false, "Enable debug output")
	showVersion := flag.Bool("v", false, "Show version")
	flag.BoolVar(debug, "debug", false, "Enable debug output")
	flag.BoolVar(showVersion, "version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("cloth version %s\n", project.ToolVersion)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cloth [options] <file>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *noColor {
		colors.Disable()
	}

	result := compiler.Compile(&compiler.Options{
		EntryFile: args[0],
		Debug:     *debug,
	})
	result.Context.Diagnostics.EmitAll()

	if !result.Success {
		os.Exit(1)
	}
}
