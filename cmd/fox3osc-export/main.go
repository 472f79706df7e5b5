package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bruv1700/fox3osc/cmd"
	"github.com/bruv1700/fox3osc/export"
	"github.com/bruv1700/fox3osc/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, files are placed in the working directory.")
	sheet := flag.Bool("sheet", false, "Write the parameter sheet params.md.")
	templateDir := flag.String("t", "", "Directory with params.md and patch.h templates to use instead of the built-in ones.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help || (flag.NArg() == 0 && !*sheet) {
		flag.Usage()
		os.Exit(0)
	}
	var exporter *export.Exporter
	var err error
	if *templateDir != "" {
		exporter, err = export.NewFromTemplates(*templateDir)
	} else {
		exporter, err = export.New()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create exporter: %v\n", err)
		os.Exit(1)
	}
	output := func(name, contents string) error {
		if *stdout {
			fmt.Print(contents)
			return nil
		}
		dir := *directory
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
			}
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
		f := filepath.Join(dir, name)
		if err := os.WriteFile(f, []byte(contents), 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	retval := 0
	if *sheet {
		s, err := exporter.Sheet()
		if err == nil {
			err = output("params.md", s)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not export parameter sheet: %v\n", err)
			retval = 1
		}
	}
	for _, patch := range flag.Args() {
		params, err := cmd.LoadPatch(patch)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load patch %v: %v\n", patch, err)
			retval = 1
			continue
		}
		name := cmd.PatchName(patch)
		h, err := exporter.Patch(name, &params)
		if err == nil {
			err = output(name+".h", h)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not export patch %v: %v\n", patch, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "fox3osc command line utility for exporting the parameter sheet and patches as C headers.\nUsage: %s [flags] [preset or .yml ...]\n", os.Args[0])
	flag.PrintDefaults()
}
