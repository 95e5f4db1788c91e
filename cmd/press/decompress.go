package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/distr1/press"
)

const decompressHelp = `press decompress [-flags] <archive>

Decompress a .pressrs archive and materialise its tree under -output
(default: the current directory).

Example:
  % press decompress ./testdata/project.pressrs -output ./out
`

func cmdDecompress(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("decompress", flag.ExitOnError)
	output := fset.String("output", ".", "destination directory (created if missing)")
	fset.Usage = usage(fset, decompressHelp)
	fset.Parse(args)

	if fset.NArg() != 1 {
		return fmt.Errorf("syntax: press decompress [-flags] <archive>")
	}
	archivePath := fset.Arg(0)

	if err := press.DecompressToPath(archivePath, *output); err != nil {
		return err
	}
	log.Printf("unpacked %s into %s", archivePath, *output)
	return nil
}
