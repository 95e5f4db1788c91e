package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/distr1/press"
)

const compressHelp = `press compress [-flags] <path>

Pack the file or directory tree at <path> and compress it with the LZW
codec, writing the result to <path> with its extension replaced by
.pressrs (or -output, if given).

Example:
  % press compress ./testdata/project
`

func cmdCompress(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("compress", flag.ExitOnError)
	output := fset.String("output", "", "output path (default: <path> with the .pressrs extension)")
	fset.Usage = usage(fset, compressHelp)
	fset.Parse(args)

	if fset.NArg() != 1 {
		return fmt.Errorf("syntax: press compress [-flags] <path>")
	}
	path := fset.Arg(0)

	out := *output
	if out == "" {
		out = outputPath(path)
	}

	archiveBytes, err := press.CompressFromPath(path)
	if err != nil {
		return err
	}
	if err := press.WriteArchiveFile(out, archiveBytes); err != nil {
		return err
	}

	log.Printf("wrote %s (%d bytes)", out, len(archiveBytes))
	return nil
}

// outputPath mirrors the original project's main.rs: the compressed file's
// name is <path> with its extension replaced by press.Extension.
func outputPath(path string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))
	return trimmed + "." + press.Extension
}
