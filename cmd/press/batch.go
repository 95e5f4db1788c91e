package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/distr1/press"
)

const batchHelp = `press batch [-flags] -mode={compress,decompress} <path>...

Run independent compress or decompress operations over multiple paths
concurrently. Each operation owns its own dictionary and buffers and
holds no process-wide state, so they can run in parallel goroutines
with no synchronization between them.

Example:
  % press batch -mode=compress ./a ./b ./c
`

func cmdBatch(ctx context.Context, args []string) error {
	fset := flag.NewFlagSet("batch", flag.ExitOnError)
	mode := fset.String("mode", "compress", "compress or decompress")
	output := fset.String("output", "", "for -mode=decompress, destination directory every archive is unpacked into (default: <archive>.out for each archive)")
	fset.Usage = usage(fset, batchHelp)
	fset.Parse(args)

	paths := fset.Args()
	if len(paths) == 0 {
		return fmt.Errorf("syntax: press batch [-flags] -mode={compress,decompress} <path>...")
	}
	if *mode != "compress" && *mode != "decompress" {
		return fmt.Errorf("unknown -mode %q, want compress or decompress", *mode)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			switch *mode {
			case "compress":
				return batchCompress(path)
			default:
				return batchDecompress(path, *output)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Printf("batch %s finished: %d path(s)", *mode, len(paths))
	return nil
}

func batchCompress(path string) error {
	archiveBytes, err := press.CompressFromPath(path)
	if err != nil {
		return err
	}
	out := outputPath(path)
	if err := press.WriteArchiveFile(out, archiveBytes); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes)", out, len(archiveBytes))
	return nil
}

func batchDecompress(archivePath, outputDir string) error {
	dest := outputDir
	if dest == "" {
		dest = archivePath + ".out"
	}
	if err := press.DecompressToPath(archivePath, dest); err != nil {
		return err
	}
	log.Printf("unpacked %s into %s", archivePath, dest)
	return nil
}
