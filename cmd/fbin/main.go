package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bodgit/fbin"
	"github.com/bodgit/fbin/image"
	"github.com/bodgit/fbin/manifest"
	"github.com/urfave/cli/v2"
)

const barWidth = 50

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openCache(c *cli.Context) (*fbin.Cache, error) {
	if c.String("db") == "" {
		return nil, nil
	}
	return fbin.NewCache(c.String("db"))
}

// progressBar draws the same in-place bar after every image
func progressBar(w io.Writer) fbin.Observer {
	return fbin.ObserverFunc(func(e fbin.Event) {
		done := e.Index + 1
		pos := barWidth * done / e.Total
		bar := strings.Repeat("=", pos)
		if pos < barWidth {
			bar += ">" + strings.Repeat(" ", barWidth-pos-1)
		}
		fmt.Fprintf(w, "\r[%s] %d%% (%d/%d)", bar, 100*done/e.Total, done, e.Total)
		if done == e.Total {
			fmt.Fprintln(w)
		}
	})
}

func printSummary(w io.Writer, s *fbin.Summary, output string, o image.Options) {
	fmt.Fprintf(w, "Found %d image files\n", s.Found)
	for _, f := range s.Failures {
		fmt.Fprintf(w, "Error processing %s: %s\n", filepath.Base(f.Name), errors.Unwrap(f.Err))
	}
	fmt.Fprintf(w, "Converted %d, failed %d\n", s.Succeeded, s.Failed())
	fmt.Fprintf(w, "Resolution: %s, dithering: %s\n", o.Size, o.Dither)
	fmt.Fprintf(w, "Wrote %d bytes to %s (SHA1 %s)\n", s.Bytes, output, s.SHA1)
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	o := image.Options{
		Size:   *c.Generic("size").(*image.Size),
		Dither: *c.Generic("dither").(*image.Dither),
	}

	files, err := manifest.Scan(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	cache, err := openCache(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if cache != nil {
		defer cache.Close()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	cfg := fbin.Config{Options: o}
	if !c.Bool("verbose") && !c.Bool("quiet") {
		cfg.Observer = progressBar(os.Stderr)
	}

	output := c.Args().Get(1)
	s, err := fbin.New(cache, newLogger(c)).Run(ctx, files, output, cfg)
	switch {
	case errors.Is(err, fbin.ErrNoInput):
		return cli.Exit(fmt.Sprintf("No image files found in %s", c.Args().Get(0)), 1)
	case err != nil && s == nil:
		return cli.Exit(err, 1)
	}

	printSummary(c.App.Writer, s, output, o)

	switch {
	case s.Cancelled:
		return cli.Exit("Conversion cancelled, output is incomplete", 1)
	case err != nil:
		return cli.Exit(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	files, err := manifest.Scan(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, file := range files {
		fmt.Fprintln(c.App.Writer, filepath.Base(file))
	}

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	size := *c.Generic("size").(*image.Size)

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return cli.Exit(err, 1)
	}

	n, err := image.CountRecords(fi.Size(), size)
	if err != nil {
		return cli.Exit(fmt.Errorf("%s is not a %s image file: %w", fi.Name(), size, err), 1)
	}

	for i := 0; i < n; i++ {
		r, err := image.ReadRecord(f, size)
		if err != nil {
			return cli.Exit(fmt.Errorf("record %d: %w", i+1, err), 1)
		}

		colors := make(map[byte]struct{})
		for _, p := range r.Pixels {
			colors[p] = struct{}{}
		}
		fmt.Fprintf(c.App.Writer, "Record %d: %d colors used\n", i+1, len(colors))
	}

	fmt.Fprintf(c.App.Writer, "%d images, %s, %d bytes\n", n, size, fi.Size())

	return nil
}

func purge(c *cli.Context) error {
	cache, err := openCache(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if cache == nil {
		return cli.Exit("No cache database configured", 1)
	}
	defer cache.Close()

	if err := cache.Purge(); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "fbin"
	app.Usage = "Convert a folder of images into a calculator image file"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"FBIN_DB"},
			Usage:   "path to record cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	size := image.SizeLarge
	dither := image.DitherFloydSteinberg

	sizeFlag := &cli.GenericFlag{
		Name:  "size",
		Value: &size,
		Usage: "output resolution, " + image.SizeLarge.String() + " or " + image.SizeSmall.String(),
	}

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert images into a single file",
			ArgsUsage: "DIRECTORY OUTPUT",
			Flags: []cli.Flag{
				sizeFlag,
				&cli.GenericFlag{
					Name:  "dither",
					Value: &dither,
					Usage: "dithering method, None, Floyd-Steinberg or Ordered",
				},
				&cli.BoolFlag{
					Name:    "quiet",
					Aliases: []string{"q"},
					Usage:   "don't show a progress bar",
				},
			},
			Action: convert,
		},
		{
			Name:      "list",
			Usage:     "List the images that would be converted, in order",
			ArgsUsage: "DIRECTORY",
			Action:    list,
		},
		{
			Name:      "info",
			Usage:     "Check a converted file and describe its records",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{sizeFlag},
			Action:    info,
		},
		{
			Name:   "purge",
			Usage:  "Remove every record from the cache database",
			Action: purge,
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
