package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/targa"
	"github.com/bodgit/targa/tga"
	"github.com/urfave/cli/v2"
)

const defaultDB = "textures.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// loadError describes a failed load by its error kind, followed by the
// underlying cause if there is one.
func loadError(file string, loader *tga.Loader, err error) string {
	msg := fmt.Sprintf("%s: %s", file, tga.ErrorMessage(loader.LastError()))
	if cause := errors.Unwrap(err); cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

func parseFormat(s string) (tga.Format, error) {
	switch s {
	case tga.RGB24.String():
		return tga.RGB24, nil
	case tga.RGBA32.String():
		return tga.RGBA32, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openLibrary(c *cli.Context) (*targa.Library, *targa.TextureDB, error) {
	db, err := targa.NewTextureDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return targa.New(db, newLogger(c)), db, nil
}

func writeFile(name string, fn func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: tga.RGBA32.String(),
	Usage: "decode to `FORMAT`, rgb24 or rgba32",
}

var colorsFlag = &cli.IntFlag{
	Name:  "colors",
	Usage: "reduce the PNG to `N` colors (2-256), 0 keeps full color",
}

func main() {
	app := cli.NewApp()

	app.Name = "tgaload"
	app.Usage = "TGA texture decoding and management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TGALOAD_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the header of a TGA file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				h, err := tga.ReadHeader(f)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("Image type:      %d\n", h.ImageType)
				fmt.Printf("Dimensions:      %dx%d\n", h.Width, h.Height)
				fmt.Printf("Pixel depth:     %d\n", h.PixelDepth)
				fmt.Printf("Alpha bits:      %d\n", h.AlphaBits())
				fmt.Printf("Origin:          %s\n", h.Origin())
				fmt.Printf("Compressed:      %t\n", h.Compressed())
				if h.HasColorMap() {
					fmt.Printf("Color map:       %d entries of %d bits from %d\n", h.ColorMapLength, h.ColorMapEntrySize, h.ColorMapFirst)
				}

				return nil
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a TGA file to PNG",
			ArgsUsage: "FILE OUTPUT",
			Flags:     []cli.Flag{formatFlag, colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := parseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				var loader tga.Loader
				m, err := loader.Load(c.Args().First(), format)
				if err != nil {
					return cli.NewExitError(loadError(c.Args().First(), &loader, err), 1)
				}

				if err := writeFile(c.Args().Get(1), func(w io.Writer) error {
					return targa.Export(w, m, c.Int("colors"))
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Scan a directory and import every TGA file",
			ArgsUsage: "DIRECTORY",
			Flags:     []cli.Flag{formatFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := parseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				l, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := l.Scan(c.Args().First(), format); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List stored textures",
			Action: func(c *cli.Context) error {
				db, err := targa.NewTextureDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				textures, err := db.Textures()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, t := range textures {
					fmt.Printf("%s\t%dx%d\t%s\t%s\n", t.Name, t.Width, t.Height, t.Format, t.SHA1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Write a stored texture to a PNG file",
			ArgsUsage: "NAME OUTPUT",
			Flags:     []cli.Flag{colorsFlag},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, db, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := writeFile(c.Args().Get(1), func(w io.Writer) error {
					return l.Export(c.Args().First(), w, c.Int("colors"))
				}); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
