// Command slidefig is a thin command-line client for a running relay server.
//
// Usage:
//
//	slidefig [-server URL] COMMAND [flags]
//
// Commands: info, set-title, set-subtitle, title-to-front, goto, add-slide,
// shapes, images, dims, notes, add, replace.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tsawler/slidefig/relay/client"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("SLIDEFIG_SERVER", "http://127.0.0.1:8877"), "relay base URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*server)
	if err := run(c, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "slidefig: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: slidefig [-server URL] COMMAND [flags]

commands:
  info                       report relay version and backend health
  set-title TEXT             set the slide title
  set-subtitle TEXT          set the slide subtitle
  title-to-front             bring title placeholders to the front
  goto N                     change the active slide
  add-slide                  insert a new slide after the active one
  shapes                     print shape geometry as JSON
  images                     print picture geometry as JSON
  dims                       print slide dimensions
  notes                      print speaker notes
  add FILE                   upload and place a figure
  replace FILE               upload a figure and replace a picture

Most commands accept -slide N (0 = active slide).
`)
}

func run(c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "info":
		info, err := c.ServerInfo()
		if err != nil {
			return err
		}
		fmt.Printf("slidefig relay ver. %s\n", info.Version)
		if !info.Healthy() {
			fmt.Printf("backend problem: %s\n", info.Problem)
		}
		return nil

	case "set-title", "set-subtitle":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("%s needs exactly one TEXT argument", cmd)
		}
		if cmd == "set-title" {
			return c.SetTitle(fs.Arg(0), *slide)
		}
		return c.SetSubtitle(fs.Arg(0), *slide)

	case "title-to-front":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		fs.Parse(args)
		return c.TitleToFront(*slide)

	case "goto":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("goto needs a slide number")
		}
		var n int
		if _, err := fmt.Sscanf(fs.Arg(0), "%d", &n); err != nil {
			return fmt.Errorf("goto: %q is not a slide number", fs.Arg(0))
		}
		return c.GotoSlide(n)

	case "add-slide":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "insert after this slide (0 = active)")
		layoutAs := fs.Int("layout-as", 0, "copy the layout of this slide")
		makeActive := fs.Bool("activate", true, "make the new slide active")
		fs.Parse(args)
		n, err := c.AddSlide(*slide, *layoutAs, *makeActive)
		if err != nil {
			return err
		}
		fmt.Printf("slide %d\n", n)
		return nil

	case "shapes":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		fs.Parse(args)
		shapes, err := c.ShapePositions(*slide)
		if err != nil {
			return err
		}
		return printJSON(shapes)

	case "images":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		fs.Parse(args)
		images, err := c.ImagePositions(*slide)
		if err != nil {
			return err
		}
		out := make([][4]float64, len(images))
		for i, r := range images {
			out[i] = [4]float64{r.X, r.Y, r.Width, r.Height}
		}
		return printJSON(out)

	case "dims":
		w, h, err := c.SlideDimensions()
		if err != nil {
			return err
		}
		fmt.Printf("%g x %g\n", w, h)
		return nil

	case "notes":
		notes, err := c.Notes()
		if err != nil {
			return err
		}
		for i, n := range notes {
			fmt.Printf("slide %d: %s\n", i+1, n)
		}
		return nil

	case "add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		preset := fs.String("preset", "", "position preset, e.g. Center or TopLeftXL")
		stretch := fs.Bool("stretch", false, "ignore the raster's aspect ratio")
		replace := fs.Bool("replace", false, "take over an overlapping picture's place")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("add needs exactly one FILE argument")
		}
		a := client.AddFigureArgs{
			SlideNo: *slide,
			Replace: *replace,
		}
		if *preset != "" {
			a.BBox = *preset
		}
		if *stretch {
			a.KeepAspect = client.Bool(false)
		}
		return c.AddFigure(fs.Arg(0), a)

	case "replace":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		slide := fs.Int("slide", 0, "slide number (0 = active)")
		pic := fs.Int("pic", 0, "picture number in enumeration order")
		left := fs.Int("left", 0, "picture number by left coordinate")
		top := fs.Int("top", 0, "picture number by top coordinate")
		z := fs.Int("z", 0, "picture number by z-order from the front")
		fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("replace needs exactly one FILE argument")
		}
		return c.ReplaceFigure(fs.Arg(0), client.ReplaceFigureArgs{
			SlideNo:  *slide,
			PicNo:    *pic,
			LeftNo:   *left,
			TopNo:    *top,
			ZOrderNo: *z,
		})

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
