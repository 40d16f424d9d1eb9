package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/papercrane/docscan/internal/imaging"
	"github.com/papercrane/docscan/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logging goes to stderr; stdout is reserved for command output.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cmd := &cli.Command{
		Name:    "docscan",
		Usage:   "Detect, straighten and export scanned documents",
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Fix the random seed used by detection heuristics",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "detect",
				Usage:     "Print the detected document corners as JSON",
				ArgsUsage: "IMAGE",
				Action:    runDetect,
			},
			{
				Name:      "rectify",
				Usage:     "Straighten the detected document and save it as an image",
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output image path (.png or .jpg)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-edge",
						Usage: "Downscale output so its longest edge is at most this many pixels",
					},
					&cli.IntFlag{
						Name:  "quality",
						Usage: "JPEG quality (1-100)",
						Value: 90,
					},
				},
				Action: runRectify,
			},
			{
				Name:      "info",
				Usage:     "Print image metadata as JSON",
				ArgsUsage: "IMAGE",
				Action:    runInfo,
			},
			{
				Name:      "preview",
				Usage:     "Render the detected corners as an editing overlay",
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output image path (.png or .jpg)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Write the overlay as base64-PNG JSON to stdout instead of a file",
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "Viewport width in pixels",
						Value: 1080,
					},
					&cli.IntFlag{
						Name:  "height",
						Usage: "Viewport height in pixels",
						Value: 1920,
					},
				},
				Action: runPreview,
			},
			{
				Name:      "scan",
				Usage:     "Full pipeline: detect, rectify, OCR and export",
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output path (.pdf, .png or .jpg)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Tesseract language code for OCR; empty disables OCR",
						Value: "eng",
					},
					&cli.StringFlag{
						Name:  "page-size",
						Usage: "PDF page size: a4, letter or legal",
						Value: "a4",
					},
				},
				Action: runScan,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newPipeline(cmd *cli.Command) *scan.Pipeline {
	return scan.New(scan.Options{Seed: int64(cmd.Int("seed"))})
}

func imageArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one IMAGE argument")
	}
	return cmd.Args().First(), nil
}

func runDetect(_ context.Context, cmd *cli.Command) error {
	path, err := imageArg(cmd)
	if err != nil {
		return err
	}

	res, err := newPipeline(cmd).Detect(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runRectify(_ context.Context, cmd *cli.Command) error {
	path, err := imageArg(cmd)
	if err != nil {
		return err
	}

	p := newPipeline(cmd)
	return p.Scan(path, cmd.String("output"), scan.ScanOptions{
		MaxEdge: int(cmd.Int("max-edge")),
		Quality: int(cmd.Int("quality")),
	})
}

func runInfo(_ context.Context, cmd *cli.Command) error {
	path, err := imageArg(cmd)
	if err != nil {
		return err
	}

	info, err := imaging.LoadImageInfo(imaging.NewImageCache(), path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func runPreview(_ context.Context, cmd *cli.Command) error {
	path, err := imageArg(cmd)
	if err != nil {
		return err
	}

	p := newPipeline(cmd)
	w, h := int(cmd.Int("width")), int(cmd.Int("height"))

	if cmd.Bool("json") {
		res, err := p.PreviewOverlay(path, w, h)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	out := cmd.String("output")
	if out == "" {
		return fmt.Errorf("either --output or --json is required")
	}
	view, err := p.Preview(path, w, h)
	if err != nil {
		return err
	}
	return imaging.Save(view, out)
}

func runScan(_ context.Context, cmd *cli.Command) error {
	path, err := imageArg(cmd)
	if err != nil {
		return err
	}

	out := cmd.String("output")
	opts := scan.ScanOptions{
		Language: cmd.String("language"),
		PageSize: cmd.String("page-size"),
		PDF:      isPDF(out),
	}
	if err := newPipeline(cmd).Scan(path, out, opts); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Scan written to %s\n", out)
	return nil
}

func isPDF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}
