package export

import (
	"fmt"
	"image"

	"github.com/unidoc/unipdf/v3/creator"

	"github.com/papercrane/docscan/internal/ocr"
)

// Standard page sizes in PDF points.
var pageSizes = map[string][2]float64{
	"a4":     {595.28, 841.89},
	"letter": {612, 792},
	"legal":  {612, 1008},
}

// PDFOptions controls PDF generation.
type PDFOptions struct {
	// PageSize names a standard page size: "a4" (default), "letter", or
	// "legal".
	PageSize string

	// TextLayer embeds the OCR words as selectable text beneath the page
	// image, making the PDF searchable.
	TextLayer bool
}

// pageDimensions resolves the configured page size, orienting the page to
// match the image (landscape images get landscape pages).
func pageDimensions(opts PDFOptions, imgW, imgH int) (float64, float64, error) {
	name := opts.PageSize
	if name == "" {
		name = "a4"
	}
	size, ok := pageSizes[name]
	if !ok {
		return 0, 0, fmt.Errorf("export: unknown page size %q", name)
	}
	w, h := size[0], size[1]
	if imgW > imgH {
		w, h = h, w
	}
	return w, h, nil
}

// WritePDF renders the rectified page image (and, when requested, its OCR
// text layer) into a single-page PDF at outPath.
//
// The text is drawn first and the image over it, so viewers render the
// image while search and selection hit the text underneath. Word positions
// come from LayoutPage, which uses the same fit-center transform that
// places the image, keeping text and pixels aligned.
func WritePDF(img image.Image, res *ocr.Result, opts PDFOptions, outPath string) error {
	if img == nil {
		return fmt.Errorf("export: nil image")
	}
	bounds := img.Bounds()
	imgW, imgH := bounds.Dx(), bounds.Dy()

	pageW, pageH, err := pageDimensions(opts, imgW, imgH)
	if err != nil {
		return err
	}

	layout, err := LayoutPage(imgW, imgH, res, pageW, pageH)
	if err != nil {
		return err
	}

	c := creator.New()
	c.SetPageSize(creator.PageSize{pageW, pageH})
	c.NewPage()

	if opts.TextLayer && res != nil {
		if err := drawTextLayer(c, layout); err != nil {
			return err
		}
	}

	pdfImg, err := c.NewImageFromGoImage(img)
	if err != nil {
		return fmt.Errorf("export: embed image: %w", err)
	}
	pdfImg.SetPos(layout.ImageX, layout.ImageY)
	pdfImg.SetWidth(layout.ImageWidth)
	pdfImg.SetHeight(layout.ImageHeight)
	if err := c.Draw(pdfImg); err != nil {
		return fmt.Errorf("export: draw image: %w", err)
	}

	if err := c.WriteToFile(outPath); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

// drawTextLayer places each OCR word at its page position, sized so the
// rendered glyphs roughly fill the word's box height.
func drawTextLayer(c *creator.Creator, layout *PageLayout) error {
	for _, w := range layout.Words {
		if w.Text == "" || w.Height <= 0 {
			continue
		}
		p := c.NewParagraph(w.Text)
		p.SetFontSize(w.Height)
		p.SetPos(w.X, w.Y)
		if err := c.Draw(p); err != nil {
			return fmt.Errorf("export: draw text %q: %w", w.Text, err)
		}
	}
	return nil
}
