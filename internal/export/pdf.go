package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Caption is printed under the drawing. A nil Caption prints nothing.
type Caption struct {
	Digit       int
	Probability float64
}

// WritePDF places the canvas on an A4 page, 150mm wide.
func WritePDF(w io.Writer, img image.Image, caption *Caption) error {
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("Smart Desk drawing", true)
	p.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("canvas", opt, &raw)

	const x, y, side = 30.0, 30.0, 150.0
	p.ImageOptions("canvas", x, y, side, side, false, opt, 0, "")
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.2)
	p.Rect(x, y, side, side, "D")

	if caption != nil {
		p.SetFont("Helvetica", "", 14)
		p.SetXY(x, y+side+8)
		p.CellFormat(side, 8, fmt.Sprintf("Predicted digit: %d (%.2f%%)", caption.Digit, caption.Probability*100),
			"", 0, "C", false, 0, "")
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return p.Output(w)
}
