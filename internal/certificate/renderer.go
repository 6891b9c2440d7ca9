package certificate

import (
	"bytes"
	"fmt"

	"learning-service/internal/service"

	"github.com/fogleman/gg"
)

const (
	canvasWidth  = 1200
	canvasHeight = 850
)

// Renderer draws completion certificates as PNG images.
type Renderer struct {
	fontPath string
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

func (r *Renderer) Render(data service.CertificateData) ([]byte, error) {
	dc := gg.NewContext(canvasWidth, canvasHeight)

	// Background and border.
	dc.SetRGB(0.98, 0.97, 0.94)
	dc.Clear()
	dc.SetRGB(0.15, 0.23, 0.42)
	dc.SetLineWidth(6)
	dc.DrawRectangle(40, 40, canvasWidth-80, canvasHeight-80)
	dc.Stroke()

	cx := float64(canvasWidth) / 2

	if err := dc.LoadFontFace(r.fontPath, 52); err != nil {
		return nil, fmt.Errorf("loading font %s: %w", r.fontPath, err)
	}
	dc.SetRGB(0.15, 0.23, 0.42)
	dc.DrawStringAnchored("Certificate of Completion", cx, 170, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 28); err != nil {
		return nil, err
	}
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.DrawStringAnchored("This certifies that", cx, 280, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 46); err != nil {
		return nil, err
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(data.UserName, cx, 360, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 28); err != nil {
		return nil, err
	}
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.DrawStringAnchored("has successfully completed the course", cx, 440, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 38); err != nil {
		return nil, err
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(data.CourseTitle, cx, 520, 0.5, 0.5)

	if err := dc.LoadFontFace(r.fontPath, 24); err != nil {
		return nil, err
	}
	dc.SetRGB(0.3, 0.3, 0.3)
	if data.Duration != "" {
		dc.DrawStringAnchored(fmt.Sprintf("Course duration: %s", data.Duration), cx, 600, 0.5, 0.5)
	}
	dc.DrawStringAnchored(
		fmt.Sprintf("Completed on %s", data.CompletedAt.Format("January 2, 2006")),
		cx, 650, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
