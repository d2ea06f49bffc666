package adapter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"shipping-gateway/internal/core/config"
	"shipping-gateway/internal/core/logger"
	"shipping-gateway/internal/features/invoice/ports"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PageSize is a page's media box in points.
type PageSize struct {
	Width  float64
	Height float64
}

// pdfEngine is the subset of PDF operations the stamper needs.
type pdfEngine interface {
	PageSizes(pdf []byte) ([]PageSize, error)
	// StampImage places img on page and returns the re-serialized document.
	StampImage(pdf []byte, page int, img []byte, desc string) ([]byte, error)
}

// PDFStamper masks the top of an invoice's first page and overlays the
// tracking barcode in its top-right corner.
type PDFStamper struct {
	// engine parses and writes PDFs.
	engine pdfEngine
	// encoder renders the tracking code.
	encoder ports.BarcodeEncoder
	// config holds the overlay geometry.
	config config.InvoiceConfig
}

// NewPDFStamper creates a PDFStamper backed by pdfcpu.
func NewPDFStamper(cfg config.InvoiceConfig, encoder ports.BarcodeEncoder) *PDFStamper {
	return &PDFStamper{
		engine:  newPDFCPUEngine(),
		encoder: encoder,
		config:  cfg,
	}
}

// Transform implements ports.Transformer.
func (s *PDFStamper) Transform(ctx context.Context, pdf []byte, trackingCode string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := s.engine.PageSizes(pdf)
	if err != nil {
		return nil, errors.Wrap(err, "read page sizes")
	}
	if len(pages) == 0 {
		return pdf, nil
	}
	first := pages[0]

	mask, err := whitePNG(first.Width, first.Height*s.config.MaskRatio)
	if err != nil {
		return nil, err
	}
	out, err := s.engine.StampImage(pdf, 1, mask, "pos:tc, off:0 0, rot:0, op:1, scalefactor:1 abs")
	if err != nil {
		return nil, errors.Wrap(err, "stamp mask")
	}

	code := strings.TrimSpace(trackingCode)
	if code == "" {
		return out, nil
	}

	width := math.Min(first.Width/2, s.config.BarcodeMaxWidth)
	height := width * s.config.BarcodeAspect
	img, err := s.encoder.Encode(code, width, height)
	if err != nil {
		logger.Get().Warn("Skipping barcode overlay", zap.String("tracking_code", code), zap.Error(err))
		return out, nil
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil || cfg.Width == 0 {
		logger.Get().Warn("Skipping barcode overlay, unreadable image", zap.String("tracking_code", code), zap.Error(err))
		return out, nil
	}

	desc := fmt.Sprintf("pos:tr, off:%.2f %.2f, rot:0, op:1, scalefactor:%.6f abs",
		-s.config.BarcodeMargin, -s.config.BarcodeMargin, width/float64(cfg.Width))
	stamped, err := s.engine.StampImage(out, 1, img, desc)
	if err != nil {
		return nil, errors.Wrap(err, "stamp barcode")
	}
	return stamped, nil
}

// whitePNG renders an opaque white rectangle of the given size in points.
func whitePNG(width, height float64) ([]byte, error) {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("invalid mask size %.1fx%.1f", width, height)
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode mask png")
	}
	return buf.Bytes(), nil
}

type pdfcpuEngine struct{}

func newPDFCPUEngine() pdfcpuEngine {
	api.DisableConfigDir()
	return pdfcpuEngine{}
}

func (pdfcpuEngine) conf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (e pdfcpuEngine) PageSizes(pdf []byte) ([]PageSize, error) {
	dims, err := api.PageDims(bytes.NewReader(pdf), e.conf())
	if err != nil {
		// A document without pages may not survive validation.
		if n, cerr := e.pageCount(pdf); cerr == nil && n == 0 {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	sizes := make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// pageCount reads the declared page count without validating the document.
func (e pdfcpuEngine) pageCount(pdf []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(pdf), e.conf())
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, errors.WithStack(err)
	}
	return ctx.PageCount, nil
}

func (e pdfcpuEngine) StampImage(pdf []byte, page int, img []byte, desc string) ([]byte, error) {
	wm, err := api.ImageWatermarkForReader(bytes.NewReader(img), desc, true, false, types.POINTS)
	if err != nil {
		return nil, errors.Wrapf(err, "build image stamp %q", desc)
	}

	var out bytes.Buffer
	pages := []string{fmt.Sprint(page)}
	if err := api.AddWatermarks(bytes.NewReader(pdf), &out, pages, wm, e.conf()); err != nil {
		return nil, errors.WithStack(err)
	}
	return out.Bytes(), nil
}
