package reportpdf

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/chromedp/chromedp"

	"github.com/porticus-lab/go-report-pdf/document"
	"github.com/porticus-lab/go-report-pdf/paginate"
)

// Exporter captures rendered report regions and exports them as
// paginated, rasterized PDF documents.
//
// An Exporter manages a headless browser instance that is reused across
// multiple exports. At most one export runs at a time: starting a second
// export while one is in progress returns [ErrBusy].
//
// Call [Exporter.Close] when the Exporter is no longer needed to release
// browser resources.
type Exporter struct {
	cfg           exporterConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool

	exporting atomic.Bool

	// captureFn rasterizes the configured region; swapped in tests.
	captureFn func(ctx context.Context, targetURL string, cfg ExportConfig) (image.Image, error)
}

// NewExporter creates an Exporter with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Exporter.Close] when finished.
func NewExporter(opts ...Option) (*Exporter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	chromePath := cfg.chromePath
	if chromePath == "" && cfg.autoDownload {
		p, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		chromePath = p
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("reportpdf: starting browser: %w", err)
	}

	e := &Exporter{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}
	e.captureFn = e.captureRegion
	return e, nil
}

// Close releases all resources held by the Exporter, including the
// browser process. Close is idempotent.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// Exporting reports whether an export is currently in progress. UIs use
// this as the "export in progress" indicator; it is set before the
// capture step and cleared on every exit path.
func (e *Exporter) Exporting() bool {
	return e.exporting.Load()
}

// ExportHTML renders an HTML string and exports the configured region.
// If cfg is nil, [DefaultExportConfig] values are used.
func (e *Exporter) ExportHTML(ctx context.Context, html string, cfg *ExportConfig) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "reportpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("reportpdf: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("reportpdf: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("reportpdf: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("reportpdf: resolving path: %w", err)
	}
	return e.export(ctx, "file://"+abs, cfg)
}

// ExportURL exports the configured region of the page at rawURL.
// If cfg is nil, [DefaultExportConfig] values are used.
func (e *Exporter) ExportURL(ctx context.Context, rawURL string, cfg *ExportConfig) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("reportpdf: invalid URL %q: %w", rawURL, err)
	}
	return e.export(ctx, rawURL, cfg)
}

// ExportFile exports the configured region of a local HTML file.
// If cfg is nil, [DefaultExportConfig] values are used.
func (e *Exporter) ExportFile(ctx context.Context, path string, cfg *ExportConfig) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("reportpdf: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("reportpdf: %w", err)
	}
	return e.export(ctx, "file://"+abs, cfg)
}

// export runs the pipeline: capture, geometry, slice, then composite and
// assemble per slice, in slice order. On failure no document is produced.
func (e *Exporter) export(ctx context.Context, targetURL string, cfg *ExportConfig) (res *Result, err error) {
	resolved := cfg.resolved()
	log := e.cfg.logger

	if !e.exporting.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.exporting.Store(false)

	defer func() {
		if err != nil {
			log.Error("export failed", "target", targetURL, "error", err)
		}
	}()

	raster, err := e.captureFn(ctx, targetURL, resolved)
	if err != nil {
		return nil, err
	}
	b := raster.Bounds()
	log.Debug("captured raster", "width", b.Dx(), "height", b.Dy())

	geo, err := paginate.Compute(b.Dx(), resolved.Size.Width, resolved.Size.Height, resolved.Margin)
	if err != nil {
		return nil, fmt.Errorf("reportpdf: %w", err)
	}
	slices, err := paginate.Partition(b.Dy(), geo.PageContentHeight)
	if err != nil {
		return nil, fmt.Errorf("reportpdf: %w", err)
	}

	asm := document.NewAssembler(geo, resolved.Created)
	for _, s := range slices {
		band, err := paginate.CutBand(raster, s)
		if err != nil {
			return nil, fmt.Errorf("reportpdf: %w", err)
		}
		encoded, err := paginate.EncodeBand(band)
		if err != nil {
			return nil, fmt.Errorf("reportpdf: %w", err)
		}
		if err := asm.Append(encoded, s.Height); err != nil {
			return nil, fmt.Errorf("reportpdf: %w", err)
		}
	}

	data, err := asm.Finalize()
	if err != nil {
		return nil, fmt.Errorf("reportpdf: %w", err)
	}
	log.Debug("assembled document", "pages", asm.Pages(), "bytes", len(data))

	return &Result{data: data, filename: resolved.Filename}, nil
}

func (e *Exporter) checkClosed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// --- Package-level convenience functions ---

// ExportHTML exports an HTML string using a temporary [Exporter]. This
// is convenient for one-off exports. For repeated use, create an
// [Exporter] with [NewExporter] to reuse the browser instance.
func ExportHTML(ctx context.Context, html string, cfg *ExportConfig, opts ...Option) (*Result, error) {
	e, err := NewExporter(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.ExportHTML(ctx, html, cfg)
}

// ExportURL exports a web page region using a temporary [Exporter].
func ExportURL(ctx context.Context, rawURL string, cfg *ExportConfig, opts ...Option) (*Result, error) {
	e, err := NewExporter(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.ExportURL(ctx, rawURL, cfg)
}

// ExportFile exports a local HTML file's region using a temporary [Exporter].
func ExportFile(ctx context.Context, path string, cfg *ExportConfig, opts ...Option) (*Result, error) {
	e, err := NewExporter(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.ExportFile(ctx, path, cfg)
}
