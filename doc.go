// Package reportpdf exports rendered report and dashboard regions as
// paginated, rasterized PDF documents.
//
// The region is captured in headless Chrome (Chrome DevTools Protocol)
// as a single raster, however tall it is, then split into page-sized
// bands and placed one band per page, preserving width-fit scaling and
// top-to-bottom reading order.
//
// # Exporting
//
// For one-off exports use the package-level helpers:
//
//	res, err := reportpdf.ExportURL(ctx, "https://dashboard.local/overview", nil)
//
// For repeated exports create an [Exporter], which reuses the browser process:
//
//	e, err := reportpdf.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	res, err := e.ExportURL(ctx, "https://dashboard.local/overview", nil)
//	res, err  = e.ExportHTML(ctx, "<div id='report'>...</div>", nil)
//	res, err  = e.ExportFile(ctx, "overview.html", nil)
//
// Use [ExportConfig] to control paper size, margin, the captured region,
// and elements excluded from the capture:
//
//	cfg := &reportpdf.ExportConfig{
//	    Selector: "#events-overview",
//	    Exclude:  []string{".placeholder-row", ".toolbar"},
//	    WaitFor:  ".chart-rendered",
//	}
//	res, err := e.ExportURL(ctx, url, cfg)
//
// A [Result] gives flexible access to the finished document:
//
//	res.Bytes()                            // []byte
//	res.Base64()                           // base64 string (RFC 4648)
//	res.Reader()                           // *bytes.Reader
//	res.Save(reportpdf.FileSaver{Dir: "exports"})
//	res.PageCount()                        // pages in the document
//
// At most one export runs per Exporter at a time; a second concurrent
// call returns [ErrBusy]. [Exporter.Exporting] reports the in-progress
// state for UI indicators.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	e, err := reportpdf.NewExporter(reportpdf.WithAutoDownload())
package reportpdf
