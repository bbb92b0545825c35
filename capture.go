package reportpdf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// hideScript returns a JS snippet that removes the given selectors from
// layout. Hidden elements contribute zero height to the captured raster.
func hideScript(selectors []string) string {
	encoded, _ := json.Marshal(selectors)
	return fmt.Sprintf(`(() => {
	for (const sel of %s) {
		for (const el of document.querySelectorAll(sel)) {
			el.style.display = 'none';
		}
	}
})()`, encoded)
}

// captureRegion navigates a fresh tab to targetURL and rasterizes the
// configured region into a single image, however tall it is. Excluded
// elements are hidden before the screenshot. Returns [ErrNoContent]
// when the selector matches nothing or the region has no visible area.
func (e *Exporter) captureRegion(ctx context.Context, targetURL string, cfg ExportConfig) (image.Image, error) {
	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	defer tabCancel()

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, e.cfg.timeout)
		defer cancel()
	}
	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	waitSel := cfg.WaitFor
	wait := chromedp.WaitReady("body", chromedp.ByQuery)
	if waitSel != "" {
		wait = chromedp.WaitVisible(waitSel, chromedp.ByQuery)
	}

	var nodes []*cdp.Node
	var shot []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		wait,
		chromedp.ActionFunc(func(ctx context.Context) error {
			if cfg.DeviceScale == 1.0 {
				return nil
			}
			return emulation.SetDeviceMetricsOverride(0, 0, cfg.DeviceScale, false).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(cfg.Exclude) == 0 {
				return nil
			}
			return chromedp.Evaluate(hideScript(cfg.Exclude), nil).Do(ctx)
		}),
		chromedp.Nodes(cfg.Selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(nodes) == 0 {
				return ErrNoContent
			}
			return chromedp.Screenshot(cfg.Selector, &shot, chromedp.ByQuery).Do(ctx)
		}),
	)
	if err != nil {
		if errors.Is(err, ErrNoContent) {
			return nil, ErrNoContent
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("reportpdf: capture: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("reportpdf: decoding capture: %w", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, ErrNoContent
	}
	return img, nil
}
