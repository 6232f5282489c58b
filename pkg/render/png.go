package render

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/chromedp"
)

// PNG rasterizes a rendered page by loading it in a headless browser and
// taking a full-viewport screenshot. The page is delivered as a base64 data
// URI so no temporary file is needed. Requires a Chrome/Chromium binary on
// the host.
func PNG(ctx context.Context, page []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString(page)

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(1280, 960),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible("#map_canvas", chromedp.ByID),
		chromedp.FullScreenshot(&shot, 90),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("screenshot page: %w", err)
	}
	if len(shot) == 0 {
		return nil, fmt.Errorf("screenshot page: empty capture")
	}
	return shot, nil
}
