package dashboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

var (
	headlessOnce sync.Once
	headlessErr  error
)

// EnsureHeadlessAvailable starts a throwaway browser once so a missing
// Chrome install fails fast instead of mid-export.
func EnsureHeadlessAvailable(ctx context.Context) error {
	headlessOnce.Do(func() {
		targetCtx := ctx
		if targetCtx == nil {
			targetCtx = context.Background()
		}
		parent, cancel := chromedp.NewContext(targetCtx)
		defer cancel()
		headlessErr = chromedp.Run(parent)
	})
	return headlessErr
}

// ExportPNG renders the named view to a PNG file via headless Chrome.
func ExportPNG(ctx context.Context, view View, data *Dataset, start, end string, defaultStart, path string) error {
	if err := EnsureHeadlessAvailable(ctx); err != nil {
		return err
	}

	table := data.Table()
	startT, err := parseMonth(start, defaultStart)
	if err != nil {
		return err
	}
	latest, _ := table.LatestDate()
	endT, err := parseMonth(end, latest.Format(monthLayout))
	if err != nil {
		return err
	}
	filtered := FilterRange(table, startT, endT)
	sum, ok := Summarize(filtered)
	if !ok {
		return fmt.Errorf("fewer than two months in the selected range")
	}

	html, err := BuildPageHTML(view, filtered, sum)
	if err != nil {
		return err
	}
	png, err := renderHTMLToPNG(ctx, html, chartWidthPx, chartHeightPx+80)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}

func renderHTMLToPNG(ctx context.Context, html []byte, width, height int) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	parent, cancel := chromedp.NewContext(ctx)
	defer cancel()

	timeoutCtx, cancelTimeout := context.WithTimeout(parent, 20*time.Second)
	defer cancelTimeout()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
	var screenshot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500 * time.Millisecond),
		chromedp.FullScreenshot(&screenshot, 0),
	}
	if err := chromedp.Run(timeoutCtx, tasks...); err != nil {
		return nil, err
	}
	return screenshot, nil
}
