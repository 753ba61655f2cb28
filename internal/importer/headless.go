package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/usecase"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const headlessPageTimeout = 30 * time.Second

// renderPage loads pageURL in headless Chrome, waits for the first posting
// and extracts from the rendered DOM.
func (s HTMLSource) renderPage(ctx context.Context, pageURL string) ([]usecase.UpsertJobInput, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(defaultUserAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, headlessPageTimeout)
	defer reqCancel()

	var html string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(s.ItemSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered %s: %w", pageURL, err)
	}
	return s.extract(doc.Selection), nil
}
