package importer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"skill-match/internal/domain/matching"
	applog "skill-match/internal/logger"
	"skill-match/internal/usecase"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; skill-match-importer/1.0)"

// HTMLSource scrapes postings from a careers listing. Every element matching
// ItemSelector is one posting; the other selectors are looked up inside it.
// A URL containing %d is expanded for pages 1..Pages. Headless renders each
// page in Chrome first, for listings built by client-side scripts.
type HTMLSource struct {
	URL            string
	ItemSelector   string
	TitleSelector  string
	CourseSelector string
	SkillsSelector string

	Pages    int
	Workers  int
	Delay    time.Duration
	Headless bool
	Logger   *zap.Logger
}

func (s HTMLSource) Name() string {
	return "html:" + s.URL
}

func (s HTMLSource) Fetch(ctx context.Context) ([]usecase.UpsertJobInput, error) {
	if strings.TrimSpace(s.URL) == "" {
		return nil, errors.New("empty url")
	}
	if strings.TrimSpace(s.ItemSelector) == "" || strings.TrimSpace(s.TitleSelector) == "" {
		return nil, errors.New("item and title selectors are required")
	}
	logger := applog.OrNop(s.Logger)

	pages := s.pageURLs()
	perPage := make([][]usecase.UpsertJobInput, len(pages))

	errs := newFetchPool(s.Workers, s.Delay).run(ctx, len(pages), func(ctx context.Context, i int) error {
		scrape := s.scrapePage
		if s.Headless {
			scrape = s.renderPage
		}
		items, err := scrape(ctx, pages[i])
		if err != nil {
			return err
		}
		perPage[i] = items
		return nil
	})

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			logger.Warn("listing page failed", zap.String("url", pages[i]), zap.Error(err))
		}
	}
	if failed == len(pages) {
		return nil, fmt.Errorf("all %d listing pages failed: %w", failed, errs[0])
	}

	seen := map[string]struct{}{}
	out := make([]usecase.UpsertJobInput, 0)
	for _, items := range perPage {
		for _, it := range items {
			key := strings.ToLower(it.Title)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, it)
		}
	}
	return out, nil
}

func (s HTMLSource) pageURLs() []string {
	if !strings.Contains(s.URL, "%d") {
		return []string{s.URL}
	}
	n := s.Pages
	if n < 1 {
		n = 1
	}
	out := make([]string, 0, n)
	for p := 1; p <= n; p++ {
		out = append(out, fmt.Sprintf(s.URL, p))
	}
	return out
}

func (s HTMLSource) scrapePage(ctx context.Context, pageURL string) ([]usecase.UpsertJobInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var c *colly.Collector
	if host := hostFromURL(pageURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host), colly.UserAgent(defaultUserAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(defaultUserAgent))
	}
	c.SetRequestTimeout(30 * time.Second)

	var items []usecase.UpsertJobInput
	c.OnHTML("html", func(e *colly.HTMLElement) {
		items = s.extract(e.DOM)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	if items == nil {
		items = []usecase.UpsertJobInput{}
	}
	return items, nil
}

// extract reads the postings under root. Items without a title are skipped.
func (s HTMLSource) extract(root *goquery.Selection) []usecase.UpsertJobInput {
	items := make([]usecase.UpsertJobInput, 0)
	root.Find(s.ItemSelector).Each(func(_ int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(s.TitleSelector).Text())
		if title == "" {
			return
		}

		in := usecase.UpsertJobInput{Title: title}
		if s.CourseSelector != "" {
			in.CourseID = strings.TrimSpace(item.Find(s.CourseSelector).Text())
		}
		if s.SkillsSelector != "" {
			var skills []string
			item.Find(s.SkillsSelector).Each(func(_ int, el *goquery.Selection) {
				skills = matching.MergeLists(skills, matching.ParseSkills(el.Text()))
			})
			if skills == nil {
				skills = []string{}
			}
			in.RequiredSkills = skills
		}
		items = append(items, in)
	})
	return items
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}
