package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skill-match/internal/app"
	"skill-match/internal/config"
	"skill-match/internal/importer"
	"skill-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	file string

	url            string
	itemSelector   string
	titleSelector  string
	courseSelector string
	skillsSelector string
	pages          int
	workers        int
	delay          time.Duration
	headless       bool

	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "importer",
		Short:         "Import job postings into the catalog from a jobs.json file or an HTML careers page",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			return run(cmd.Context(), src, opts.timeout)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "path to a jobs.json catalog")
	f.StringVar(&opts.url, "url", "", "careers listing URL, %d is replaced by the page number")
	f.StringVar(&opts.itemSelector, "item", "", "CSS selector of one posting")
	f.StringVar(&opts.titleSelector, "title", "", "CSS selector of the title inside a posting")
	f.StringVar(&opts.courseSelector, "course", "", "CSS selector of the course id inside a posting")
	f.StringVar(&opts.skillsSelector, "skills", "", "CSS selector of the comma separated skills inside a posting")
	f.IntVar(&opts.pages, "pages", 1, "number of listing pages when the URL contains %d")
	f.IntVar(&opts.workers, "workers", 2, "concurrent page fetches")
	f.DurationVar(&opts.delay, "delay", 500*time.Millisecond, "minimum spacing between page fetches")
	f.BoolVar(&opts.headless, "headless", false, "render listing pages in headless Chrome before extracting")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall import deadline")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")

	return cmd
}

func (o options) source() (importer.Source, error) {
	if strings.TrimSpace(o.file) != "" {
		return importer.FileSource{Path: o.file}, nil
	}
	if strings.TrimSpace(o.itemSelector) == "" || strings.TrimSpace(o.titleSelector) == "" {
		return nil, errors.New("--url needs --item and --title")
	}
	return importer.HTMLSource{
		URL:            o.url,
		ItemSelector:   o.itemSelector,
		TitleSelector:  o.titleSelector,
		CourseSelector: o.courseSelector,
		SkillsSelector: o.skillsSelector,
		Pages:          o.pages,
		Workers:        o.workers,
		Delay:          o.delay,
		Headless:       o.headless,
	}, nil
}

func run(parent context.Context, src importer.Source, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return err
	}

	lg, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to init container", zap.Error(err))
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Error("cleanup error", zap.Error(err))
		}
	}()

	if hs, ok := src.(importer.HTMLSource); ok {
		hs.Logger = lg.Named("html")
		src = hs
	}

	res, err := importer.Run(ctx, src, c.Catalog, lg.Named("importer"))
	if err != nil {
		lg.Error("import failed", zap.Error(err))
		return err
	}
	lg.Info("import finished", zap.Int("created", res.Created), zap.Int("updated", res.Updated))
	return nil
}
