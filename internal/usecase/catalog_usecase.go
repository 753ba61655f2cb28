package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	applog "skill-match/internal/logger"
	"skill-match/internal/repository"

	"go.uber.org/zap"
)

var ErrJobNotFound = errors.New("job not found")

const catalogCacheKey = "catalog:all"

const (
	CatalogActionCreated  = "created"
	CatalogActionUpdated  = "updated"
	CatalogActionDeleted  = "deleted"
	CatalogActionImported = "imported"
)

type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CatalogNotifier is told about every catalog change after it is stored.
type CatalogNotifier interface {
	CatalogUpdated(title, action string)
}

type UpsertJobInput struct {
	Title            string
	CourseID         string
	RequiredSkills   []string
	Company          string
	Description      string
	Type             string
	ConfidenceNeeded int
}

type ImportResult struct {
	Created int
	Updated int
}

type CatalogUsecase interface {
	List(ctx context.Context) ([]job.Posting, error)
	Upsert(ctx context.Context, in UpsertJobInput) (job.Posting, bool, error)
	Delete(ctx context.Context, title string) error
	Import(ctx context.Context, items []UpsertJobInput) (ImportResult, error)
}

type Catalog struct {
	repo     repository.JobRepository
	cache    CatalogCache
	notifier CatalogNotifier
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCatalogUsecase wires the catalog store. cache and notifier may be nil.
func NewCatalogUsecase(repo repository.JobRepository, cache CatalogCache, notifier CatalogNotifier, ttl time.Duration, logger *zap.Logger) *Catalog {
	return &Catalog{repo: repo, cache: cache, notifier: notifier, ttl: ttl, logger: applog.OrNop(logger).Named("catalog")}
}

func (u *Catalog) List(ctx context.Context) ([]job.Posting, error) {
	if u.cache != nil {
		var cached []job.Posting
		hit, err := u.cache.GetJSON(ctx, catalogCacheKey, &cached)
		if err != nil {
			u.logger.Debug("catalog cache read failed", zap.Error(err))
		}
		if hit && err == nil {
			return cached, nil
		}
	}

	jobs, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, catalogCacheKey, jobs, u.ttl); err != nil {
			u.logger.Debug("catalog cache write failed", zap.Error(err))
		}
	}
	return jobs, nil
}

func (u *Catalog) Upsert(ctx context.Context, in UpsertJobInput) (job.Posting, bool, error) {
	p, err := normalizePosting(in)
	if err != nil {
		return job.Posting{}, false, err
	}

	created, err := u.repo.Upsert(ctx, p)
	if err != nil {
		return job.Posting{}, false, ErrInternal
	}
	u.invalidate(ctx)

	stored, err := u.repo.GetByTitle(ctx, p.Title)
	if err != nil {
		return job.Posting{}, false, ErrInternal
	}

	action := CatalogActionUpdated
	if created {
		action = CatalogActionCreated
	}
	u.notify(p.Title, action)
	return stored, created, nil
}

func (u *Catalog) Delete(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, title); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	u.invalidate(ctx)
	u.notify(title, CatalogActionDeleted)
	return nil
}

// Import upserts items in order. Every item is validated before anything is
// written, so a bad entry leaves the catalog untouched.
func (u *Catalog) Import(ctx context.Context, items []UpsertJobInput) (ImportResult, error) {
	postings := make([]job.Posting, 0, len(items))
	for i, in := range items {
		p, err := normalizePosting(in)
		if err != nil {
			return ImportResult{}, fmt.Errorf("item %d (%q): %w", i, in.Title, err)
		}
		postings = append(postings, p)
	}

	var res ImportResult
	for _, p := range postings {
		created, err := u.repo.Upsert(ctx, p)
		if err != nil {
			u.invalidate(ctx)
			return res, fmt.Errorf("upsert %q: %w", p.Title, ErrInternal)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	u.invalidate(ctx)
	if len(postings) > 0 {
		u.notify("", CatalogActionImported)
	}
	return res, nil
}

func (u *Catalog) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, catalogCacheKey); err != nil {
		u.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (u *Catalog) notify(title, action string) {
	if u.notifier == nil {
		return
	}
	u.notifier.CatalogUpdated(title, action)
}

func normalizePosting(in UpsertJobInput) (job.Posting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.Posting{}, ErrInvalidInput
	}
	jobType := canonicalJobType(in.Type)
	if !job.IsValidType(jobType) {
		return job.Posting{}, ErrInvalidInput
	}
	if in.ConfidenceNeeded < 0 || in.ConfidenceNeeded > 100 {
		return job.Posting{}, ErrInvalidInput
	}

	return job.Posting{
		Title:            title,
		CourseID:         strings.TrimSpace(in.CourseID),
		RequiredSkills:   matching.MergeLists(nil, in.RequiredSkills),
		Company:          strings.TrimSpace(in.Company),
		Description:      strings.TrimSpace(in.Description),
		Type:             jobType,
		ConfidenceNeeded: in.ConfidenceNeeded,
	}, nil
}

// canonicalJobType maps any casing of a known type to its canonical form.
// Unknown values are returned trimmed so validation can reject them.
func canonicalJobType(t string) string {
	t = strings.TrimSpace(t)
	for _, known := range []string{job.TypeRemote, job.TypeOnSite, job.TypeHybrid} {
		if strings.EqualFold(t, known) {
			return known
		}
	}
	return t
}
