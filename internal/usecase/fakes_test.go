package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"github.com/google/uuid"
)

type fakeUserSkillRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID][]string
	err     error
}

func newFakeUserSkillRepo() *fakeUserSkillRepo {
	return &fakeUserSkillRepo{records: map[uuid.UUID][]string{}}
}

func (f *fakeUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) (user.SkillRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.SkillRecord{}, f.err
	}
	skills, ok := f.records[userID]
	if !ok {
		return user.SkillRecord{}, repository.ErrSkillRecordNotFound
	}
	return user.SkillRecord{UserID: userID, Skills: append([]string{}, skills...)}, nil
}

func (f *fakeUserSkillRepo) ListAll(context.Context) ([]user.SkillRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]user.SkillRecord, 0, len(f.records))
	for id, skills := range f.records {
		out = append(out, user.SkillRecord{UserID: id, Skills: skills})
	}
	return out, nil
}

func (f *fakeUserSkillRepo) Merge(_ context.Context, userID uuid.UUID, merge repository.MergeFunc) (user.SkillRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.SkillRecord{}, f.err
	}
	merged := merge(f.records[userID])
	f.records[userID] = merged
	return user.SkillRecord{UserID: userID, Skills: merged, UpdatedAt: time.Now()}, nil
}

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      []job.Posting
	listCalls int
	err       error
}

func (f *fakeJobRepo) List(context.Context) ([]job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]job.Posting{}, f.jobs...), nil
}

func (f *fakeJobRepo) GetByTitle(_ context.Context, title string) (job.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.Title == title {
			return j, nil
		}
	}
	return job.Posting{}, repository.ErrJobNotFound
}

func (f *fakeJobRepo) Upsert(_ context.Context, p job.Posting) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for i := range f.jobs {
		if f.jobs[i].Title == p.Title {
			f.jobs[i] = p
			return false, nil
		}
	}
	f.jobs = append(f.jobs, p)
	return true, nil
}

func (f *fakeJobRepo) Delete(_ context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].Title == title {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return repository.ErrJobNotFound
}

// memCache is a CatalogCache that keeps values as-is instead of JSON.
type memCache struct {
	mu      sync.Mutex
	items   map[string][]job.Posting
	deletes int
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]job.Posting{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("cache down")
	}
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	*(out.(*[]job.Posting)) = v
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value.([]job.Posting)
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.deletes++
	return nil
}

type catalogEvent struct {
	title  string
	action string
}

type recordingNotifier struct {
	events []catalogEvent
}

func (n *recordingNotifier) CatalogUpdated(title, action string) {
	n.events = append(n.events, catalogEvent{title: title, action: action})
}

type staticCatalog struct {
	jobs []job.Posting
	err  error
}

func (s staticCatalog) List(context.Context) ([]job.Posting, error) {
	return s.jobs, s.err
}

type fakeUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]user.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetUserByUsername(ctx, username)
	return err == nil, nil
}
