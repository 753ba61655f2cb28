package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/usecase"
	ucauth "skill-match/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeAuthUC struct {
	registerErr error
	loginErr    error
	registered  ucauth.RegisterInput
}

func (f *fakeAuthUC) Register(_ context.Context, in ucauth.RegisterInput) (user.User, error) {
	f.registered = in
	if f.registerErr != nil {
		return user.User{}, f.registerErr
	}
	return user.User{ID: uuid.New(), Username: in.Username, Type: in.Type}, nil
}

func (f *fakeAuthUC) Login(_ context.Context, in ucauth.LoginInput) (user.User, usecase.TokenPair, error) {
	if f.loginErr != nil {
		return user.User{}, usecase.TokenPair{}, f.loginErr
	}
	return user.User{ID: uuid.New(), Username: in.Username, Type: user.TypeStudent},
		usecase.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
}

func (f *fakeAuthUC) Refresh(_ context.Context, tok string) (usecase.TokenPair, error) {
	if tok != "good-refresh" {
		return usecase.TokenPair{}, usecase.ErrInvalidRefreshToken
	}
	return usecase.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil
}

type fakeSkillUC struct {
	lastRaw string
}

func (f *fakeSkillUC) Upload(_ context.Context, _ uuid.UUID, raw string) (usecase.UploadResult, error) {
	f.lastRaw = raw
	if raw == "" {
		return usecase.UploadResult{}, usecase.ErrInvalidInput
	}
	parsed := matching.ParseSkills(raw)
	return usecase.UploadResult{Uploaded: parsed, Skills: parsed}, nil
}

func (f *fakeSkillUC) MySkills(context.Context, uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeSkillUC) AllSkills(context.Context) ([]user.SkillRecord, error) {
	return []user.SkillRecord{{UserID: uuid.New(), Skills: []string{"Go"}}}, nil
}

type fakeMatchUC struct {
	threshold int
}

func (f *fakeMatchUC) FindMatches(_ context.Context, _ uuid.UUID, threshold int) ([]matching.Result, error) {
	f.threshold = threshold
	return []matching.Result{{
		JobTitle:       "Frontend",
		CourseID:       "FE",
		RequiredSkills: []string{"React", "CSS"},
		MatchedSkills:  []string{"React", "CSS"},
		MatchPercent:   100,
	}}, nil
}

func (f *fakeMatchUC) DemoMatch(_ context.Context, in usecase.DemoMatchInput) ([]job.Posting, error) {
	if len(in.Skills) == 0 {
		return []job.Posting{}, nil
	}
	return []job.Posting{{Title: "Frontend", RequiredSkills: []string{"React"}}}, nil
}

type fakeCatalogUC struct {
	jobs []job.Posting
}

func (f *fakeCatalogUC) List(context.Context) ([]job.Posting, error) { return f.jobs, nil }

func (f *fakeCatalogUC) Upsert(_ context.Context, in usecase.UpsertJobInput) (job.Posting, bool, error) {
	if in.Title == "" {
		return job.Posting{}, false, usecase.ErrInvalidInput
	}
	p := job.Posting{Title: in.Title, RequiredSkills: in.RequiredSkills}
	f.jobs = append(f.jobs, p)
	return p, true, nil
}

func (f *fakeCatalogUC) Delete(_ context.Context, title string) error {
	for i, j := range f.jobs {
		if j.Title == title {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return usecase.ErrJobNotFound
}

func (f *fakeCatalogUC) Import(context.Context, []usecase.UpsertJobInput) (usecase.ImportResult, error) {
	return usecase.ImportResult{}, nil
}

type fakeUserUC struct {
	missing bool
}

func (f *fakeUserUC) Profile(_ context.Context, id uuid.UUID) (usecase.Profile, error) {
	if f.missing {
		return usecase.Profile{}, usecase.ErrUserNotFound
	}
	return usecase.Profile{User: user.User{ID: id, Username: "u", Type: user.TypeStudent}}, nil
}

type testServer struct {
	app     *fiber.App
	jwt     *jwt.HMACService
	auth    *fakeAuthUC
	users   *fakeUserUC
	skills  *fakeSkillUC
	match   *fakeMatchUC
	catalog *fakeCatalogUC
}

func newTestServer() *testServer {
	s := &testServer{
		app:     fiber.New(),
		jwt:     jwt.NewHMACService("a", "r", time.Hour, time.Hour),
		auth:    &fakeAuthUC{},
		users:   &fakeUserUC{},
		skills:  &fakeSkillUC{},
		match:   &fakeMatchUC{},
		catalog: &fakeCatalogUC{jobs: []job.Posting{{Title: "Frontend", RequiredSkills: []string{"React"}}}},
	}
	authMw := middleware.NewAuthMiddleware(s.jwt).Middleware()
	matchHandler := NewMatchHandler(s.match, matching.DefaultThreshold)

	s.app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewHealthHandler(nil).RegisterRoutes(s.app)
	NewAuthHandler(s.auth).RegisterRoutes(s.app.Group("/auth"))
	NewJobsHandler(s.catalog, authMw).RegisterRoutes(s.app.Group("/jobs"))
	s.app.Post("/demo/match", matchHandler.DemoMatch)
	NewUserHandler(s.users).RegisterRoutes(s.app.Group("/users", authMw))

	skills := s.app.Group("/skills", authMw)
	NewSkillHandler(s.skills).RegisterRoutes(skills)
	skills.Get("/find-courses-by-match", matchHandler.FindCoursesByMatch)
	return s
}

func (s *testServer) token(t *testing.T, userType string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(jwt.Identity{UserID: uuid.New(), Username: "u", UserType: userType})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer res.Body.Close()

	var env envelope
	b, _ := io.ReadAll(res.Body)
	if len(b) > 0 {
		if err := json.Unmarshal(b, &env); err != nil {
			t.Fatalf("decode %q: %v", b, err)
		}
	}
	return res.StatusCode, env
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || env.Message != "ok" {
		t.Fatalf("unexpected health response %d %+v", status, env)
	}
}

type fakeCache struct {
	available bool
	pingErr   error
	pings     int
}

func (f *fakeCache) Available() bool { return f.available }

func (f *fakeCache) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

func TestHealth_ReportsCache(t *testing.T) {
	tests := []struct {
		name  string
		cache *fakeCache
		want  string
		pings int
	}{
		{"reachable", &fakeCache{available: true}, "up", 1},
		{"ping fails", &fakeCache{available: true, pingErr: errors.New("timeout")}, "down", 1},
		{"bypassed at start up", &fakeCache{}, "down", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(tt.cache).RegisterRoutes(app)
			res, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if res.StatusCode != http.StatusOK {
				t.Fatalf("a down cache must not fail health, got %d", res.StatusCode)
			}
			var env struct {
				Data map[string]string `json:"data"`
			}
			if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Data["cache"] != tt.want || tt.cache.pings != tt.pings {
				t.Fatalf("expected cache %q after %d pings, got %q after %d", tt.want, tt.pings, env.Data["cache"], tt.cache.pings)
			}
		})
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "erin", "password": "password1", "type": "student",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d %+v", status, env)
	}
	var u map[string]any
	_ = json.Unmarshal(env.Data, &u)
	if u["username"] != "erin" || u["type"] != "student" {
		t.Fatalf("unexpected user %v", u)
	}
	if _, leaked := u["password_hash"]; leaked {
		t.Fatalf("password hash leaked")
	}

	s.auth.registerErr = ucauth.ErrUsernameTaken
	status, _ = s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "erin", "password": "password1", "type": "student",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}

	s.auth.registerErr = ucauth.ErrInvalidInput
	status, _ = s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"username": "x"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	status, env = s.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": "erin", "password": strings.Repeat("p", 80), "type": "student",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for an over-long password, got %d", status)
	}
	if !strings.Contains(env.Message, "8-72") {
		t.Fatalf("message should state the password limits, got %q", env.Message)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "erin", "password": "password1"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data map[string]any
	_ = json.Unmarshal(env.Data, &data)
	for _, k := range []string{"user", "access_token", "refresh_token", "type"} {
		if _, ok := data[k]; !ok {
			t.Fatalf("login response missing %q: %v", k, data)
		}
	}

	s.auth.loginErr = ucauth.ErrInvalidCredentials
	status, _ = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "erin", "password": "nope"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	s := newTestServer()
	if status, _ := s.do(t, http.MethodPost, "/auth/refresh", "good-refresh", nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := s.do(t, http.MethodPost, "/auth/refresh", "bad", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := s.do(t, http.MethodPost, "/auth/refresh", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header, got %d", status)
	}
}

func TestUserHandler_Me(t *testing.T) {
	s := newTestServer()
	if status, _ := s.do(t, http.MethodGet, "/users/me", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, env := s.do(t, http.MethodGet, "/users/me", s.token(t, user.TypeStudent), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	var p map[string]any
	_ = json.Unmarshal(env.Data, &p)
	if p["username"] != "u" || p["skill_count"] != float64(0) {
		t.Fatalf("unexpected profile %v", p)
	}
	if skills, ok := p["skills"].([]any); !ok || len(skills) != 0 {
		t.Fatalf("skills must be an empty array, got %v", p["skills"])
	}

	s.users.missing = true
	if status, _ := s.do(t, http.MethodGet, "/users/me", s.token(t, user.TypeStudent), nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 for a deleted user, got %d", status)
	}
}

func TestSkillHandler_Upload(t *testing.T) {
	s := newTestServer()
	tok := s.token(t, user.TypeStudent)

	if status, _ := s.do(t, http.MethodPost, "/skills/upload", "", map[string]string{"skills": "Go"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status, _ := s.do(t, http.MethodPost, "/skills/upload", tok, map[string]any{}); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing skills, got %d", status)
	}
	if status, _ := s.do(t, http.MethodPost, "/skills/upload", tok, map[string]any{"skills": ""}); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty skills, got %d", status)
	}

	status, env := s.do(t, http.MethodPost, "/skills/upload", tok, map[string]string{"skills": "Go, SQL"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	var data struct {
		Uploaded []string `json:"uploaded"`
		Skills   []string `json:"skills"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if len(data.Skills) != 2 || data.Skills[1] != "SQL" {
		t.Fatalf("unexpected upload data %+v", data)
	}
}

func TestSkillHandler_MySkillsNeverNull(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodGet, "/skills/my", s.token(t, user.TypeStudent), nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(env.Data) != `{"skills":[]}` {
		t.Fatalf("expected empty list, got %s", env.Data)
	}
}

func TestSkillHandler_AllRequiresEmployer(t *testing.T) {
	s := newTestServer()
	if status, _ := s.do(t, http.MethodGet, "/skills/all", s.token(t, user.TypeStudent), nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", status)
	}
	if status, _ := s.do(t, http.MethodGet, "/skills/all", s.token(t, user.TypeEmployer), nil); status != http.StatusOK {
		t.Fatalf("expected 200 for employer, got %d", status)
	}
}

func TestMatchHandler_Threshold(t *testing.T) {
	s := newTestServer()
	tok := s.token(t, user.TypeStudent)

	for _, q := range []string{"abc", "101", "-5"} {
		status, _ := s.do(t, http.MethodGet, "/skills/find-courses-by-match?threshold="+q, tok, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("threshold %q: expected 400, got %d", q, status)
		}
	}

	status, env := s.do(t, http.MethodGet, "/skills/find-courses-by-match", tok, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if s.match.threshold != matching.DefaultThreshold {
		t.Fatalf("expected default threshold, got %d", s.match.threshold)
	}

	var data struct {
		MatchingCourses []map[string]any `json:"matching_courses"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if len(data.MatchingCourses) != 1 {
		t.Fatalf("unexpected data %s", env.Data)
	}
	for _, k := range []string{"jobTitle", "courseId", "requiredSkills", "matchedSkills", "missingSkills", "matchPercent"} {
		if _, ok := data.MatchingCourses[0][k]; !ok {
			t.Fatalf("match result missing %q", k)
		}
	}
	if missing, _ := data.MatchingCourses[0]["missingSkills"].([]any); missing == nil {
		t.Fatalf("missingSkills must be an empty list, not null")
	}

	s.do(t, http.MethodGet, "/skills/find-courses-by-match?threshold=75", tok, nil)
	if s.match.threshold != 75 {
		t.Fatalf("expected threshold 75, got %d", s.match.threshold)
	}
}

func TestMatchHandler_Demo(t *testing.T) {
	s := newTestServer()
	status, env := s.do(t, http.MethodPost, "/demo/match", "", map[string]any{
		"skills":  []map[string]any{{"name": "React", "confidence": 70}},
		"jobType": "All",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var data struct {
		Jobs []map[string]any `json:"jobs"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if len(data.Jobs) != 1 {
		t.Fatalf("unexpected demo data %s", env.Data)
	}
}

func TestJobsHandler(t *testing.T) {
	s := newTestServer()

	status, env := s.do(t, http.MethodGet, "/jobs", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected public list, got %d", status)
	}
	var jobs []map[string]any
	_ = json.Unmarshal(env.Data, &jobs)
	if len(jobs) != 1 {
		t.Fatalf("unexpected jobs %s", env.Data)
	}

	body := map[string]any{"title": "Data Analyst", "requiredSkills": []string{"SQL"}}
	if status, _ := s.do(t, http.MethodPut, "/jobs", "", body); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status, _ := s.do(t, http.MethodPut, "/jobs", s.token(t, user.TypeStudent), body); status != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", status)
	}

	employer := s.token(t, user.TypeEmployer)
	if status, _ := s.do(t, http.MethodPut, "/jobs", employer, body); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if status, _ := s.do(t, http.MethodDelete, "/jobs/Data%20Analyst", employer, nil); status != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", status)
	}
	if status, _ := s.do(t, http.MethodDelete, "/jobs/Data%20Analyst", employer, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", status)
	}
}
