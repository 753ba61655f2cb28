package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"skill-match/internal/domain/job"
	"skill-match/internal/usecase"

	"github.com/PuerkitoBio/goquery"
)

func titlesOf(items []usecase.UpsertJobInput) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestDecodeCatalog_KeepsFileOrder(t *testing.T) {
	raw := `{
		"Zeta Engineer": {"courseId": "Z-1", "requiredSkills": ["Go", "SQL"]},
		"Alpha Analyst": {"courseId": "A-1", "requiredSkills": ["Excel"]},
		"Mid Designer":  {"courseId": "M-1", "requiredSkills": [], "jobType": "Remote", "confidenceNeeded": 70}
	}`
	items, err := DecodeCatalog(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Zeta Engineer", "Alpha Analyst", "Mid Designer"}
	if got := titlesOf(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if items[0].CourseID != "Z-1" || !reflect.DeepEqual(items[0].RequiredSkills, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected first entry %+v", items[0])
	}
	if items[2].Type != job.TypeRemote || items[2].ConfidenceNeeded != 70 {
		t.Fatalf("optional fields not decoded: %+v", items[2])
	}
}

func TestDecodeCatalog_Rejects(t *testing.T) {
	for _, raw := range []string{
		`[]`,
		`{"A": {"courseId": 5}}`,
		`{"A": {"courseId": "x"}`,
		``,
	} {
		if _, err := DecodeCatalog(strings.NewReader(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte(`{"B":{"courseId":"b"},"A":{"courseId":"a"}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	items, err := FileSource{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := titlesOf(items); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}

	if _, err := (FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

const listingPage = `<!doctype html>
<html><body>
  <div class="job">
    <h2 class="title">Frontend Developer Intern</h2>
    <span class="course">FE-101</span>
    <ul class="skills"><li>React</li><li>JavaScript, CSS</li><li>react</li></ul>
  </div>
  <div class="job">
    <h2 class="title">Data Analyst Intern</h2>
    <span class="course">DA-101</span>
    <ul class="skills"><li>Excel, SQL, Python</li></ul>
  </div>
  <div class="job">
    <h2 class="title">  </h2>
  </div>
</body></html>`

func TestHTMLSource_ExtractsPostings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	src := HTMLSource{
		URL:            srv.URL + "/careers",
		ItemSelector:   "div.job",
		TitleSelector:  ".title",
		CourseSelector: ".course",
		SkillsSelector: ".skills li",
	}
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []usecase.UpsertJobInput{
		{Title: "Frontend Developer Intern", CourseID: "FE-101", RequiredSkills: []string{"React", "JavaScript", "CSS"}},
		{Title: "Data Analyst Intern", CourseID: "DA-101", RequiredSkills: []string{"Excel", "SQL", "Python"}},
	}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("expected %+v, got %+v", want, items)
	}
}

func TestHTMLSource_PagesKeepOrderAndDedup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "text/html")
		switch page {
		case "1":
			fmt.Fprint(w, `<div class="job"><b>One</b></div><div class="job"><b>Two</b></div>`)
		case "2":
			fmt.Fprint(w, `<div class="job"><b>two</b></div><div class="job"><b>Three</b></div>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	items, err := HTMLSource{
		URL:           srv.URL + "/jobs?page=%d",
		ItemSelector:  "div.job",
		TitleSelector: "b",
		Pages:         3,
		Workers:       3,
	}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("a single failing page must not fail the fetch: %v", err)
	}
	if got := titlesOf(items); !reflect.DeepEqual(got, []string{"One", "Two", "Three"}) {
		t.Fatalf("unexpected titles %v", got)
	}
}

func TestHTMLSource_AllPagesFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := HTMLSource{URL: srv.URL, ItemSelector: "div", TitleSelector: "b"}.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error when every page fails")
	}
}

func TestHTMLSource_RequiresSelectors(t *testing.T) {
	if _, err := (HTMLSource{URL: "http://example.invalid"}).Fetch(context.Background()); err == nil {
		t.Fatalf("expected selector error")
	}
}

func TestFetchPool_RunsEveryIndex(t *testing.T) {
	var calls int32
	errs := newFetchPool(3, time.Millisecond).run(context.Background(), 7, func(_ context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		if i == 4 {
			return errors.New("boom")
		}
		return nil
	})
	if n := atomic.LoadInt32(&calls); n != 7 {
		t.Fatalf("expected 7 calls, got %d", n)
	}
	for i, err := range errs {
		if (err != nil) != (i == 4) {
			t.Fatalf("unexpected error slot %d: %v", i, err)
		}
	}
}

func TestFetchPool_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errs := newFetchPool(1, 10*time.Millisecond).run(ctx, 3, func(ctx context.Context, _ int) error {
		return ctx.Err()
	})
	for i, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("slot %d: expected context.Canceled, got %v", i, err)
		}
	}
}

type recordingCatalog struct {
	usecase.CatalogUsecase
	got []usecase.UpsertJobInput
}

func (r *recordingCatalog) Import(_ context.Context, items []usecase.UpsertJobInput) (usecase.ImportResult, error) {
	r.got = items
	return usecase.ImportResult{Created: len(items)}, nil
}

type staticSource []usecase.UpsertJobInput

func (s staticSource) Name() string { return "static" }
func (s staticSource) Fetch(context.Context) ([]usecase.UpsertJobInput, error) {
	return s, nil
}

func TestRun(t *testing.T) {
	cat := &recordingCatalog{}
	src := staticSource{{Title: "A"}, {Title: "B"}}

	res, err := Run(context.Background(), src, cat, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || len(cat.got) != 2 {
		t.Fatalf("unexpected result %+v, imported %v", res, cat.got)
	}

	cat.got = nil
	if _, err := Run(context.Background(), staticSource{}, cat, nil); err != nil || cat.got != nil {
		t.Fatalf("empty source must not call import: err=%v got=%v", err, cat.got)
	}
}

func TestHTMLSource_ExtractWithoutSkills(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingPage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	items := HTMLSource{ItemSelector: "div.job", TitleSelector: ".title", SkillsSelector: ".missing"}.extract(doc.Selection)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	for _, it := range items {
		if it.RequiredSkills == nil || len(it.RequiredSkills) != 0 {
			t.Fatalf("expected empty skill list, got %#v", it.RequiredSkills)
		}
		if it.CourseID != "" {
			t.Fatalf("course selector unset, got %q", it.CourseID)
		}
	}
}

func TestHTMLSource_Headless(t *testing.T) {
	found := false
	for _, bin := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome"} {
		if _, err := exec.LookPath(bin); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("no chrome binary in PATH")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><div id="root"></div><script>
			document.getElementById("root").innerHTML =
				'<div class="job"><h2>Rendered Role</h2><ul><li>Go, SQL</li></ul></div>';
		</script></body></html>`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := HTMLSource{
		URL:            srv.URL,
		ItemSelector:   "div.job",
		TitleSelector:  "h2",
		SkillsSelector: "li",
		Headless:       true,
	}.Fetch(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Rendered Role" || !reflect.DeepEqual(items[0].RequiredSkills, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected items %+v", items)
	}
}
