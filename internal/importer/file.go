package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skill-match/internal/usecase"
)

// FileSource reads a jobs.json style catalog:
//
//	{"<title>": {"courseId": "...", "requiredSkills": ["..."]}, ...}
//
// Entries keep the order they have in the file.
type FileSource struct {
	Path string
}

type fileEntry struct {
	CourseID         string   `json:"courseId"`
	RequiredSkills   []string `json:"requiredSkills"`
	Company          string   `json:"company"`
	Description      string   `json:"description"`
	JobType          string   `json:"jobType"`
	ConfidenceNeeded int      `json:"confidenceNeeded"`
}

func (s FileSource) Name() string {
	return "file:" + s.Path
}

func (s FileSource) Fetch(ctx context.Context) ([]usecase.UpsertJobInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCatalog(f)
}

// DecodeCatalog decodes a title-keyed catalog object without losing key order.
func DecodeCatalog(r io.Reader) ([]usecase.UpsertJobInput, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("catalog must be a JSON object keyed by job title")
	}

	out := make([]usecase.UpsertJobInput, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read title: %w", err)
		}
		title, _ := tok.(string)

		var e fileEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode %q: %w", title, err)
		}
		out = append(out, usecase.UpsertJobInput{
			Title:            title,
			CourseID:         e.CourseID,
			RequiredSkills:   e.RequiredSkills,
			Company:          e.Company,
			Description:      e.Description,
			Type:             e.JobType,
			ConfidenceNeeded: e.ConfidenceNeeded,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read catalog end: %w", err)
	}
	return out, nil
}
