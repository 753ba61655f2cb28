package matching

import (
	"strings"

	"skill-match/internal/domain/job"
)

// DefaultThreshold is the minimum match percentage used when the caller does
// not choose one.
const DefaultThreshold = 60

type Result struct {
	JobTitle       string
	CourseID       string
	RequiredSkills []string
	MatchedSkills  []string
	MissingSkills  []string
	MatchPercent   int
}

// Match compares a user's skills with every posting of the catalog and
// returns the postings whose rounded match percentage is at least threshold.
// Results keep catalog order. Postings without required skills never match.
func Match(userSkills []string, jobs []job.Posting, threshold int) []Result {
	out := make([]Result, 0)
	if len(userSkills) == 0 || len(jobs) == 0 {
		return out
	}

	have := skillSet(userSkills)

	for _, j := range jobs {
		total := len(j.RequiredSkills)
		if total == 0 {
			continue
		}

		matched := make([]string, 0, total)
		missing := make([]string, 0)
		for _, req := range j.RequiredSkills {
			if _, ok := have[normalize(req)]; ok {
				matched = append(matched, req)
			} else {
				missing = append(missing, req)
			}
		}

		pct := percent(len(matched), total)
		if pct < threshold {
			continue
		}

		required := make([]string, total)
		copy(required, j.RequiredSkills)

		out = append(out, Result{
			JobTitle:       j.Title,
			CourseID:       j.CourseID,
			RequiredSkills: required,
			MatchedSkills:  matched,
			MissingSkills:  missing,
			MatchPercent:   pct,
		})
	}

	return out
}

// percent is round(100*part/total) with halves rounded up, in integers.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		k := normalize(s)
		if k == "" {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
