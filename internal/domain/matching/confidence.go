package matching

import (
	"strings"

	"skill-match/internal/domain/job"
)

// RatedSkill is a skill with a self reported confidence percentage.
type RatedSkill struct {
	Name       string
	Confidence int
}

// JobTypeAll disables the job type filter of MatchConfidence.
const JobTypeAll = "All"

// MatchConfidence is the quick demo matcher: a posting qualifies when the
// user holds at least one of its required skills with a confidence of at
// least the posting's ConfidenceNeeded. It does not compute percentages and
// is unrelated to Match.
func MatchConfidence(skills []RatedSkill, jobs []job.Posting, jobType string) []job.Posting {
	out := make([]job.Posting, 0)
	if len(skills) == 0 {
		return out
	}

	conf := make(map[string]int, len(skills))
	for _, s := range skills {
		k := normalize(s.Name)
		if k == "" {
			continue
		}
		// a repeated skill keeps its last rating
		conf[k] = s.Confidence
	}

	jobType = strings.TrimSpace(jobType)
	filterType := jobType != "" && !strings.EqualFold(jobType, JobTypeAll)

	for _, j := range jobs {
		if filterType && !strings.EqualFold(j.Type, jobType) {
			continue
		}
		for _, req := range j.RequiredSkills {
			c, ok := conf[normalize(req)]
			if ok && c >= j.ConfidenceNeeded {
				out = append(out, j)
				break
			}
		}
	}
	return out
}
