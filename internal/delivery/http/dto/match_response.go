package dto

import "skill-match/internal/domain/matching"

// MatchResultResponse keeps the camelCase field names clients of the
// matching endpoint already depend on.
type MatchResultResponse struct {
	JobTitle       string   `json:"jobTitle"`
	CourseID       string   `json:"courseId"`
	RequiredSkills []string `json:"requiredSkills"`
	MatchedSkills  []string `json:"matchedSkills"`
	MissingSkills  []string `json:"missingSkills"`
	MatchPercent   int      `json:"matchPercent"`
}

type MatchingCoursesResponse struct {
	MatchingCourses []MatchResultResponse `json:"matching_courses"`
}

func NewMatchingCoursesResponse(results []matching.Result) MatchingCoursesResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, MatchResultResponse{
			JobTitle:       r.JobTitle,
			CourseID:       r.CourseID,
			RequiredSkills: nonNil(r.RequiredSkills),
			MatchedSkills:  nonNil(r.MatchedSkills),
			MissingSkills:  nonNil(r.MissingSkills),
			MatchPercent:   r.MatchPercent,
		})
	}
	return MatchingCoursesResponse{MatchingCourses: out}
}

type DemoSkillRequest struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
}

type DemoMatchRequest struct {
	Skills  []DemoSkillRequest `json:"skills"`
	JobType string             `json:"jobType"`
}

type DemoMatchResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
