package seeder

import (
	"context"

	"skill-match/internal/database"
	"skill-match/internal/domain/job"
	"skill-match/internal/repository"
)

// CatalogSeeder fills an empty job catalog with the demo postings. A catalog
// that already holds postings is left alone.
type CatalogSeeder struct{}

func (CatalogSeeder) Name() string { return "catalog" }

func (CatalogSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "jobs",
		"title", "course_id", "required_skills", "company", "description", "job_type", "confidence_needed", "position",
	); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := repository.NewPostgresJobRepository(db)
	for _, p := range DemoCatalog() {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// DemoCatalog returns the postings used to bootstrap a fresh installation.
func DemoCatalog() []job.Posting {
	return []job.Posting{
		{
			Title:            "Frontend Developer Intern",
			CourseID:         "FE-101",
			Company:          "Innovate Inc.",
			Description:      "Work with our team to build user interfaces with React.",
			RequiredSkills:   []string{"React", "JavaScript", "CSS"},
			ConfidenceNeeded: 60,
			Type:             job.TypeRemote,
		},
		{
			Title:            "UI/UX Design Intern",
			CourseID:         "UX-101",
			Company:          "Creative Solutions",
			Description:      "Create wireframes, storyboards and user flows.",
			RequiredSkills:   []string{"Canva", "Figma"},
			ConfidenceNeeded: 80,
			Type:             job.TypeOnSite,
		},
		{
			Title:            "Data Analyst Intern",
			CourseID:         "DA-101",
			Company:          "DataDriven Co.",
			Description:      "Collect data, maintain databases and generate reports.",
			RequiredSkills:   []string{"Excel", "SQL", "Python"},
			ConfidenceNeeded: 60,
			Type:             job.TypeHybrid,
		},
		{
			Title:            "Social Media Manager",
			CourseID:         "SM-101",
			Company:          "Connectify",
			Description:      "Create text and video content and manage posts.",
			RequiredSkills:   []string{"Canva", "Marketing"},
			ConfidenceNeeded: 40,
			Type:             job.TypeRemote,
		},
		{
			Title:            "React Native Developer",
			CourseID:         "RN-201",
			Company:          "MobileFirst",
			Description:      "Build cross-platform mobile applications for iOS and Android.",
			RequiredSkills:   []string{"React", "JavaScript", "React Native"},
			ConfidenceNeeded: 80,
			Type:             job.TypeOnSite,
		},
	}
}
