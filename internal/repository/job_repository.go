package repository

import (
	"context"
	"fmt"

	"skill-match/internal/database"
	"skill-match/internal/domain/job"
)

var ErrJobNotFound = job.ErrNotFound

// JobRepository stores the job catalog. List returns postings in insertion
// order; updating a posting keeps its place.
type JobRepository interface {
	List(ctx context.Context) ([]job.Posting, error)
	GetByTitle(ctx context.Context, title string) (job.Posting, error)
	Upsert(ctx context.Context, p job.Posting) (created bool, err error)
	Delete(ctx context.Context, title string) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `title, course_id, required_skills, company, description, job_type, confidence_needed, updated_at`

func (r *PostgresJobRepository) List(ctx context.Context) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) GetByTitle(ctx context.Context, title string) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE title = $1`, title)
	p, err := scanPosting(row)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) Upsert(ctx context.Context, p job.Posting) (bool, error) {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	var inserted bool
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, course_id, required_skills, company, description, job_type, confidence_needed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (title) DO UPDATE SET
			course_id = EXCLUDED.course_id,
			required_skills = EXCLUDED.required_skills,
			company = EXCLUDED.company,
			description = EXCLUDED.description,
			job_type = EXCLUDED.job_type,
			confidence_needed = EXCLUDED.confidence_needed,
			updated_at = now()
		 RETURNING (xmax = 0)`,
		p.Title, p.CourseID, skills, p.Company, p.Description, p.Type, p.ConfidenceNeeded,
	)
	if err := row.Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert job %q: %w", p.Title, err)
	}
	return inserted, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, title string) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE title = $1`, title)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func scanPosting(row database.Row) (job.Posting, error) {
	var p job.Posting
	if err := row.Scan(
		&p.Title,
		&p.CourseID,
		&p.RequiredSkills,
		&p.Company,
		&p.Description,
		&p.Type,
		&p.ConfidenceNeeded,
		&p.UpdatedAt,
	); err != nil {
		return job.Posting{}, err
	}
	if p.RequiredSkills == nil {
		p.RequiredSkills = []string{}
	}
	return p, nil
}
