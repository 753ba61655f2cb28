package repository

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/database"
	"skill-match/internal/domain/user"

	"github.com/google/uuid"
)

var ErrSkillRecordNotFound = errors.New("skill record not found")

// MergeFunc computes the list to store from the list currently stored.
type MergeFunc func(existing []string) []string

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (user.SkillRecord, error)
	ListAll(ctx context.Context) ([]user.SkillRecord, error)
	// Merge replaces the user's list with merge(current list) atomically.
	// The record is created on first use.
	Merge(ctx context.Context, userID uuid.UUID, merge MergeFunc) (user.SkillRecord, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (user.SkillRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills, updated_at FROM user_skill_records WHERE user_id = $1`,
		userID,
	)

	rec, err := scanSkillRecord(row)
	if err != nil {
		if isNoRows(err) {
			return user.SkillRecord{}, ErrSkillRecordNotFound
		}
		return user.SkillRecord{}, err
	}
	return rec, nil
}

func (r *PostgresUserSkillRepository) ListAll(ctx context.Context) ([]user.SkillRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, skills, updated_at FROM user_skill_records ORDER BY updated_at ASC, user_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.SkillRecord, 0)
	for rows.Next() {
		rec, err := scanSkillRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Merge(ctx context.Context, userID uuid.UUID, merge MergeFunc) (user.SkillRecord, error) {
	if merge == nil {
		return user.SkillRecord{}, fmt.Errorf("nil merge func")
	}

	var out user.SkillRecord
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		// Make sure a row exists so FOR UPDATE always has something to lock.
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_skill_records (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
			userID,
		); err != nil {
			return fmt.Errorf("ensure skill record: %w", err)
		}

		var existing []string
		row := tx.QueryRow(ctx, `SELECT skills FROM user_skill_records WHERE user_id = $1 FOR UPDATE`, userID)
		if err := row.Scan(&existing); err != nil {
			return fmt.Errorf("lock skill record: %w", err)
		}

		merged := merge(existing)
		if merged == nil {
			merged = []string{}
		}

		row = tx.QueryRow(ctx,
			`UPDATE user_skill_records SET skills = $2, updated_at = now()
			 WHERE user_id = $1
			 RETURNING user_id, skills, updated_at`,
			userID, merged,
		)
		rec, err := scanSkillRecord(row)
		if err != nil {
			return fmt.Errorf("update skill record: %w", err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return user.SkillRecord{}, err
	}
	return out, nil
}

func scanSkillRecord(row database.Row) (user.SkillRecord, error) {
	var rec user.SkillRecord
	if err := row.Scan(&rec.UserID, &rec.Skills, &rec.UpdatedAt); err != nil {
		return user.SkillRecord{}, err
	}
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	return rec, nil
}
