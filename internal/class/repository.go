package class

import (
	"context"

	"rocketfist/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const classColumns = `id, gym_id, name, description, discipline, skill_level,
		default_duration_minutes, default_coach_user_id, default_capacity,
		is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByGym(ctx context.Context, gymID string) ([]Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE gym_id = $1
		ORDER BY name ASC
	`

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query, gymID); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) GetByID(ctx context.Context, gymID, classID string) (*Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE id = $1 AND gym_id = $2
	`

	var c Class
	if err := r.db.GetContext(ctx, &c, query, classID, gymID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, gymID string, req CreateClassRequest, patterns []PatternInput) (*ClassDetail, error) {
	query := `
		INSERT INTO classes (gym_id, name, description, discipline, skill_level,
			default_duration_minutes, default_coach_user_id, default_capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + classColumns

	var detail ClassDetail
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &detail.Class, query,
			gymID, req.Name, req.Description, req.Discipline, req.SkillLevel,
			req.DefaultDurationMinutes, req.DefaultCoachUserID, req.DefaultCapacity,
		); err != nil {
			return err
		}

		inserted, err := insertPatterns(ctx, tx, detail.ID, patterns)
		if err != nil {
			return err
		}
		detail.Patterns = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) Update(ctx context.Context, gymID, classID string, req UpdateClassRequest) (*Class, error) {
	query := `
		UPDATE classes SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			default_duration_minutes = COALESCE($5, default_duration_minutes),
			default_coach_user_id = COALESCE($6, default_coach_user_id),
			default_capacity = COALESCE($7, default_capacity),
			is_active = COALESCE($8, is_active),
			updated_at = NOW()
		WHERE id = $1 AND gym_id = $2
		RETURNING ` + classColumns

	var c Class
	if err := r.db.GetContext(ctx, &c, query,
		classID, gymID, req.Name, req.Description, req.DefaultDurationMinutes,
		req.DefaultCoachUserID, req.DefaultCapacity, req.IsActive,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListPatterns(ctx context.Context, classIDs ...string) ([]Pattern, error) {
	query := `
		SELECT id, class_id, day_of_week, hour, minute
		FROM class_schedule_patterns
		WHERE class_id = ANY($1)
		ORDER BY class_id, day_of_week, hour, minute
	`

	patterns := []Pattern{}
	if len(classIDs) == 0 {
		return patterns, nil
	}
	if err := r.db.SelectContext(ctx, &patterns, query, pq.Array(classIDs)); err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *repository) ReplacePatterns(ctx context.Context, classID string, patterns []PatternInput) ([]Pattern, error) {
	var out []Pattern
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM class_schedule_patterns WHERE class_id = $1`, classID); err != nil {
			return err
		}

		inserted, err := insertPatterns(ctx, tx, classID, patterns)
		if err != nil {
			return err
		}
		out = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListExpandable(ctx context.Context) ([]Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes c
		WHERE c.is_active
		  AND EXISTS (SELECT 1 FROM class_schedule_patterns p WHERE p.class_id = c.id)
		ORDER BY c.gym_id, c.name
	`

	classes := []Class{}
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, err
	}
	return classes, nil
}

func insertPatterns(ctx context.Context, tx *sqlx.Tx, classID string, patterns []PatternInput) ([]Pattern, error) {
	query := `
		INSERT INTO class_schedule_patterns (class_id, day_of_week, hour, minute)
		VALUES ($1, $2, $3, $4)
		RETURNING id, class_id, day_of_week, hour, minute
	`

	out := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		var inserted Pattern
		if err := tx.GetContext(ctx, &inserted, query, classID, p.DayOfWeek, p.Hour, p.Minute); err != nil {
			return nil, err
		}
		out = append(out, inserted)
	}
	return out, nil
}
