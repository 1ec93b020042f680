package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rocketfist/internal/db"
	"rocketfist/internal/email"

	"github.com/jmoiron/sqlx"
)

const entryColumns = `ci.id, ci.class_id, ci.gym_id, ci.coach_user_id, ci.start_time, ci.end_time,
		ci.max_capacity, ci.status, ci.created_at, ci.updated_at,
		c.name AS class_name, c.discipline, c.skill_level`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListSchedule(ctx context.Context, gymID string, from, until time.Time) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM class_instances ci
		JOIN classes c ON c.id = ci.class_id
		WHERE ci.gym_id = $1
		  AND ci.start_time >= $2
		  AND ci.start_time < $3
		ORDER BY ci.start_time ASC, c.name ASC, ci.id ASC
	`

	entries := []Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, gymID, from, until); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListSummaries(ctx context.Context, gymID string, from, until time.Time) ([]Summary, error) {
	query := `
		SELECT ci.id, ci.class_id, c.name AS class_name, c.discipline,
			ci.start_time, ci.end_time, ci.max_capacity, ci.status,
			COUNT(r.id) FILTER (WHERE r.status IN ('reserved', 'checked_in')) AS reserved_count,
			COUNT(r.id) FILTER (WHERE r.status = 'checked_in') AS checked_in_count
		FROM class_instances ci
		JOIN classes c ON c.id = ci.class_id
		LEFT JOIN class_registrations r ON r.class_instance_id = ci.id
		WHERE ci.gym_id = $1
		  AND ci.start_time >= $2
		  AND ci.start_time < $3
		GROUP BY ci.id, c.name, c.discipline
		ORDER BY ci.start_time ASC, c.name ASC
	`

	summaries := []Summary{}
	if err := r.db.SelectContext(ctx, &summaries, query, gymID, from, until); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repository) UpsertSlots(ctx context.Context, classID, gymID string, coachUserID *string, slots []Slot) (int, error) {
	query := `
		INSERT INTO class_instances (class_id, gym_id, coach_user_id, start_time, end_time, max_capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		ON CONFLICT (class_id, start_time) DO NOTHING
	`

	created := 0
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, s := range slots {
			res, err := tx.ExecContext(ctx, query, classID, gymID, coachUserID, s.StartTime, s.EndTime, s.MaxCapacity)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			created += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *repository) CreateInstance(ctx context.Context, inst *Instance) (*Instance, error) {
	query := `
		INSERT INTO class_instances (class_id, gym_id, coach_user_id, start_time, end_time, max_capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		ON CONFLICT (class_id, start_time) DO NOTHING
		RETURNING id, class_id, gym_id, coach_user_id, start_time, end_time, max_capacity, status, created_at, updated_at
	`

	var created Instance
	if err := r.db.GetContext(ctx, &created, query,
		inst.ClassID, inst.GymID, inst.CoachUserID, inst.StartTime, inst.EndTime, inst.MaxCapacity,
	); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Transition(ctx context.Context, gymID, instanceID string, next Status) (*Entry, []email.Recipient, error) {
	lockQuery := `
		SELECT ` + entryColumns + `
		FROM class_instances ci
		JOIN classes c ON c.id = ci.class_id
		WHERE ci.id = $1 AND ci.gym_id = $2
		FOR UPDATE OF ci
	`
	updateQuery := `
		UPDATE class_instances
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	releaseQuery := `
		UPDATE class_registrations r
		SET status = 'cancelled', updated_at = NOW()
		FROM user_profiles u
		WHERE r.class_instance_id = $1
		  AND r.status = 'reserved'
		  AND u.id = r.user_id
		RETURNING u.email, COALESCE(u.full_name, '') AS full_name
	`

	var entry Entry
	var released []email.Recipient
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &entry, lockQuery, instanceID, gymID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInstanceNotFound
			}
			return err
		}

		if !entry.Status.CanTransition(next) {
			return invalidTransition(entry.Status, next)
		}

		if err := tx.GetContext(ctx, &entry.UpdatedAt, updateQuery, instanceID, next); err != nil {
			return err
		}
		entry.Status = next

		if next == StatusCancelled {
			if err := tx.SelectContext(ctx, &released, releaseQuery, instanceID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, released, nil
}
