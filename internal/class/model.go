package class

import (
	"fmt"
	"sort"
	"time"

	"rocketfist/internal/api"
)

type Class struct {
	ID                     string    `db:"id" json:"id"`
	GymID                  string    `db:"gym_id" json:"gym_id"`
	Name                   string    `db:"name" json:"name"`
	Description            *string   `db:"description" json:"description,omitempty"`
	Discipline             string    `db:"discipline" json:"discipline"`
	SkillLevel             string    `db:"skill_level" json:"skill_level"`
	DefaultDurationMinutes int       `db:"default_duration_minutes" json:"default_duration_minutes"`
	DefaultCoachUserID     *string   `db:"default_coach_user_id" json:"default_coach_user_id,omitempty"`
	DefaultCapacity        *int      `db:"default_capacity" json:"default_capacity,omitempty"`
	IsActive               bool      `db:"is_active" json:"is_active"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Class) Duration() time.Duration {
	return time.Duration(c.DefaultDurationMinutes) * time.Minute
}

// Pattern is one weekly slot of a class. DayOfWeek follows time.Weekday,
// 0 is Sunday.
type Pattern struct {
	ID        string `db:"id" json:"id"`
	ClassID   string `db:"class_id" json:"class_id"`
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"`
	Hour      int    `db:"hour" json:"hour"`
	Minute    int    `db:"minute" json:"minute"`
}

type ClassDetail struct {
	Class
	Patterns []Pattern `json:"patterns"`
}

type PatternInput struct {
	DayOfWeek int `json:"day_of_week" binding:"min=0,max=6" example:"1"`
	Hour      int `json:"hour" binding:"min=0,max=23" example:"18"`
	Minute    int `json:"minute" binding:"min=0,max=59" example:"0"`
}

func (p PatternInput) Validate() error {
	switch {
	case p.DayOfWeek < 0 || p.DayOfWeek > 6:
		return api.Errorf(api.ErrValidation, "day_of_week %d out of range [0,6]", p.DayOfWeek)
	case p.Hour < 0 || p.Hour > 23:
		return api.Errorf(api.ErrValidation, "hour %d out of range [0,23]", p.Hour)
	case p.Minute < 0 || p.Minute > 59:
		return api.Errorf(api.ErrValidation, "minute %d out of range [0,59]", p.Minute)
	}
	return nil
}

func (p PatternInput) String() string {
	return fmt.Sprintf("%s %02d:%02d", time.Weekday(p.DayOfWeek), p.Hour, p.Minute)
}

// NormalizePatterns validates every entry and returns the set sorted by
// weekday and time with duplicates removed.
func NormalizePatterns(in []PatternInput) ([]PatternInput, error) {
	seen := make(map[PatternInput]struct{}, len(in))
	out := make([]PatternInput, 0, len(in))
	for _, p := range in {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.Minute < b.Minute
	})
	return out, nil
}

type CreateClassRequest struct {
	Name                   string         `json:"name" binding:"required,max=200" example:"Beginner BJJ"`
	Description            *string        `json:"description,omitempty"`
	Discipline             string         `json:"discipline" binding:"required,max=50" example:"bjj"`
	SkillLevel             string         `json:"skill_level" binding:"required,max=50" example:"beginner"`
	DefaultDurationMinutes int            `json:"default_duration_minutes" binding:"required,gt=0,lte=480" example:"60"`
	DefaultCoachUserID     *string        `json:"default_coach_user_id,omitempty" binding:"omitempty,uuid"`
	DefaultCapacity        *int           `json:"default_capacity,omitempty" binding:"omitempty,gt=0"`
	Patterns               []PatternInput `json:"patterns,omitempty" binding:"omitempty,dive"`
}

// UpdateClassRequest changes only the fields that are present.
type UpdateClassRequest struct {
	Name                   *string `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Description            *string `json:"description,omitempty"`
	DefaultDurationMinutes *int    `json:"default_duration_minutes,omitempty" binding:"omitempty,gt=0,lte=480"`
	DefaultCoachUserID     *string `json:"default_coach_user_id,omitempty" binding:"omitempty,uuid"`
	DefaultCapacity        *int    `json:"default_capacity,omitempty" binding:"omitempty,gt=0"`
	IsActive               *bool   `json:"is_active,omitempty"`
}

type ReplacePatternsRequest struct {
	Patterns []PatternInput `json:"patterns" binding:"required,dive"`
}

type ClassURI struct {
	GymID   string `uri:"gymID" binding:"required,uuid"`
	ClassID string `uri:"classID" binding:"required,uuid"`
}
