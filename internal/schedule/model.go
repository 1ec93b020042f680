package schedule

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// CanTransition reports whether an instance may move from s to next.
// Only scheduled instances change state.
func (s Status) CanTransition(next Status) bool {
	return s == StatusScheduled && (next == StatusCancelled || next == StatusCompleted)
}

type Instance struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	GymID       string    `db:"gym_id" json:"gym_id"`
	CoachUserID *string   `db:"coach_user_id" json:"coach_user_id,omitempty"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	MaxCapacity int       `db:"max_capacity" json:"max_capacity"`
	Status      Status    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Entry is an instance joined with its class template.
type Entry struct {
	Instance
	ClassName  string `db:"class_name" json:"class_name"`
	Discipline string `db:"discipline" json:"discipline"`
	SkillLevel string `db:"skill_level" json:"skill_level"`
}

// Summary is one row of the day view with live registration counts.
type Summary struct {
	ID             string    `db:"id" json:"id"`
	ClassID        string    `db:"class_id" json:"class_id"`
	ClassName      string    `db:"class_name" json:"class_name"`
	Discipline     string    `db:"discipline" json:"discipline"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
	MaxCapacity    int       `db:"max_capacity" json:"max_capacity"`
	Status         Status    `db:"status" json:"status"`
	ReservedCount  int       `db:"reserved_count" json:"reserved_count"`
	CheckedInCount int       `db:"checked_in_count" json:"checked_in_count"`
}

// Slot is a concrete occurrence produced by expansion, not yet stored.
type Slot struct {
	StartTime   time.Time
	EndTime     time.Time
	MaxCapacity int
}

type ScheduleQuery struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02" example:"2024-05-13"`
	End   string `form:"end" binding:"required,datetime=2006-01-02" example:"2024-05-19"`
}

type ExpandRequest struct {
	// Week offsets relative to the anchor week. Defaults to the current
	// week plus the configured look-ahead.
	Weeks []int `json:"weeks,omitempty" binding:"omitempty,max=104,dive,min=-52,max=52" example:"-1,0,1"`
	// Anchor overrides "now" as the reference date.
	Anchor *time.Time `json:"anchor,omitempty"`
}

type ExpandResult struct {
	ClassID   string `json:"class_id"`
	Requested int    `json:"requested"`
	Created   int    `json:"created"`
	Existing  int    `json:"existing"`
}

// RunSummary reports one pass of the rolling expansion job.
type RunSummary struct {
	Classes  int `json:"classes"`
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Failed   int `json:"failed"`
}

type CreateInstanceRequest struct {
	ClassID     string    `json:"class_id" binding:"required,uuid"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	CoachUserID *string   `json:"coach_user_id,omitempty" binding:"omitempty,uuid"`
	MaxCapacity *int      `json:"max_capacity,omitempty" binding:"omitempty,gt=0"`
}

type InstanceURI struct {
	GymID      string `uri:"gymID" binding:"required,uuid"`
	InstanceID string `uri:"instanceID" binding:"required,uuid"`
}
