package gym

import "time"

type Gym struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Location returns the gym's time zone, falling back to UTC when the stored
// name cannot be loaded.
func (g *Gym) Location() *time.Location {
	if g == nil || g.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CreateGymRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Slug     string `json:"slug" binding:"omitempty,max=200"`
	Timezone string `json:"timezone" binding:"required,timezone"`
}
