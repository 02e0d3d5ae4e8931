package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShowTime is a time of day a movie screens. ShowTime carries only the clock
// part; the date is the zero date.
type ShowTime struct {
	BaseSimple
	MovieID  uuid.UUID `db:"movie_id"`
	ShowTime time.Time `db:"show_time"`
}

func (s *ShowTime) Clock() string {
	return s.ShowTime.Format("15:04")
}
