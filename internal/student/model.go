package student

import "time"

// SchoolLevel values accepted for a student, used as the prefix of the
// combined subject tag (e.g. "elementary:math").
var SchoolLevels = []string{"elementary", "middle", "high"}

type Student struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	SchoolLevel string    `db:"school_level" json:"school_level"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateStudentRequest struct {
	Name        string `json:"name" binding:"required"`
	SchoolLevel string `json:"school_level" binding:"required,oneof=elementary middle high"`
}
