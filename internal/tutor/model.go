package tutor

import (
	"strings"
	"time"
)

// TimeSlots is the fixed lesson grid. A shift occupies exactly one slot.
var TimeSlots = []string{"16:00-17:30", "17:40-19:10", "19:20-20:50"}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// CombinedTag joins school level and subject into the tag stored in a
// tutor's subject list, e.g. "elementary:math".
func CombinedTag(schoolLevel, subject string) string {
	return schoolLevel + ":" + subject
}

type Tutor struct {
	ID        int       `db:"id" json:"id"`
	UserID    *int      `db:"user_id" json:"user_id,omitempty"`
	Name      string    `db:"name" json:"name"`
	Subjects  string    `db:"subjects" json:"subjects"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SubjectList splits the stored comma-joined subject tags.
func (t *Tutor) SubjectList() []string {
	if t.Subjects == "" {
		return nil
	}
	parts := strings.Split(t.Subjects, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (t *Tutor) TeachesSubject(tag string) bool {
	for _, s := range t.SubjectList() {
		if s == tag {
			return true
		}
	}
	return false
}

type Shift struct {
	ID          int       `db:"id" json:"id"`
	TutorID     int       `db:"tutor_id" json:"tutor_id"`
	Date        string    `db:"date" json:"date"`
	TimeSlot    string    `db:"time_slot" json:"time_slot"`
	SubjectTag  string    `db:"subject_tag" json:"subject_tag"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ShiftWithTutor struct {
	Shift
	TutorName     string `db:"tutor_name" json:"tutor_name"`
	TutorSubjects string `db:"tutor_subjects" json:"tutor_subjects"`
}

// AvailableTutor is one row of the availability search result.
type AvailableTutor struct {
	TutorID int    `json:"tutor_id"`
	ShiftID int    `json:"shift_id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

type CreateTutorRequest struct {
	Name     string   `json:"name" binding:"required"`
	UserID   *int     `json:"user_id"`
	Subjects []string `json:"subjects"`
}

type ShiftInput struct {
	TimeSlot    string `json:"time_slot" binding:"required"`
	SubjectTag  string `json:"subject_tag"`
	IsAvailable bool   `json:"is_available"`
}

type RegisterShiftsRequest struct {
	Date  string       `json:"date" binding:"required"`
	Slots []ShiftInput `json:"slots" binding:"required,min=1"`
}
