package tutor

import "context"

type Repository interface {
	CreateTutor(ctx context.Context, name string, userID *int, subjects string) (*Tutor, error)
	GetAllTutors(ctx context.Context) ([]Tutor, error)
	GetTutorByID(ctx context.Context, id int) (*Tutor, error)
	GetTutorByUserID(ctx context.Context, userID int) (*Tutor, error)
	UpsertShift(ctx context.Context, tutorID int, date, timeSlot, subjectTag string, isAvailable bool) (*Shift, error)
	GetShiftByID(ctx context.Context, id int) (*Shift, error)
	GetShiftsByTutor(ctx context.Context, tutorID int, fromDate string) ([]Shift, error)
	GetShiftsByTutorAndDate(ctx context.Context, tutorID int, date string) ([]Shift, error)
	FindOpenShifts(ctx context.Context, date, timeSlot string) ([]ShiftWithTutor, error)
}
