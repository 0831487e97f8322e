package tutor

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTutor(ctx context.Context, name string, userID *int, subjects string) (*Tutor, error) {
	query := `
		INSERT INTO tutors (name, user_id, subjects)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, subjects, created_at
	`

	var tutor Tutor
	err := r.db.GetContext(ctx, &tutor, query, name, userID, subjects)
	if err != nil {
		return nil, err
	}

	return &tutor, nil
}

func (r *repository) GetAllTutors(ctx context.Context) ([]Tutor, error) {
	query := `
		SELECT id, user_id, name, subjects, created_at
		FROM tutors
		ORDER BY name ASC
	`

	var tutors []Tutor
	err := r.db.SelectContext(ctx, &tutors, query)
	if err != nil {
		return nil, err
	}

	return tutors, nil
}

func (r *repository) GetTutorByID(ctx context.Context, id int) (*Tutor, error) {
	query := `
		SELECT id, user_id, name, subjects, created_at
		FROM tutors
		WHERE id = $1
	`

	var tutor Tutor
	err := r.db.GetContext(ctx, &tutor, query, id)
	if err != nil {
		return nil, err
	}

	return &tutor, nil
}

func (r *repository) GetTutorByUserID(ctx context.Context, userID int) (*Tutor, error) {
	query := `
		SELECT id, user_id, name, subjects, created_at
		FROM tutors
		WHERE user_id = $1
	`

	var tutor Tutor
	err := r.db.GetContext(ctx, &tutor, query, userID)
	if err != nil {
		return nil, err
	}

	return &tutor, nil
}

func (r *repository) UpsertShift(ctx context.Context, tutorID int, date, timeSlot, subjectTag string, isAvailable bool) (*Shift, error) {
	query := `
		INSERT INTO tutor_shifts (tutor_id, date, time_slot, subject_tag, is_available)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tutor_id, date, time_slot)
		DO UPDATE SET subject_tag = EXCLUDED.subject_tag, is_available = EXCLUDED.is_available
		RETURNING id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at
	`

	var shift Shift
	err := r.db.GetContext(ctx, &shift, query, tutorID, date, timeSlot, subjectTag, isAvailable)
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

func (r *repository) GetShiftByID(ctx context.Context, id int) (*Shift, error) {
	query := `
		SELECT id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at
		FROM tutor_shifts
		WHERE id = $1
	`

	var shift Shift
	err := r.db.GetContext(ctx, &shift, query, id)
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

func (r *repository) GetShiftsByTutor(ctx context.Context, tutorID int, fromDate string) ([]Shift, error) {
	query := `
		SELECT id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at
		FROM tutor_shifts
		WHERE tutor_id = $1 AND date >= $2
		ORDER BY date ASC, time_slot ASC
	`

	var shifts []Shift
	err := r.db.SelectContext(ctx, &shifts, query, tutorID, fromDate)
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *repository) GetShiftsByTutorAndDate(ctx context.Context, tutorID int, date string) ([]Shift, error) {
	query := `
		SELECT id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at
		FROM tutor_shifts
		WHERE tutor_id = $1 AND date = $2
		ORDER BY time_slot ASC
	`

	var shifts []Shift
	err := r.db.SelectContext(ctx, &shifts, query, tutorID, date)
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *repository) FindOpenShifts(ctx context.Context, date, timeSlot string) ([]ShiftWithTutor, error) {
	query := `
		SELECT
			s.id,
			s.tutor_id,
			s.date::text AS date,
			s.time_slot,
			s.subject_tag,
			s.is_available,
			s.created_at,
			t.name AS tutor_name,
			t.subjects AS tutor_subjects
		FROM tutor_shifts s
		JOIN tutors t ON s.tutor_id = t.id
		WHERE s.date = $1 AND s.time_slot = $2 AND s.is_available = TRUE
		ORDER BY t.name ASC
	`

	var shifts []ShiftWithTutor
	err := r.db.SelectContext(ctx, &shifts, query, date, timeSlot)
	if err != nil {
		return nil, err
	}

	return shifts, nil
}
