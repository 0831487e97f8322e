package tutor

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrTutorNotFound      = errors.New("tutor not found")
	ErrInvalidDate        = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidTimeSlot    = errors.New("invalid time slot")
	ErrInvalidSchoolLevel = errors.New("invalid school level")
	ErrMissingSubject     = errors.New("subject is required")
)

type Service interface {
	FindAvailableTutors(ctx context.Context, subject, date, timeSlot, schoolLevel string) ([]AvailableTutor, error)
	RegisterShifts(ctx context.Context, userID int, req RegisterShiftsRequest) ([]Shift, error)
	ListShifts(ctx context.Context, userID int, fromDate string) ([]Shift, error)
	ListShiftsByDate(ctx context.Context, userID int, date string) ([]Shift, error)
	CreateTutor(ctx context.Context, req CreateTutorRequest) (*Tutor, error)
	GetAllTutors(ctx context.Context) ([]Tutor, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validSchoolLevel(level string) bool {
	switch level {
	case "elementary", "middle", "high":
		return true
	}
	return false
}

// FindAvailableTutors matches open shifts on (date, timeSlot) against the
// combined school-level + subject tag in each tutor's subject list. All
// matches are returned, unranked.
func (s *service) FindAvailableTutors(ctx context.Context, subject, date, timeSlot, schoolLevel string) ([]AvailableTutor, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, ErrMissingSubject
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	if !IsValidTimeSlot(timeSlot) {
		return nil, ErrInvalidTimeSlot
	}
	if !validSchoolLevel(schoolLevel) {
		return nil, ErrInvalidSchoolLevel
	}

	tag := CombinedTag(schoolLevel, subject)

	shifts, err := s.repo.FindOpenShifts(ctx, date, timeSlot)
	if err != nil {
		return nil, err
	}

	matches := make([]AvailableTutor, 0, len(shifts))
	for _, shift := range shifts {
		t := Tutor{Subjects: shift.TutorSubjects}
		if !t.TeachesSubject(tag) {
			continue
		}
		matches = append(matches, AvailableTutor{
			TutorID: shift.TutorID,
			ShiftID: shift.ID,
			Name:    shift.TutorName,
			Subject: tag,
		})
	}

	return matches, nil
}

func (s *service) RegisterShifts(ctx context.Context, userID int, req RegisterShiftsRequest) ([]Shift, error) {
	tutor, err := s.repo.GetTutorByUserID(ctx, userID)
	if err != nil {
		return nil, ErrTutorNotFound
	}

	if !validDate(req.Date) {
		return nil, ErrInvalidDate
	}

	for _, slot := range req.Slots {
		if !IsValidTimeSlot(slot.TimeSlot) {
			return nil, ErrInvalidTimeSlot
		}
	}

	shifts := make([]Shift, 0, len(req.Slots))
	for _, slot := range req.Slots {
		shift, err := s.repo.UpsertShift(ctx, tutor.ID, req.Date, slot.TimeSlot, slot.SubjectTag, slot.IsAvailable)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}

	return shifts, nil
}

func (s *service) ListShifts(ctx context.Context, userID int, fromDate string) ([]Shift, error) {
	tutor, err := s.repo.GetTutorByUserID(ctx, userID)
	if err != nil {
		return nil, ErrTutorNotFound
	}

	if fromDate == "" {
		fromDate = time.Now().Format("2006-01-02")
	}
	if !validDate(fromDate) {
		return nil, ErrInvalidDate
	}

	return s.repo.GetShiftsByTutor(ctx, tutor.ID, fromDate)
}

func (s *service) ListShiftsByDate(ctx context.Context, userID int, date string) ([]Shift, error) {
	tutor, err := s.repo.GetTutorByUserID(ctx, userID)
	if err != nil {
		return nil, ErrTutorNotFound
	}

	if !validDate(date) {
		return nil, ErrInvalidDate
	}

	return s.repo.GetShiftsByTutorAndDate(ctx, tutor.ID, date)
}

func (s *service) CreateTutor(ctx context.Context, req CreateTutorRequest) (*Tutor, error) {
	subjects := strings.Join(req.Subjects, ",")
	return s.repo.CreateTutor(ctx, req.Name, req.UserID, subjects)
}

func (s *service) GetAllTutors(ctx context.Context) ([]Tutor, error) {
	return s.repo.GetAllTutors(ctx)
}
