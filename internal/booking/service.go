package booking

import (
	"context"
	"errors"

	"tutorslot/internal/logger"
	"tutorslot/internal/metrics"
	"tutorslot/internal/student"
	"tutorslot/internal/tutor"
	"tutorslot/internal/user"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrNotYourStudent   = errors.New("student does not belong to this account")
	ErrNotOwner         = errors.New("not the owner of this booking")
	ErrNotYourLesson    = errors.New("booking does not belong to this tutor")
	ErrBookingCancelled = errors.New("booking is cancelled")
	ErrReportNotReady   = errors.New("lesson report is not completed yet")
)

// Notifier is the best-effort email boundary. Failures are logged and never
// change a booking outcome.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, studentName, tutorName, subject, date, timeSlot string) error
	SendBookingCancellation(ctx context.Context, to, name, studentName, tutorName, subject, date, timeSlot string) error
	SendReportReady(ctx context.Context, to, name, studentName, subject, date string) error
}

type Service interface {
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) error
	GetUserBookings(ctx context.Context, userID int) ([]BookingWithDetails, error)
	GetBooking(ctx context.Context, userID, bookingID int) (*BookingWithDetails, error)
	SaveReport(ctx context.Context, tutorUserID, bookingID int, content string) error
	ReportPDF(ctx context.Context, userID, bookingID int) ([]byte, error)
}

type service struct {
	repo     Repository
	students student.Repository
	tutors   tutor.Repository
	users    user.Repository
	notifier Notifier
}

func NewService(
	repo Repository,
	students student.Repository,
	tutors tutor.Repository,
	users user.Repository,
	notifier Notifier,
) Service {
	return &service{
		repo:     repo,
		students: students,
		tutors:   tutors,
		users:    users,
		notifier: notifier,
	}
}

func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	st, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if st.UserID != userID {
		return nil, ErrNotYourStudent
	}

	booking, err := s.repo.Reserve(ctx, ReserveParams{
		UserID:    userID,
		StudentID: req.StudentID,
		TutorID:   req.TutorID,
		ShiftID:   req.ShiftID,
		Subject:   req.Subject,
	})
	if err != nil {
		metrics.RecordBooking("rejected")
		return nil, err
	}

	metrics.RecordBooking("confirmed")
	metrics.RecordTicketEntry("booking")

	s.notifyConfirmation(ctx, booking, st.Name)

	return booking, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}

	cancelled, err := s.repo.CancelWithRefund(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	metrics.RecordBookingCancellation()
	metrics.RecordTicketEntry("refund")

	s.notifyCancellation(ctx, cancelled)

	return nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID int) (*BookingWithDetails, error) {
	booking, err := s.repo.GetDetailByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if booking.UserID != userID && !s.isBookingTutor(ctx, userID, booking.TutorID) {
		return nil, ErrNotOwner
	}

	return booking, nil
}

func (s *service) SaveReport(ctx context.Context, tutorUserID, bookingID int, content string) error {
	booking, err := s.repo.GetDetailByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if !s.isBookingTutor(ctx, tutorUserID, booking.TutorID) {
		return ErrNotYourLesson
	}

	if booking.Status == StatusCancelled {
		return ErrBookingCancelled
	}

	if err := s.repo.SaveReport(ctx, bookingID, content); err != nil {
		return err
	}

	metrics.RecordLessonReportCompleted()

	if parent, err := s.users.FindByID(ctx, booking.UserID); err == nil {
		if err := s.notifier.SendReportReady(ctx, parent.Email, parent.Name, booking.StudentName, booking.Subject, booking.Date); err != nil {
			logger.Errorf("Failed to queue report-ready email for booking %d: %v", bookingID, err)
		}
	}

	return nil
}

func (s *service) ReportPDF(ctx context.Context, userID, bookingID int) ([]byte, error) {
	booking, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ReportStatus != ReportCompleted {
		return nil, ErrReportNotReady
	}

	return renderReportPDF(booking)
}

func (s *service) isBookingTutor(ctx context.Context, userID, tutorID int) bool {
	t, err := s.tutors.GetTutorByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return t.ID == tutorID
}

func (s *service) notifyConfirmation(ctx context.Context, b *Booking, studentName string) {
	parent, err := s.users.FindByID(ctx, b.UserID)
	if err != nil {
		logger.Errorf("Booking %d confirmed but payer lookup failed: %v", b.ID, err)
		return
	}

	tutorName := ""
	if t, err := s.tutors.GetTutorByID(ctx, b.TutorID); err == nil {
		tutorName = t.Name
	}

	if err := s.notifier.SendBookingConfirmation(ctx, parent.Email, parent.Name, studentName, tutorName, b.Subject, b.Date, b.TimeSlot); err != nil {
		logger.Errorf("Failed to queue confirmation email for booking %d: %v", b.ID, err)
	}
}

func (s *service) notifyCancellation(ctx context.Context, b *Booking) {
	parent, err := s.users.FindByID(ctx, b.UserID)
	if err != nil {
		logger.Errorf("Booking %d cancelled but payer lookup failed: %v", b.ID, err)
		return
	}

	studentName := ""
	if st, err := s.students.GetByID(ctx, b.StudentID); err == nil {
		studentName = st.Name
	}

	tutorName := ""
	if t, err := s.tutors.GetTutorByID(ctx, b.TutorID); err == nil {
		tutorName = t.Name
	}

	if err := s.notifier.SendBookingCancellation(ctx, parent.Email, parent.Name, studentName, tutorName, b.Subject, b.Date, b.TimeSlot); err != nil {
		logger.Errorf("Failed to queue cancellation email for booking %d: %v", b.ID, err)
	}
}
