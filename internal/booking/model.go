package booking

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	ReportPending   = "pending"
	ReportCompleted = "completed"
)

type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	StudentID int       `db:"student_id" json:"student_id"`
	TutorID   int       `db:"tutor_id" json:"tutor_id"`
	ShiftID   int       `db:"shift_id" json:"shift_id"`
	Date      string    `db:"date" json:"date"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	Subject   string    `db:"subject" json:"subject"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	StudentName   string `db:"student_name" json:"student_name"`
	TutorName     string `db:"tutor_name" json:"tutor_name"`
	ReportStatus  string `db:"report_status" json:"report_status"`
	ReportContent string `db:"report_content" json:"report_content"`
}

type CreateBookingRequest struct {
	StudentID int    `json:"student_id" binding:"required"`
	TutorID   int    `json:"tutor_id" binding:"required"`
	ShiftID   int    `json:"shift_id" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
}

type ReportRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReserveParams carries one validated booking request into the
// single-transaction reserve.
type ReserveParams struct {
	UserID    int
	StudentID int
	TutorID   int
	ShiftID   int
	Subject   string
}
