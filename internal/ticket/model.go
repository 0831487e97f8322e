package ticket

import "time"

// Entry is one signed row of the per-student ticket ledger. The balance is
// always SUM(quantity), never a stored counter.
type Entry struct {
	ID        int       `db:"id" json:"id"`
	StudentID int       `db:"student_id" json:"student_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Reason    string    `db:"reason" json:"reason"`
	BookingID *int      `db:"booking_id" json:"booking_id,omitempty"`
	PaymentID *string   `db:"payment_id" json:"payment_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PaymentTransaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	StudentID       int       `db:"student_id" json:"student_id"`
	AmountCents     int64     `db:"amount_cents" json:"amount_cents"`
	TicketCount     int       `db:"ticket_count" json:"ticket_count"`
	Provider        string    `db:"provider" json:"provider"`
	ProviderOrderID string    `db:"provider_order_id" json:"provider_order_id"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type BalanceResponse struct {
	StudentID *int `json:"student_id,omitempty"`
	Balance   int  `json:"balance"`
}

type AddTicketsRequest struct {
	StudentID int `json:"student_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type ResetTicketsRequest struct {
	StudentID int `json:"student_id" binding:"required"`
	Balance   int `json:"balance" binding:"gte=0"`
}

type PurchaseRequest struct {
	StudentID       int    `json:"student_id" binding:"required"`
	TicketCount     int    `json:"ticket_count" binding:"required,gt=0"`
	AmountCents     int64  `json:"amount_cents" binding:"required,gt=0"`
	ProviderOrderID string `json:"provider_order_id" binding:"required"`
}

type PurchaseParams struct {
	UserID          int
	StudentID       int
	AmountCents     int64
	TicketCount     int
	ProviderOrderID string
}
