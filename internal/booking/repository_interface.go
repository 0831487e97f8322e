package booking

import "context"

type Repository interface {
	Reserve(ctx context.Context, p ReserveParams) (*Booking, error)
	CancelWithRefund(ctx context.Context, bookingID int) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetDetailByID(ctx context.Context, id int) (*BookingWithDetails, error)
	GetByUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	SaveReport(ctx context.Context, bookingID int, content string) error
}
