package ticket

import "context"

type Repository interface {
	BalanceForStudent(ctx context.Context, studentID int) (int, error)
	BalanceForAccount(ctx context.Context, userID int) (int, error)
	Add(ctx context.Context, studentID, userID, quantity int, reason string) (*Entry, error)
	Reset(ctx context.Context, studentID, userID, targetBalance int) (*Entry, error)
	Purchase(ctx context.Context, p PurchaseParams) (*PaymentTransaction, error)
	GetEntries(ctx context.Context, userID, limit, offset int) ([]Entry, error)
}
