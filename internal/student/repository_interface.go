package student

import "context"

type Repository interface {
	Create(ctx context.Context, userID int, name, schoolLevel string) (*Student, error)
	GetByID(ctx context.Context, id int) (*Student, error)
	GetByUser(ctx context.Context, userID int) ([]Student, error)
}
