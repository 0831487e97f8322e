package student

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

func (r *repository) Create(ctx context.Context, userID int, name, schoolLevel string) (*Student, error) {
	query := `
		INSERT INTO students (user_id, name, school_level)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, school_level, created_at
	`

	var student Student
	err := r.db.GetContext(ctx, &student, query, userID, name, schoolLevel)
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Student, error) {
	query := `
		SELECT id, user_id, name, school_level, created_at
		FROM students
		WHERE id = $1
	`

	var student Student
	err := r.db.GetContext(ctx, &student, query, id)
	if err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *repository) GetByUser(ctx context.Context, userID int) ([]Student, error) {
	query := `
		SELECT id, user_id, name, school_level, created_at
		FROM students
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	var students []Student
	err := r.db.SelectContext(ctx, &students, query, userID)
	if err != nil {
		return nil, err
	}

	return students, nil
}
