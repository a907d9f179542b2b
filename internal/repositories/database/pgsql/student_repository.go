package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
)

type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a new repository for student reference data.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT student_id, name, is_active FROM students WHERE student_id = $1`
	var s domain.Student
	err := r.Pool.QueryRow(ctx, query, studentID).Scan(&s.StudentID, &s.Name, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find student by ID "+studentID, err)
	}
	return &s, nil
}
