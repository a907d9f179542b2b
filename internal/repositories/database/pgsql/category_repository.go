package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolbooks/school_finance_app/internal/models"
	"github.com/schoolbooks/school_finance_app/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for account categories.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `
	category_id, name, report_type, sequence,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*models.AccountCategory, error) {
	var m models.AccountCategory
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.ReportType,
		&m.Sequence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.AccountCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM account_categories WHERE category_id = $1`
	model, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}
	category := mapping.ToDomainCategory(*model)
	return &category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM account_categories ORDER BY sequence, name`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []domain.AccountCategory{}
	for rows.Next() {
		model, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(*model))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read category rows", err)
	}
	return categories, nil
}
