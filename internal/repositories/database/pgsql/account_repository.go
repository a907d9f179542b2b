package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolbooks/school_finance_app/internal/models"
	"github.com/schoolbooks/school_finance_app/internal/utils/mapping"
)

const accountColumns = `
	account_id, code, name, description, account_type, normal_balance,
	is_posting, is_cash, is_active, parent_id, category_id, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	model := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (
			account_id, code, name, description, account_type, normal_balance,
			is_posting, is_cash, is_active, parent_id, category_id, deleted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		model.AccountID,
		model.Code,
		model.Name,
		model.Description,
		model.AccountType,
		model.NormalBalance,
		model.IsPosting,
		model.IsCash,
		model.IsActive,
		model.ParentID,
		model.CategoryID,
		model.DeletedAt,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+model.AccountID, err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.AccountType,
		&m.NormalBalance,
		&m.IsPosting,
		&m.IsCash,
		&m.IsActive,
		&m.ParentID,
		&m.CategoryID,
		&m.DeletedAt,
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

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string, includeDeleted bool) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	model, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	account := mapping.ToDomainAccount(*model)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) AND deleted_at IS NULL`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		model, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		result[model.AccountID] = mapping.ToDomainAccount(*model)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return result, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE deleted_at IS NULL ORDER BY code`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		model, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *model)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *PgxAccountRepository) ListRootAccountCodes(ctx context.Context) ([]string, error) {
	query := `SELECT code FROM accounts WHERE parent_id IS NULL AND deleted_at IS NULL`
	return r.listCodes(ctx, query)
}

func (r *PgxAccountRepository) ListChildAccountCodes(ctx context.Context, parentID string) ([]string, error) {
	query := `SELECT code FROM accounts WHERE parent_id = $1 AND deleted_at IS NULL`
	return r.listCodes(ctx, query, parentID)
}

func (r *PgxAccountRepository) listCodes(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account codes", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account code", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account code rows", err)
	}
	return codes, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	model := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, description = $3, is_active = $4, is_cash = $5,
		    parent_id = $6, category_id = $7, last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		model.AccountID,
		model.Name,
		model.Description,
		model.IsActive,
		model.IsCash,
		model.ParentID,
		model.CategoryID,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+model.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE parent_id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check children of account "+accountID, err)
	}
	return exists, nil
}
