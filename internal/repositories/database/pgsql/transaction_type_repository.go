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

type PgxTransactionTypeRepository struct {
	BaseRepository
}

// newPgxTransactionTypeRepository creates a new repository for the transaction
// type registry.
func newPgxTransactionTypeRepository(pool *pgxpool.Pool) portsrepo.TransactionTypeRepositoryFacade {
	return &PgxTransactionTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionTypeRepositoryFacade = (*PgxTransactionTypeRepository)(nil)

const transactionTypeColumns = `
	transaction_type_id, code, name, category, is_system, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const roleInsertQuery = `
	INSERT INTO transaction_accounts (
		transaction_account_id, transaction_type_id, role, label, direction,
		account_type_filter, chart_of_account_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveTransactionType inserts the header and its role templates atomically.
func (r *PgxTransactionTypeRepository) SaveTransactionType(ctx context.Context, tt domain.TransactionType) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	model := mapping.ToModelTransactionType(tt)
	headerQuery := `
		INSERT INTO transaction_types (
			transaction_type_id, code, name, category, is_system, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, headerQuery,
		model.TransactionTypeID,
		model.Code,
		model.Name,
		model.Category,
		model.IsSystem,
		model.IsActive,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction type "+model.TransactionTypeID, err)
	}

	if err := insertRoles(ctx, tx, tt.Accounts); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertRoles(ctx context.Context, tx pgx.Tx, roles []domain.TransactionAccount) error {
	batch := &pgx.Batch{}
	for _, role := range roles {
		model := mapping.ToModelTransactionAccount(role)
		batch.Queue(roleInsertQuery,
			model.TransactionAccountID,
			model.TransactionTypeID,
			model.Role,
			model.Label,
			model.Direction,
			model.AccountTypeFilter,
			model.ChartOfAccountID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert transaction account roles", err)
	}
	return nil
}

func scanTransactionType(row pgx.Row) (*models.TransactionType, error) {
	var m models.TransactionType
	err := row.Scan(
		&m.TransactionTypeID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.IsSystem,
		&m.IsActive,
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

func (r *PgxTransactionTypeRepository) FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE transaction_type_id = $1`
	return r.findOne(ctx, query, transactionTypeID)
}

func (r *PgxTransactionTypeRepository) FindTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE code = $1`
	return r.findOne(ctx, query, code)
}

func (r *PgxTransactionTypeRepository) findOne(ctx context.Context, query string, arg any) (*domain.TransactionType, error) {
	model, err := scanTransactionType(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction type", err)
	}

	tt := mapping.ToDomainTransactionType(*model)
	roles, err := r.findRoles(ctx, tt.TransactionTypeID)
	if err != nil {
		return nil, err
	}
	tt.Accounts = roles
	return &tt, nil
}

func (r *PgxTransactionTypeRepository) findRoles(ctx context.Context, transactionTypeID string) ([]domain.TransactionAccount, error) {
	query := `
		SELECT transaction_account_id, transaction_type_id, role, label, direction,
		       account_type_filter, chart_of_account_id
		FROM transaction_accounts
		WHERE transaction_type_id = $1
		ORDER BY direction DESC, role;
	`
	rows, err := r.Pool.Query(ctx, query, transactionTypeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query roles for transaction type "+transactionTypeID, err)
	}
	defer rows.Close()

	roles := []domain.TransactionAccount{}
	for rows.Next() {
		var m models.TransactionAccount
		err := rows.Scan(
			&m.TransactionAccountID,
			&m.TransactionTypeID,
			&m.Role,
			&m.Label,
			&m.Direction,
			&m.AccountTypeFilter,
			&m.ChartOfAccountID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction account role", err)
		}
		roles = append(roles, mapping.ToDomainTransactionAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction account roles", err)
	}
	return roles, nil
}

func (r *PgxTransactionTypeRepository) ListTransactionTypes(ctx context.Context) ([]domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types ORDER BY code`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction types", err)
	}
	defer rows.Close()

	types := []domain.TransactionType{}
	byID := map[string]int{}
	for rows.Next() {
		model, err := scanTransactionType(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction type row", err)
		}
		types = append(types, mapping.ToDomainTransactionType(*model))
		byID[model.TransactionTypeID] = len(types) - 1
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction type rows", err)
	}
	if len(types) == 0 {
		return types, nil
	}

	roleQuery := `
		SELECT transaction_account_id, transaction_type_id, role, label, direction,
		       account_type_filter, chart_of_account_id
		FROM transaction_accounts
		ORDER BY transaction_type_id, direction DESC, role;
	`
	roleRows, err := r.Pool.Query(ctx, roleQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction account roles", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var m models.TransactionAccount
		err := roleRows.Scan(
			&m.TransactionAccountID,
			&m.TransactionTypeID,
			&m.Role,
			&m.Label,
			&m.Direction,
			&m.AccountTypeFilter,
			&m.ChartOfAccountID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction account role", err)
		}
		if i, ok := byID[m.TransactionTypeID]; ok {
			types[i].Accounts = append(types[i].Accounts, mapping.ToDomainTransactionAccount(m))
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction account roles", err)
	}
	return types, nil
}

// UpdateTransactionType rewrites the header; when replaceAccounts is set the
// role templates are replaced wholesale inside the same transaction.
func (r *PgxTransactionTypeRepository) UpdateTransactionType(ctx context.Context, tt domain.TransactionType, replaceAccounts bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	model := mapping.ToModelTransactionType(tt)
	headerQuery := `
		UPDATE transaction_types
		SET name = $2, category = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_type_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		model.TransactionTypeID,
		model.Name,
		model.Category,
		model.IsActive,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction type "+model.TransactionTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if replaceAccounts {
		if _, err := tx.Exec(ctx, `DELETE FROM transaction_accounts WHERE transaction_type_id = $1`, tt.TransactionTypeID); err != nil {
			return apperrors.NewAppError(500, "failed to clear roles for transaction type "+tt.TransactionTypeID, err)
		}
		if err := insertRoles(ctx, tx, tt.Accounts); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteTransactionType removes the type and its roles. A foreign key
// violation means journal entries reference the type; that surfaces as
// ErrConflict so the service can deactivate instead.
func (r *PgxTransactionTypeRepository) DeleteTransactionType(ctx context.Context, transactionTypeID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_accounts WHERE transaction_type_id = $1`, transactionTypeID); err != nil {
		return apperrors.NewAppError(500, "failed to delete roles for transaction type "+transactionTypeID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transaction_types WHERE transaction_type_id = $1`, transactionTypeID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete transaction type "+transactionTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
