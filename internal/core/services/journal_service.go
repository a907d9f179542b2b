package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
	"github.com/schoolbooks/school_finance_app/internal/utils/accounting"
)

const (
	// referenceRetryLimit bounds retries when two posts race for the same
	// per-day reference sequence.
	referenceRetryLimit = 3

	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// journalService is the posting engine: it expands transaction type templates
// into balanced journal entries and guards the ledger's immutability.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	typeRepo    portsrepo.TransactionTypeRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	typeRepo portsrepo.TransactionTypeRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	studentRepo portsrepo.StudentRepositoryFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		typeRepo:    typeRepo,
		accountRepo: accountRepo,
		studentRepo: studentRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, creatorUserID string) (*domain.JournalEntry, error) {
	transactionDate, err := req.ParsedDate()
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid transactionDate %q", req.TransactionDate))
	}

	tt, err := s.typeRepo.FindTransactionTypeByCode(ctx, req.TransactionTypeCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction type %q not found", req.TransactionTypeCode))
		}
		return nil, err
	}
	if !tt.IsActive {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction type %q is inactive", req.TransactionTypeCode))
	}

	roleAccounts, err := s.resolveRoleAccounts(ctx, tt, req.RoleAccounts)
	if err != nil {
		return nil, err
	}
	roleAmounts, err := resolveRoleAmounts(tt, req.Amount, req.RoleAmounts)
	if err != nil {
		return nil, err
	}

	if req.StudentID != nil {
		if _, err := s.studentRepo.FindStudentByID(ctx, *req.StudentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("student %s not found", *req.StudentID))
			}
			return nil, err
		}
	}

	now := time.Now()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	lines := make([]domain.JournalLine, len(tt.Accounts))
	for i, role := range tt.Accounts {
		lines[i] = domain.JournalLine{
			JournalLineID:    uuid.NewString(),
			JournalEntryID:   entryID,
			ChartOfAccountID: roleAccounts[role.Role].AccountID,
			Direction:        role.Direction,
			Amount:           roleAmounts[role.Role],
			Description:      role.Label,
			AuditFields:      audit,
		}
	}

	total, err := accounting.ValidateBalanced(lines)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	entry := domain.JournalEntry{
		JournalEntryID:    entryID,
		TransactionTypeID: &tt.TransactionTypeID,
		TransactionDate:   transactionDate,
		Description:       req.Description,
		Status:            domain.Posted,
		TotalAmount:       total,
		StudentID:         req.StudentID,
		ExternalReference: req.ExternalReference,
		AuditFields:       audit,
	}

	// The repository allocates the per-day reference number under a row lock.
	// A collision still slips through when the day has no entries yet (there
	// is no row to lock), so retry a bounded number of times.
	var saved *domain.JournalEntry
	for attempt := 1; attempt <= referenceRetryLimit; attempt++ {
		saved, err = s.journalRepo.SaveJournalEntry(ctx, entry, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "failed to save journal entry", slog.String("journal_entry_id", entryID))
			return nil, err
		}
		s.LogDebug(ctx, "reference number collision, retrying",
			slog.String("journal_entry_id", entryID),
			slog.Int("attempt", attempt))
	}
	if err != nil {
		return nil, apperrors.NewAppError(409, "could not allocate a reference number", apperrors.ErrConflict)
	}

	saved.Lines = lines
	s.LogInfo(ctx, "journal entry posted",
		slog.String("journal_entry_id", saved.JournalEntryID),
		slog.String("reference_number", saved.ReferenceNumber),
		slog.String("transaction_type", tt.Code))
	return saved, nil
}

// resolveRoleAccounts maps every role of the type to a concrete posting
// account: the role's fixed account, or the caller-supplied one for dynamic
// roles.
func (s *journalService) resolveRoleAccounts(ctx context.Context, tt *domain.TransactionType, overrides map[string]string) (map[string]domain.Account, error) {
	if len(tt.Accounts) < 2 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("transaction type %q has fewer than two roles", tt.Code))
	}

	ids := make([]string, 0, len(tt.Accounts))
	roleToID := make(map[string]string, len(tt.Accounts))
	for _, role := range tt.Accounts {
		var accountID string
		switch {
		case role.ChartOfAccountID != nil:
			accountID = *role.ChartOfAccountID
		case overrides[role.Role] != "":
			accountID = overrides[role.Role]
		default:
			return nil, apperrors.NewValidationError(fmt.Sprintf("role %q requires an account", role.Role))
		}
		roleToID[role.Role] = accountID
		ids = append(ids, accountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]domain.Account, len(tt.Accounts))
	for _, role := range tt.Accounts {
		accountID := roleToID[role.Role]
		account, ok := accounts[accountID]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s for role %q not found", accountID, role.Role))
		}
		if !account.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s for role %q is inactive", accountID, role.Role))
		}
		if !account.IsPosting {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account %s for role %q is not a posting account", accountID, role.Role))
		}
		if role.AccountTypeFilter != nil && account.AccountType != *role.AccountTypeFilter {
			return nil, apperrors.NewValidationError(fmt.Sprintf("role %q requires an account of type %s", role.Role, *role.AccountTypeFilter))
		}
		resolved[role.Role] = account
	}
	return resolved, nil
}

// resolveRoleAmounts assigns an amount to every role. A scalar amount is only
// meaningful for the one-debit/one-credit template shape; larger templates
// need an explicit per-role breakdown.
func resolveRoleAmounts(tt *domain.TransactionType, amount *decimal.Decimal, roleAmounts map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if amount != nil && len(roleAmounts) > 0 {
		return nil, apperrors.NewValidationError("supply either amount or roleAmounts, not both")
	}

	resolved := make(map[string]decimal.Decimal, len(tt.Accounts))
	if amount != nil {
		if len(tt.Accounts) != 2 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("transaction type %q has %d roles; a per-role amount breakdown is required", tt.Code, len(tt.Accounts)))
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("amount must be positive")
		}
		for _, role := range tt.Accounts {
			resolved[role.Role] = *amount
		}
		return resolved, nil
	}

	if len(roleAmounts) == 0 {
		return nil, apperrors.NewValidationError("amount or roleAmounts is required")
	}
	for _, role := range tt.Accounts {
		roleAmount, ok := roleAmounts[role.Role]
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("missing amount for role %q", role.Role))
		}
		if roleAmount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("amount for role %q must be positive", role.Role))
		}
		resolved[role.Role] = roleAmount
	}
	return resolved, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", journalEntryID))
		}
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByJournalEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}
	return s.journalRepo.ListJournalEntries(ctx, limit, nextToken)
}

func (s *journalService) VoidJournalEntry(ctx context.Context, journalEntryID string, voiderUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.Void:
		return nil, apperrors.ErrAlreadyVoided
	case domain.Draft:
		return nil, apperrors.ErrNotPosted
	}

	now := time.Now()
	voided, err := s.journalRepo.MarkJournalEntryVoid(ctx, journalEntryID, voiderUserID, now)
	if err != nil {
		s.LogError(ctx, err, "failed to void journal entry", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}
	if !voided {
		// Lost a race: someone else transitioned the entry first.
		return nil, apperrors.ErrAlreadyVoided
	}

	entry.Status = domain.Void
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = voiderUserID
	s.LogInfo(ctx, "journal entry voided",
		slog.String("journal_entry_id", journalEntryID),
		slog.String("reference_number", entry.ReferenceNumber))
	return entry, nil
}

// DeleteJournalEntry always fails: the ledger is append-only and corrections
// go through VoidJournalEntry.
func (s *journalService) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	s.LogInfo(ctx, "journal entry deletion rejected", slog.String("journal_entry_id", journalEntryID))
	return apperrors.ErrLedgerImmutable
}
