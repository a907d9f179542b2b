package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

// accountService provides chart-of-accounts management, hierarchy navigation
// and the next-code suggestion engine.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !domain.ValidAccountType(req.AccountType) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid accountType %q", req.AccountType))
	}
	if !domain.ValidNormalBalance(req.NormalBalance) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid normalBalance %q", req.NormalBalance))
	}

	if req.ParentID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentID, false)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("parent account %s not found", *req.ParentID))
			}
			return nil, err
		}
		if !parent.IsActive {
			return nil, apperrors.NewValidationError(fmt.Sprintf("parent account %s is inactive", *req.ParentID))
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("account category %s not found", *req.CategoryID))
			}
			return nil, err
		}
	}

	isPosting := true
	if req.IsPosting != nil {
		isPosting = *req.IsPosting
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Code:          strings.TrimSpace(req.Code),
		Name:          req.Name,
		Description:   req.Description,
		AccountType:   req.AccountType,
		NormalBalance: req.NormalBalance,
		IsPosting:     isPosting,
		IsCash:        req.IsCash,
		IsActive:      true,
		ParentID:      req.ParentID,
		CategoryID:    req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("account code %q already exists", account.Code))
		}
		s.LogError(ctx, err, "failed to save account", slog.String("code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.IsCash != nil {
		account.IsCash = *req.IsCash
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("account category %s not found", *req.CategoryID))
			}
			return nil, err
		}
		account.CategoryID = req.CategoryID
	}
	if req.ParentID != nil {
		if err := s.checkReparent(ctx, account.AccountID, *req.ParentID); err != nil {
			return nil, err
		}
		account.ParentID = req.ParentID
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// checkReparent rejects re-parenting an account onto itself or onto one of
// its own descendants, which would cut the subtree loose as a cycle.
func (s *accountService) checkReparent(ctx context.Context, accountID, newParentID string) error {
	if newParentID == accountID {
		return apperrors.NewValidationError("account cannot be its own parent")
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, newParentID, false); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("parent account %s not found", newParentID))
		}
		return err
	}
	index, err := s.loadHierarchy(ctx)
	if err != nil {
		return err
	}
	descendants, err := index.descendants(accountID)
	if err != nil {
		return err
	}
	for _, d := range descendants {
		if d.AccountID == newParentID {
			return apperrors.NewValidationError("account cannot be re-parented under its own descendant")
		}
	}
	return nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, deleterUserID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}
	hasChildren, err := s.accountRepo.HasChildren(ctx, accountID)
	if err != nil {
		return err
	}
	if hasChildren {
		return apperrors.NewValidationError("account with child accounts cannot be deleted")
	}
	if err := s.accountRepo.SoftDeleteAccount(ctx, accountID, deleterUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to soft delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "account soft deleted", slog.String("account_id", accountID))
	return nil
}

// SuggestNextCode proposes the next account code for the given parent. The
// computation is a pure read; uniqueness is still enforced by the code
// constraint at insert time, so a lost race simply fails the later insert.
func (s *accountService) SuggestNextCode(ctx context.Context, parentID *string) (string, error) {
	if parentID == nil {
		codes, err := s.accountRepo.ListRootAccountCodes(ctx)
		if err != nil {
			return "", err
		}
		return nextRootCode(codes), nil
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, *parentID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("parent account %s not found", *parentID))
		}
		return "", err
	}

	childCodes, err := s.accountRepo.ListChildAccountCodes(ctx, parent.AccountID)
	if err != nil {
		return "", err
	}
	if len(childCodes) == 0 {
		return firstChildCode(parent.Code), nil
	}
	return nextSiblingCode(childCodes)
}

// nextRootCode scans existing root codes for the maximum leading numeric
// prefix and returns "<max+1>-0000". An empty table yields "1-0000".
func nextRootCode(codes []string) string {
	maxPrefix := 0
	for _, code := range codes {
		if n, ok := leadingNumber(code); ok && n > maxPrefix {
			maxPrefix = n
		}
	}
	return fmt.Sprintf("%d-0000", maxPrefix+1)
}

// firstChildCode derives the first child code from the trailing-zero run of
// the parent suffix: "X-0000" -> "X-1000", "X-N000" -> "X-N100", anything
// deeper appends "01" to the full parent code.
func firstChildCode(parentCode string) string {
	idx := strings.LastIndex(parentCode, "-")
	if idx < 0 {
		return parentCode + "01"
	}
	prefix, suffix := parentCode[:idx], parentCode[idx+1:]
	switch zeros := trailingZeros(suffix); {
	case zeros >= 4:
		return prefix + "-1000"
	case zeros == 3 && len(suffix) > 0:
		return prefix + "-" + string(suffix[0]) + "100"
	default:
		return parentCode + "01"
	}
}

// nextSiblingCode increments the lexicographically maximum existing child
// code. The last two characters of the suffix are treated as a zero-padded
// counter; a non-numeric tail falls back to incrementing the whole suffix.
func nextSiblingCode(childCodes []string) (string, error) {
	maxChild := childCodes[0]
	for _, code := range childCodes[1:] {
		if code > maxChild {
			maxChild = code
		}
	}

	idx := strings.LastIndex(maxChild, "-")
	if idx < 0 || idx == len(maxChild)-1 {
		return "", apperrors.NewValidationError(fmt.Sprintf("cannot derive next code from %q", maxChild))
	}
	prefix, suffix := maxChild[:idx], maxChild[idx+1:]

	if len(suffix) >= 2 {
		if n, err := strconv.Atoi(suffix[len(suffix)-2:]); err == nil {
			return fmt.Sprintf("%s-%s%02d", prefix, suffix[:len(suffix)-2], n+1), nil
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("cannot derive next code from %q", maxChild))
	}
	return fmt.Sprintf("%s-%0*d", prefix, len(suffix), n+1), nil
}

// leadingNumber extracts the leading digit run of a code.
func leadingNumber(code string) (int, bool) {
	end := 0
	for end < len(code) && code[end] >= '0' && code[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(code[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func trailingZeros(s string) int {
	count := 0
	for i := len(s) - 1; i >= 0 && s[i] == '0'; i-- {
		count++
	}
	return count
}

func (s *accountService) GetAncestors(ctx context.Context, accountID string) ([]domain.Account, error) {
	index, err := s.loadHierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return index.ancestors(accountID)
}

func (s *accountService) GetDescendants(ctx context.Context, accountID string) ([]domain.Account, error) {
	index, err := s.loadHierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return index.descendants(accountID)
}

func (s *accountService) GetFullAccountCode(ctx context.Context, accountID string) (string, error) {
	index, err := s.loadHierarchy(ctx)
	if err != nil {
		return "", err
	}
	return index.fullCode(accountID)
}

func (s *accountService) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	return s.categoryRepo.ListCategories(ctx)
}

// loadHierarchy snapshots the whole account table into an in-memory index.
// Hierarchy walks traverse this snapshot deterministically instead of chasing
// parent links lazily, so a partially loaded chain can never produce a silent
// partial result.
func (s *accountService) loadHierarchy(ctx context.Context) (*hierarchyIndex, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return newHierarchyIndex(accounts), nil
}

type hierarchyIndex struct {
	byID     map[string]domain.Account
	children map[string][]string
}

func newHierarchyIndex(accounts []domain.Account) *hierarchyIndex {
	idx := &hierarchyIndex{
		byID:     make(map[string]domain.Account, len(accounts)),
		children: make(map[string][]string),
	}
	for _, acc := range accounts {
		idx.byID[acc.AccountID] = acc
		if acc.ParentID != nil {
			idx.children[*acc.ParentID] = append(idx.children[*acc.ParentID], acc.AccountID)
		}
	}
	for parentID := range idx.children {
		ids := idx.children[parentID]
		sort.Slice(ids, func(i, j int) bool {
			return idx.byID[ids[i]].Code < idx.byID[ids[j]].Code
		})
	}
	return idx
}

// ancestors returns the chain from the root down to the account's direct
// parent. A parent pointer that resolves to no loaded account is an error,
// never a silently truncated path.
func (idx *hierarchyIndex) ancestors(accountID string) ([]domain.Account, error) {
	account, ok := idx.byID[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	var chain []domain.Account
	seen := map[string]bool{account.AccountID: true}
	for account.ParentID != nil {
		parent, ok := idx.byID[*account.ParentID]
		if !ok {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("account %s references missing parent %s", account.AccountID, *account.ParentID), apperrors.ErrInternal)
		}
		if seen[parent.AccountID] {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("account hierarchy cycle at %s", parent.AccountID), apperrors.ErrInternal)
		}
		seen[parent.AccountID] = true
		chain = append(chain, parent)
		account = parent
	}

	// Walked child-to-root; reverse to root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// descendants returns the subtree below the account in depth-first order with
// siblings ordered by code.
func (idx *hierarchyIndex) descendants(accountID string) ([]domain.Account, error) {
	if _, ok := idx.byID[accountID]; !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}

	var result []domain.Account
	var walk func(id string)
	walk = func(id string) {
		for _, childID := range idx.children[id] {
			result = append(result, idx.byID[childID])
			walk(childID)
		}
	}
	walk(accountID)
	return result, nil
}

// fullCode joins the codes from root to the account with dots.
func (idx *hierarchyIndex) fullCode(accountID string) (string, error) {
	account, ok := idx.byID[accountID]
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	chain, err := idx.ancestors(accountID)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(chain)+1)
	for _, ancestor := range chain {
		codes = append(codes, ancestor.Code)
	}
	codes = append(codes, account.Code)
	return strings.Join(codes, "."), nil
}
