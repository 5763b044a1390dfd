package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure LedgerServiceImpl implements LedgerService
var _ LedgerService = (*LedgerServiceImpl)(nil)

// LedgerService is the monthly-ledger lifecycle engine: roster CRUD, token
// assignment, guarded winner declaration and the advance operation that seeds
// the next month from the current one.
type LedgerService interface {
	ListMembers(ctx context.Context, month string) ([]*models.Member, error)
	AddMember(ctx context.Context, month string, input *CreateMemberInput) (*models.Member, error)
	UpdateMember(ctx context.Context, month string, id primitive.ObjectID, patch *UpdateMemberInput) (*models.Member, error)
	DeleteMember(ctx context.Context, month string, id primitive.ObjectID) error
	AssignTokens(ctx context.Context, month string) ([]*models.Member, error)
	DeclareWinner(ctx context.Context, month string, id primitive.ObjectID) (*models.Member, error)
	AdvanceToNextMonth(ctx context.Context, currentMonth string) (string, error)
	MonthSummary(ctx context.Context, month string) (*MonthSummary, error)
}

// LedgerServiceImpl handles ledger business logic over an injected store.
type LedgerServiceImpl struct {
	memberRepo repositories.MemberRepository
	sequence   *models.Sequence
}

// NewLedgerService creates a new LedgerServiceImpl
func NewLedgerService(memberRepo repositories.MemberRepository, sequence *models.Sequence) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		memberRepo: memberRepo,
		sequence:   sequence,
	}
}

func (s *LedgerServiceImpl) requireMonth(month string) error {
	if !s.sequence.Contains(month) {
		return &NotFoundError{What: "month", Month: month}
	}
	return nil
}

// ListMembers returns the month's roster in canonical name order.
func (s *LedgerServiceImpl) ListMembers(ctx context.Context, month string) ([]*models.Member, error) {
	if err := s.requireMonth(month); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.FindAllOrderedByName(ctx, month)
	if err != nil {
		slog.Error("Failed to list members", "error", err, "month", month)
		return nil, &StoreError{Op: "list members", Month: month, Err: err}
	}
	return members, nil
}

// AddMember inserts a new member into the starting month's roster. Later
// months are populated exclusively by AdvanceToNextMonth, so explicit adds
// there are rejected to keep each ledger either empty or fully seeded.
func (s *LedgerServiceImpl) AddMember(ctx context.Context, month string, input *CreateMemberInput) (*models.Member, error) {
	if err := s.requireMonth(month); err != nil {
		return nil, err
	}
	if !s.sequence.IsStart(month) {
		return nil, &ValidationError{Field: "month", Reason: "members can only be added in the starting month; later months are seeded by advancing"}
	}
	if input.FullName == "" {
		return nil, &ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	if input.MobileNumber == "" {
		return nil, &ValidationError{Field: "mobileNumber", Reason: "must not be empty"}
	}
	if err := validateEditablePaymentStatus(input.PaymentStatus, true); err != nil {
		return nil, err
	}
	if input.TokenNumber != nil {
		if *input.TokenNumber < 1 {
			return nil, &ValidationError{Field: "tokenNumber", Reason: "must be a positive integer"}
		}
		roster, err := s.memberRepo.FindAllOrderedByName(ctx, month)
		if err != nil {
			return nil, &StoreError{Op: "list members", Month: month, Err: err}
		}
		for _, existing := range roster {
			if existing.TokenNumber != nil && *existing.TokenNumber == *input.TokenNumber {
				return nil, &ValidationError{Field: "tokenNumber", Reason: fmt.Sprintf("token %d is already assigned to %s", *input.TokenNumber, existing.FullName)}
			}
		}
	}

	member := &models.Member{
		FullName:              input.FullName,
		MobileNumber:          input.MobileNumber,
		Family:                input.Family,
		PaymentStatus:         input.PaymentStatus,
		PaidTo:                input.PaidTo,
		TokenNumber:           input.TokenNumber,
		AdditionalInformation: input.AdditionalInformation,
		DrawStatus:            models.NotDrawn(),
	}
	if member.Family == "" {
		member.Family = models.FamilyIndividual
	}
	if member.PaymentStatus == "" {
		member.PaymentStatus = models.PaymentStatusPending
	}

	if err := s.memberRepo.Create(ctx, month, member); err != nil {
		slog.Error("Failed to create member", "error", err, "month", month, "fullName", input.FullName)
		return nil, &StoreError{Op: "create member", Month: month, Err: err}
	}
	slog.Info("Member added", "month", month, "memberId", member.ID.Hex(), "fullName", member.FullName)
	return member, nil
}

// UpdateMember merges a partial patch into an existing record. Patches that
// touch payment fields on a winner, past winner or payment-exempt member are
// rejected.
func (s *LedgerServiceImpl) UpdateMember(ctx context.Context, month string, id primitive.ObjectID, patch *UpdateMemberInput) (*models.Member, error) {
	if err := s.requireMonth(month); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.FindByID(ctx, month, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{What: "member", Month: month, ID: id.Hex()}
		}
		return nil, &StoreError{Op: "find member", Month: month, Err: err}
	}

	touchesPayment := patch.PaymentStatus != nil || patch.PaidTo != nil
	if touchesPayment && member.PaymentLocked() {
		slog.Warn("Rejected payment edit on protected member", "month", month, "memberId", id.Hex())
		return nil, &InvariantViolationError{Month: month, ID: id.Hex(), Field: "payment status"}
	}

	if patch.FullName != nil {
		if *patch.FullName == "" {
			return nil, &ValidationError{Field: "fullName", Reason: "must not be empty"}
		}
		member.FullName = *patch.FullName
	}
	if patch.MobileNumber != nil {
		if *patch.MobileNumber == "" {
			return nil, &ValidationError{Field: "mobileNumber", Reason: "must not be empty"}
		}
		member.MobileNumber = *patch.MobileNumber
	}
	if patch.Family != nil {
		member.Family = *patch.Family
		if member.Family == "" {
			member.Family = models.FamilyIndividual
		}
	}
	if patch.PaymentStatus != nil {
		if err := validateEditablePaymentStatus(*patch.PaymentStatus, false); err != nil {
			return nil, err
		}
		member.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaidTo != nil {
		member.PaidTo = *patch.PaidTo
	}
	if patch.AdditionalInformation != nil {
		member.AdditionalInformation = *patch.AdditionalInformation
	}

	if err := s.memberRepo.Update(ctx, month, member); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{What: "member", Month: month, ID: id.Hex()}
		}
		slog.Error("Failed to update member", "error", err, "month", month, "memberId", id.Hex())
		return nil, &StoreError{Op: "update member", Month: month, Err: err}
	}
	return member, nil
}

// DeleteMember removes a member from the month's roster unconditionally.
func (s *LedgerServiceImpl) DeleteMember(ctx context.Context, month string, id primitive.ObjectID) error {
	if err := s.requireMonth(month); err != nil {
		return err
	}
	if err := s.memberRepo.Delete(ctx, month, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{What: "member", Month: month, ID: id.Hex()}
		}
		slog.Error("Failed to delete member", "error", err, "month", month, "memberId", id.Hex())
		return &StoreError{Op: "delete member", Month: month, Err: err}
	}
	slog.Info("Member deleted", "month", month, "memberId", id.Hex())
	return nil
}

// AssignTokens renumbers the whole roster 1..N in canonical name order. It is
// also the repair operation for a partially-renumbered roster: the clear
// phase is a single batch unset, so a crash mid-reassignment leaves missing
// tokens but never stale duplicates, and re-running restores the full set.
func (s *LedgerServiceImpl) AssignTokens(ctx context.Context, month string) ([]*models.Member, error) {
	if err := s.requireMonth(month); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindAllOrderedByName(ctx, month)
	if err != nil {
		return nil, &StoreError{Op: "list members", Month: month, Err: err}
	}
	if len(members) == 0 {
		return nil, &EmptyRosterError{Month: month}
	}

	if err := s.memberRepo.ClearTokens(ctx, month); err != nil {
		slog.Error("Failed to clear tokens", "error", err, "month", month)
		return nil, &StoreError{Op: "clear tokens", Month: month, Err: err}
	}

	// The per-member writes below are N sequential calls with no batch
	// atomicity; see the crash note above.
	for i, member := range members {
		token := i + 1
		member.TokenNumber = &token
		if err := s.memberRepo.Update(ctx, month, member); err != nil {
			slog.Error("Failed to assign token", "error", err, "month", month, "memberId", member.ID.Hex(), "token", token)
			return nil, &StoreError{Op: fmt.Sprintf("assign token %d", token), Month: month, Err: err}
		}
	}

	slog.Info("Tokens assigned", "month", month, "count", len(members))
	return members, nil
}

// DeclareWinner marks a member as the month's winner. The uniqueness check is
// check-then-act against the store, not transactional; the single-operator
// model accepts this.
func (s *LedgerServiceImpl) DeclareWinner(ctx context.Context, month string, id primitive.ObjectID) (*models.Member, error) {
	if err := s.requireMonth(month); err != nil {
		return nil, err
	}

	existing, err := s.memberRepo.FindWinner(ctx, month)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, &StoreError{Op: "check existing winner", Month: month, Err: err}
	}
	if existing != nil {
		slog.Warn("Duplicate winner declaration rejected", "month", month, "existingWinnerId", existing.ID.Hex())
		return nil, &DuplicateWinnerError{Month: month}
	}

	member, err := s.memberRepo.FindByID(ctx, month, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{What: "member", Month: month, ID: id.Hex()}
		}
		return nil, &StoreError{Op: "find member", Month: month, Err: err}
	}

	member.DrawStatus = models.WinnerOf(month)
	if err := s.memberRepo.Update(ctx, month, member); err != nil {
		slog.Error("Failed to record winner", "error", err, "month", month, "memberId", id.Hex())
		return nil, &StoreError{Op: "record winner", Month: month, Err: err}
	}

	slog.Info("Winner declared", "month", month, "memberId", member.ID.Hex(), "fullName", member.FullName)
	return member, nil
}

// AdvanceToNextMonth seeds the next month's ledger from the current one:
// identity fields and tokens carry forward, payment state resets to PENDING,
// and the current winner plus every past winner become payment-exempt with a
// generic DRAWN status. Wins from any earlier month are folded into the
// classification up front, so a member whose intervening row was never marked
// DRAWN is still caught deterministically.
func (s *LedgerServiceImpl) AdvanceToNextMonth(ctx context.Context, currentMonth string) (string, error) {
	if err := s.requireMonth(currentMonth); err != nil {
		return "", err
	}
	nextMonth, ok := s.sequence.Next(currentMonth)
	if !ok {
		return "", &EndOfSequenceError{Month: currentMonth}
	}

	members, err := s.memberRepo.FindAllOrderedByName(ctx, currentMonth)
	if err != nil {
		return "", &StoreError{Op: "list members", Month: currentMonth, Err: err}
	}
	if len(members) == 0 {
		return "", &EmptyRosterError{Month: currentMonth}
	}

	nextCount, err := s.memberRepo.Count(ctx, nextMonth)
	if err != nil {
		return "", &StoreError{Op: "count members", Month: nextMonth, Err: err}
	}
	if nextCount > 0 {
		slog.Warn("Advance rejected: next month already seeded", "currentMonth", currentMonth, "nextMonth", nextMonth, "count", nextCount)
		return "", &AlreadySeededError{Month: nextMonth}
	}

	winner, err := s.memberRepo.FindWinner(ctx, currentMonth)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return "", &StoreError{Op: "find winner", Month: currentMonth, Err: err}
	}

	pastWinners, err := s.collectEarlierWinners(ctx, currentMonth)
	if err != nil {
		return "", err
	}

	drafts := make([]*models.Member, 0, len(members))
	for _, member := range members {
		isCurrentWinner := winner != nil && member.ID == winner.ID
		previouslyWon := isCurrentWinner ||
			member.DrawStatus.HasWon() ||
			pastWinners[member.MobileNumber]

		draft := &models.Member{
			FullName:              member.FullName,
			MobileNumber:          member.MobileNumber,
			Family:                member.Family,
			AdditionalInformation: member.AdditionalInformation,
		}
		if member.TokenNumber != nil {
			token := *member.TokenNumber
			draft.TokenNumber = &token
		}
		if previouslyWon {
			draft.PaymentStatus = models.PaymentStatusNoPaymentRequired
			draft.DrawStatus = models.Drawn()
		} else {
			draft.PaymentStatus = models.PaymentStatusPending
			draft.DrawStatus = models.NotDrawn()
		}
		drafts = append(drafts, draft)
	}

	if err := s.memberRepo.CreateMany(ctx, nextMonth, drafts); err != nil {
		slog.Error("Failed to seed next month", "error", err, "currentMonth", currentMonth, "nextMonth", nextMonth)
		return "", &StoreError{Op: "seed next month", Month: nextMonth, Err: err}
	}

	// Residual safety net over the freshly seeded roster. The up-front
	// classification already covers multi-month drift, so this pass should
	// find nothing; failures are logged, never fatal.
	s.reconcileSeededMonth(ctx, nextMonth)

	slog.Info("Advanced to next month", "currentMonth", currentMonth, "nextMonth", nextMonth, "seeded", len(drafts))
	return nextMonth, nil
}

// collectEarlierWinners gathers the mobile number of every winner declared in
// the months strictly before month. Mobile number alone is the match key: a
// member renamed after their win keeps the same number, so the rename cannot
// hide the past win from the classification.
func (s *LedgerServiceImpl) collectEarlierWinners(ctx context.Context, month string) (map[string]bool, error) {
	winners := make(map[string]bool)
	for _, earlier := range s.sequence.Before(month) {
		w, err := s.memberRepo.FindWinner(ctx, earlier)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, &StoreError{Op: "find past winner", Month: earlier, Err: err}
		}
		winners[w.MobileNumber] = true
	}
	return winners, nil
}

func (s *LedgerServiceImpl) reconcileSeededMonth(ctx context.Context, month string) {
	seeded, err := s.memberRepo.FindAllOrderedByName(ctx, month)
	if err != nil {
		slog.Error("Reconciliation scan failed", "error", err, "month", month)
		return
	}
	for _, member := range seeded {
		if member.DrawStatus.HasWon() && member.PaymentStatus != models.PaymentStatusNoPaymentRequired {
			member.PaymentStatus = models.PaymentStatusNoPaymentRequired
			member.PaidTo = ""
			if err := s.memberRepo.Update(ctx, month, member); err != nil {
				slog.Error("Reconciliation update failed", "error", err, "month", month, "memberId", member.ID.Hex())
			}
		}
	}
}

// MonthSummary derives the dashboard roll-up for one month.
func (s *LedgerServiceImpl) MonthSummary(ctx context.Context, month string) (*MonthSummary, error) {
	members, err := s.ListMembers(ctx, month)
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{Month: month, TotalMembers: len(members)}
	for _, member := range members {
		switch member.PaymentStatus {
		case models.PaymentStatusPending:
			summary.Pending++
		case models.PaymentStatusPaid:
			summary.Paid++
		case models.PaymentStatusOverdue:
			summary.Overdue++
		case models.PaymentStatusNoPaymentRequired:
			summary.PaymentExempt++
		}
		if member.TokenNumber != nil {
			summary.TokensAssigned++
		}
		if member.DrawStatus.IsWinnerOf(month) {
			summary.Winner = member
		}
	}
	return summary, nil
}

// validateEditablePaymentStatus rejects statuses a caller may not set by
// hand. NO_PAYMENT_REQUIRED is system-managed and only ever assigned by the
// advance operation.
func validateEditablePaymentStatus(status models.PaymentStatus, allowEmpty bool) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusOverdue:
		return nil
	case "":
		if allowEmpty {
			return nil
		}
	case models.PaymentStatusNoPaymentRequired:
		return &ValidationError{Field: "paymentStatus", Reason: "NO_PAYMENT_REQUIRED is system-managed and cannot be set directly"}
	}
	return &ValidationError{Field: "paymentStatus", Reason: fmt.Sprintf("unknown payment status %q", status)}
}
