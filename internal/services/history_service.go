package services

import (
	"context"
	"errors"
	"log/slog"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"
)

// Compile-time check to ensure HistoryServiceImpl implements HistoryService
var _ HistoryService = (*HistoryServiceImpl)(nil)

// HistoryService answers read-only questions across the whole month
// sequence: who won when, and what happened to one member over the scheme.
type HistoryService interface {
	GetMemberHistory(ctx context.Context, fullName, mobileNumber string) (*MemberHistory, error)
	GetAllWinners(ctx context.Context) (*WinnerHistory, error)
}

// HistoryServiceImpl scans the per-month collections through the member
// store. A month whose collection does not exist yet simply yields no data;
// partial results are always preferable to total failure here.
type HistoryServiceImpl struct {
	memberRepo repositories.MemberRepository
	sequence   *models.Sequence
}

// NewHistoryService creates a new HistoryServiceImpl
func NewHistoryService(memberRepo repositories.MemberRepository, sequence *models.Sequence) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		memberRepo: memberRepo,
		sequence:   sequence,
	}
}

// GetMemberHistory looks up the member by exact (name, mobile) in every month
// of the scheme. Absence in a month is not an error: it maps to nil.
func (s *HistoryServiceImpl) GetMemberHistory(ctx context.Context, fullName, mobileNumber string) (*MemberHistory, error) {
	if fullName == "" {
		return nil, &ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	if mobileNumber == "" {
		return nil, &ValidationError{Field: "mobileNumber", Reason: "must not be empty"}
	}

	history := &MemberHistory{
		FullName:     fullName,
		MobileNumber: mobileNumber,
		Months:       make(map[string]*models.Member, models.SchemeLength),
	}
	for _, month := range s.sequence.Months() {
		member, err := s.memberRepo.FindByNameAndMobile(ctx, month, fullName, mobileNumber)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				slog.Warn("Member history scan degraded for month", "error", err, "month", month, "fullName", fullName)
			}
			history.Months[month] = nil
			continue
		}
		history.Months[month] = member
	}
	return history, nil
}

// GetAllWinners returns the winner of every month of the scheme, nil where
// none has been declared yet.
func (s *HistoryServiceImpl) GetAllWinners(ctx context.Context) (*WinnerHistory, error) {
	history := &WinnerHistory{
		Winners: make(map[string]*models.Member, models.SchemeLength),
	}
	for _, month := range s.sequence.Months() {
		winner, err := s.memberRepo.FindWinner(ctx, month)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				slog.Warn("Winner scan degraded for month", "error", err, "month", month)
			}
			history.Winners[month] = nil
			continue
		}
		history.Winners[month] = winner
		history.TotalWinners++
	}
	return history, nil
}
