package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories"
	"committee-backend/pkg/smsgateway"
)

// Compile-time check to ensure NotificationServiceImpl implements NotificationService
var _ NotificationService = (*NotificationServiceImpl)(nil)

// NotificationService delivers SMS messages to members and reports a
// per-member outcome. The engine hands it plain member data; how messages
// travel is the gateway's concern.
type NotificationService interface {
	SendWinnerAnnouncement(ctx context.Context, month string) ([]models.DeliveryOutcome, error)
	SendPaymentReminders(ctx context.Context, month string) ([]models.DeliveryOutcome, error)
	GetNotificationsByMonth(ctx context.Context, month string) ([]*models.Notification, error)
}

// NotificationServiceImpl handles notification business logic
type NotificationServiceImpl struct {
	memberRepo       repositories.MemberRepository
	notificationRepo repositories.NotificationRepository
	gateway          smsgateway.Gateway
	sequence         *models.Sequence
	monthlyAmount    float64
}

// NewNotificationService creates a new NotificationServiceImpl
func NewNotificationService(
	memberRepo repositories.MemberRepository,
	notificationRepo repositories.NotificationRepository,
	gateway smsgateway.Gateway,
	sequence *models.Sequence,
	monthlyAmount float64,
) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		gateway:          gateway,
		sequence:         sequence,
		monthlyAmount:    monthlyAmount,
	}
}

// SendWinnerAnnouncement announces the month's winner to the whole roster.
// Fails if no winner has been declared yet; individual delivery failures are
// reported in the outcomes, not raised.
func (s *NotificationServiceImpl) SendWinnerAnnouncement(ctx context.Context, month string) ([]models.DeliveryOutcome, error) {
	if !s.sequence.Contains(month) {
		return nil, &NotFoundError{What: "month", Month: month}
	}

	winner, err := s.memberRepo.FindWinner(ctx, month)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{What: "winner", Month: month}
		}
		return nil, &StoreError{Op: "find winner", Month: month, Err: err}
	}

	members, err := s.memberRepo.FindAllOrderedByName(ctx, month)
	if err != nil {
		return nil, &StoreError{Op: "list members", Month: month, Err: err}
	}
	if len(members) == 0 {
		return nil, &EmptyRosterError{Month: month}
	}

	message := fmt.Sprintf("Committee draw result for %s: %s has won this month's pot. Congratulations!", month, winner.FullName)
	return s.sendBatch(ctx, month, members, message, models.NotificationTypeWinner), nil
}

// SendPaymentReminders reminds every member still owing for the month.
// Payment-exempt and already-paid members are skipped.
func (s *NotificationServiceImpl) SendPaymentReminders(ctx context.Context, month string) ([]models.DeliveryOutcome, error) {
	if !s.sequence.Contains(month) {
		return nil, &NotFoundError{What: "month", Month: month}
	}

	members, err := s.memberRepo.FindAllOrderedByName(ctx, month)
	if err != nil {
		return nil, &StoreError{Op: "list members", Month: month, Err: err}
	}
	if len(members) == 0 {
		return nil, &EmptyRosterError{Month: month}
	}

	var due []*models.Member
	for _, member := range members {
		if member.PaymentStatus == models.PaymentStatusPending || member.PaymentStatus == models.PaymentStatusOverdue {
			due = append(due, member)
		}
	}

	message := fmt.Sprintf("Reminder: your committee contribution of %.2f for %s is due. Please pay at the earliest.", s.monthlyAmount, month)
	return s.sendBatch(ctx, month, due, message, models.NotificationTypeReminder), nil
}

// GetNotificationsByMonth returns the delivery log for a month
func (s *NotificationServiceImpl) GetNotificationsByMonth(ctx context.Context, month string) ([]*models.Notification, error) {
	if !s.sequence.Contains(month) {
		return nil, &NotFoundError{What: "month", Month: month}
	}
	notifications, err := s.notificationRepo.FindByMonth(ctx, month)
	if err != nil {
		return nil, &StoreError{Op: "list notifications", Month: month, Err: err}
	}
	return notifications, nil
}

func (s *NotificationServiceImpl) sendBatch(ctx context.Context, month string, members []*models.Member, message, notificationType string) []models.DeliveryOutcome {
	outcomes := make([]models.DeliveryOutcome, 0, len(members))
	for _, member := range members {
		outcome := models.DeliveryOutcome{
			MemberID:     member.ID,
			FullName:     member.FullName,
			MobileNumber: member.MobileNumber,
		}
		record := &models.Notification{
			Month:        month,
			MemberID:     member.ID,
			MobileNumber: member.MobileNumber,
			Content:      message,
			Type:         notificationType,
		}

		messageID, err := s.gateway.SendSMS(member.MobileNumber, message)
		if err != nil {
			outcome.Reason = err.Error()
			record.Status = models.NotificationStatusFailed
			record.StatusReason = err.Error()
			slog.Warn("SMS delivery failed", "month", month, "memberId", member.ID.Hex(), "error", err)
		} else {
			outcome.Delivered = true
			record.Status = models.NotificationStatusSent
			record.MessageID = messageID
		}

		if err := s.notificationRepo.Create(ctx, record); err != nil {
			// The delivery already happened; a failed log write must not
			// change the reported outcome.
			slog.Error("Failed to record notification", "error", err, "month", month, "memberId", member.ID.Hex())
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
