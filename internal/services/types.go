package services

import (
	"committee-backend/internal/models"
)

// CreateMemberInput is the draft for adding a member to the starting month.
// Omitted fields receive defaults.
type CreateMemberInput struct {
	FullName              string               `json:"fullName"`
	MobileNumber          string               `json:"mobileNumber"`
	Family                string               `json:"family"`
	PaymentStatus         models.PaymentStatus `json:"paymentStatus"`
	PaidTo                string               `json:"paidTo"`
	TokenNumber           *int                 `json:"tokenNumber"`
	AdditionalInformation string               `json:"additionalInformation"`
}

// UpdateMemberInput is a partial patch; nil fields are left untouched.
type UpdateMemberInput struct {
	FullName              *string               `json:"fullName"`
	MobileNumber          *string               `json:"mobileNumber"`
	Family                *string               `json:"family"`
	PaymentStatus         *models.PaymentStatus `json:"paymentStatus"`
	PaidTo                *string               `json:"paidTo"`
	AdditionalInformation *string               `json:"additionalInformation"`
}

// MonthSummary is the dashboard roll-up for one month.
type MonthSummary struct {
	Month          string         `json:"month"`
	TotalMembers   int            `json:"totalMembers"`
	Pending        int            `json:"pending"`
	Paid           int            `json:"paid"`
	Overdue        int            `json:"overdue"`
	PaymentExempt  int            `json:"paymentExempt"`
	TokensAssigned int            `json:"tokensAssigned"`
	Winner         *models.Member `json:"winner,omitempty"`
}

// MemberHistory maps each month of the scheme to the member's record for that
// month, or nil where the member did not participate (or the month has no
// ledger yet).
type MemberHistory struct {
	FullName     string                    `json:"fullName"`
	MobileNumber string                    `json:"mobileNumber"`
	Months       map[string]*models.Member `json:"months"`
}

// WinnerHistory maps each month of the scheme to its winner, or nil where no
// winner has been declared.
type WinnerHistory struct {
	Winners      map[string]*models.Member `json:"winners"`
	TotalWinners int                       `json:"totalWinners"`
}
