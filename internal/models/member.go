package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FamilyIndividual is the sentinel family tag for members without a grouping.
const FamilyIndividual = "Individual"

// PaymentStatus is the monthly payment state of a member.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
	// PaymentStatusNoPaymentRequired is terminal and system-managed: it marks
	// members who already won in the current or any prior month.
	PaymentStatusNoPaymentRequired PaymentStatus = "NO_PAYMENT_REQUIRED"
)

// DrawState is the draw lifecycle state of a member.
type DrawState string

const (
	DrawStateNotDrawn DrawState = "NOT_DRAWN"
	// DrawStateDrawn marks a member carried forward after a past win whose
	// originating month is not tracked on this row.
	DrawStateDrawn  DrawState = "DRAWN"
	DrawStateWinner DrawState = "WINNER"
)

// DrawStatus is a tagged variant: NOT_DRAWN, DRAWN, or WINNER of a specific
// month. The month tag is carried as structured data, not encoded into the
// state string.
type DrawStatus struct {
	State    DrawState `bson:"state" json:"state"`
	WonMonth string    `bson:"wonMonth,omitempty" json:"wonMonth,omitempty"`
}

// NotDrawn returns the neutral draw status.
func NotDrawn() DrawStatus {
	return DrawStatus{State: DrawStateNotDrawn}
}

// Drawn returns the generic past-winner status.
func Drawn() DrawStatus {
	return DrawStatus{State: DrawStateDrawn}
}

// WinnerOf returns the winner marker tagged with the given month.
func WinnerOf(month string) DrawStatus {
	return DrawStatus{State: DrawStateWinner, WonMonth: month}
}

// IsWinnerOf reports whether the status is the winner marker for month.
func (d DrawStatus) IsWinnerOf(month string) bool {
	return d.State == DrawStateWinner && d.WonMonth == month
}

// HasWon reports whether the member won in this or any earlier month.
func (d DrawStatus) HasWon() bool {
	return d.State == DrawStateDrawn || d.State == DrawStateWinner
}

// Member represents one roster row scoped to a single month's collection.
type Member struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TokenNumber           *int               `bson:"tokenNumber,omitempty" json:"tokenNumber,omitempty"`
	FullName              string             `bson:"fullName" json:"fullName"`
	MobileNumber          string             `bson:"mobileNumber" json:"mobileNumber"`
	Family                string             `bson:"family" json:"family"`
	PaymentStatus         PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PaidTo                string             `bson:"paidTo,omitempty" json:"paidTo,omitempty"`
	DrawStatus            DrawStatus         `bson:"drawStatus" json:"drawStatus"`
	AdditionalInformation string             `bson:"additionalInformation,omitempty" json:"additionalInformation,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PaymentLocked reports whether ordinary edits to payment fields must be
// rejected for this member: winners, past winners, and members already marked
// exempt are all locked.
func (m *Member) PaymentLocked() bool {
	return m.DrawStatus.HasWon() || m.PaymentStatus == PaymentStatusNoPaymentRequired
}
