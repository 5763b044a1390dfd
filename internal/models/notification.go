package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeWinner   = "WINNER_ANNOUNCEMENT"
	NotificationTypeReminder = "PAYMENT_REMINDER"
)

// Notification statuses
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// Notification represents one SMS delivery attempt to a member
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Month        string             `bson:"month" json:"month"`
	MemberID     primitive.ObjectID `bson:"memberId" json:"memberId"`
	MobileNumber string             `bson:"mobileNumber" json:"mobileNumber"`
	Content      string             `bson:"content" json:"content"`
	Type         string             `bson:"type" json:"type"`
	Status       string             `bson:"status" json:"status"`
	StatusReason string             `bson:"statusReason,omitempty" json:"statusReason,omitempty"`
	MessageID    string             `bson:"messageId,omitempty" json:"messageId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// DeliveryOutcome is the per-member result returned to the caller of a
// notification batch. Failures are reported here, not raised as errors, so
// one bad number never aborts the batch.
type DeliveryOutcome struct {
	MemberID     primitive.ObjectID `json:"memberId"`
	FullName     string             `json:"fullName"`
	MobileNumber string             `json:"mobileNumber"`
	Delivered    bool               `json:"delivered"`
	Reason       string             `json:"reason,omitempty"`
}
