package action

import (
	"errors"

	"logidash/entity"
)

// Name identifies a domain action, e.g. "approve" or "assign_driver".
type Name string

const (
	// payables
	Approve Name = "approve"
	Reject  Name = "reject"
	Pay     Name = "pay"
	Hold    Name = "hold"
	Release Name = "release"
	// trips
	AssignDriver   Name = "assign_driver"
	UnassignDriver Name = "unassign_driver"
	Start          Name = "start"
	Complete       Name = "complete"
	Cancel         Name = "cancel"
	// inquiries
	Review       Name = "review"
	SendQuote    Name = "send_quote"
	ApproveQuote Name = "approve_quote"
	RejectQuote  Name = "reject_quote"
	Expire       Name = "expire"
	// sla
	Escalate Name = "escalate"
	Resolve  Name = "resolve"
	// users
	Lock   Name = "lock"
	Unlock Name = "unlock"
	Delete Name = "delete"
)

// Params carries the action-specific inputs; each action reads only its own fields.
type Params struct {
	DriverID  string  `json:"driverId,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Note      string  `json:"note,omitempty"`

	// resolved before the mutation, never read from input
	driver *entity.Driver
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is the transient user-facing outcome of one dispatch.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }

func failure(err error) Notification {
	var ve ValidationError
	if errors.As(err, &ve) && ve.Msg != "" {
		return Notification{Level: LevelError, Message: ve.Msg}
	}
	return Notification{Level: LevelError, Message: err.Error()}
}
