package mq

import (
	"time"

	"github.com/google/uuid"
)

type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
	ActionCnt
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Mode selects the event queue backend.
type Mode string

const (
	ModeGoChan    Mode = "go_chan"
	ModeRabbitMQ  Mode = "rabbitmq"
	ModeGCPPubSub Mode = "gcp_pub_sub"
)

// Change is one entry of a record changelog.
type Change struct {
	Type string      `json:"type"`
	Path []string    `json:"path"`
	From interface{} `json:"from,omitempty"`
	To   interface{} `json:"to,omitempty"`
}

// Event describes one accepted mutation of an entity store.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Entity   string    `json:"entity"`
	RecordID string    `json:"recordId"`
	Action   Action    `json:"action"`
	Name     string    `json:"name"`
	Message  string    `json:"message"`
	Changes  []Change  `json:"changes,omitempty"`
	At       time.Time `json:"at"`
}

// GetTopic routes events by entity kind.
func (e Event) GetTopic() string {
	return e.Entity
}
