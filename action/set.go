package action

import (
	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/mq/mq"
)

// Set holds one dispatcher per entity type over the same stores.
type Set struct {
	Inquiries *Dispatcher[entity.Inquiry]
	Drivers   *Dispatcher[entity.Driver]
	Trips     *Dispatcher[entity.Trip]
	Payables  *Dispatcher[entity.DriverPayable]
	SLA       *Dispatcher[entity.SLARecord]
	Users     *Dispatcher[entity.User]
}

func NewSet(stores *dbt.Stores, events mq.EventQueue) *Set {
	return &Set{
		Inquiries: NewInquiryDispatcher(stores.Inquiries, events),
		// drivers have no actions, only create
		Drivers:  NewDispatcher(entity.DriverSchema.Entity, stores.Drivers, nil, nil, events),
		Trips:    NewTripDispatcher(stores.Trips, stores.Drivers, events),
		Payables: NewPayableDispatcher(stores.Payables, events),
		SLA:      NewSLADispatcher(stores.SLA, events),
		Users:    NewUserDispatcher(stores.Users, events),
	}
}
