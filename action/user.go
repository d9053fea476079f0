package action

import (
	"fmt"
	"time"

	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/mq/mq"
)

var UserMachine = NewMachine[entity.UserStatus]("user").
	Allow(Lock, entity.UserLocked, entity.UserActive).
	Allow(Unlock, entity.UserActive, entity.UserLocked)

func userStep(name Name, verb string) Rule[entity.User] {
	return Rule[entity.User]{
		Apply: func(rec entity.User, _ Params, _ time.Time) (entity.User, error) {
			next, err := UserMachine.Next(name, rec.Status)
			if err != nil {
				return rec, err
			}
			rec.Status = next
			return rec, nil
		},
		Done: func(rec entity.User) string {
			return fmt.Sprintf("User %s %s", rec.Name, verb)
		},
	}
}

func UserRules() map[Name]Rule[entity.User] {
	return map[Name]Rule[entity.User]{
		Lock:   userStep(Lock, "locked"),
		Unlock: userStep(Unlock, "unlocked"),
		Delete: {
			Remove: true,
			Done: func(rec entity.User) string {
				return fmt.Sprintf("User %s deleted", rec.Name)
			},
		},
	}
}

func NewUserDispatcher(store dbt.EntityStore[entity.User], events mq.EventQueue) *Dispatcher[entity.User] {
	return NewDispatcher(entity.UserSchema.Entity, store, UserRules(), func(u entity.User) []Name {
		return append(UserMachine.Actions(u.Status), Delete)
	}, events)
}
