package entity

import (
	"strconv"
	"time"

	"logidash/query"
)

func route(origin, destination string) []string { return []string{origin, destination} }

var InquirySchema = query.Schema[Inquiry]{
	Entity:     "inquiries",
	ID:         Inquiry.GetID,
	Searchable: []string{"number", "customerName", "serviceType", "origin", "destination"},
	Fields: []query.Field[Inquiry]{
		{Name: "number", Text: func(i Inquiry) string { return i.Number }},
		{Name: "customerName", Text: func(i Inquiry) string { return i.CustomerName }},
		{Name: "serviceType", Text: func(i Inquiry) string { return i.ServiceType }},
		{Name: "origin", Text: func(i Inquiry) string { return i.Origin }},
		{Name: "destination", Text: func(i Inquiry) string { return i.Destination }},
		{Name: "location", Match: query.MatchContains, Texts: func(i Inquiry) []string { return route(i.Origin, i.Destination) }},
		{Name: "status", Text: func(i Inquiry) string { return string(i.Status) }},
		{Name: "priority", Kind: query.KindRank, Ranks: PriorityRank, Text: func(i Inquiry) string { return string(i.Priority) }},
		{Name: "createdAt", Kind: query.KindTime, Time: func(i Inquiry) time.Time { return i.CreatedAt }},
		{Name: "quotedAmount", Kind: query.KindNumber, Number: func(i Inquiry) float64 { return i.QuotedAmount }},
		{Name: "totalWeight", Kind: query.KindNumber, Number: Inquiry.TotalWeight},
		{Name: "totalValue", Kind: query.KindNumber, Number: Inquiry.TotalValue},
	},
}

var DriverSchema = query.Schema[Driver]{
	Entity:     "drivers",
	ID:         Driver.GetID,
	Searchable: []string{"name", "phone", "vehicleNumber", "licenseNumber"},
	Fields: []query.Field[Driver]{
		{Name: "name", Text: func(d Driver) string { return d.Name }},
		{Name: "phone", Text: func(d Driver) string { return d.Phone }},
		{Name: "vehicleNumber", Text: func(d Driver) string { return d.VehicleNumber }},
		{Name: "licenseNumber", Text: func(d Driver) string { return d.LicenseNumber }},
		{Name: "vehicleType", Text: func(d Driver) string { return d.VehicleType }},
		{Name: "status", Text: func(d Driver) string { return string(d.Status) }},
		{Name: "rating", Kind: query.KindNumber, Number: func(d Driver) float64 { return d.Rating }},
	},
}

var TripSchema = query.Schema[Trip]{
	Entity:     "trips",
	ID:         Trip.GetID,
	Searchable: []string{"number", "customerName", "origin", "destination", "driverName"},
	Fields: []query.Field[Trip]{
		{Name: "number", Text: func(t Trip) string { return t.Number }},
		{Name: "customerName", Text: func(t Trip) string { return t.CustomerName }},
		{Name: "origin", Text: func(t Trip) string { return t.Origin }},
		{Name: "destination", Text: func(t Trip) string { return t.Destination }},
		{Name: "driverName", Text: Trip.DriverName},
		{Name: "location", Match: query.MatchContains, Texts: func(t Trip) []string { return route(t.Origin, t.Destination) }},
		{Name: "cargoType", Text: func(t Trip) string { return t.CargoType }},
		{Name: "status", Text: func(t Trip) string { return string(t.Status) }},
		{Name: "priority", Kind: query.KindRank, Ranks: PriorityRank, Text: func(t Trip) string { return string(t.Priority) }},
		{Name: "scheduledAt", Kind: query.KindTime, Time: func(t Trip) time.Time { return t.ScheduledAt }},
		{Name: "weight", Kind: query.KindNumber, Number: func(t Trip) float64 { return t.Weight }},
	},
}

var PayableSchema = query.Schema[DriverPayable]{
	Entity:     "payables",
	ID:         DriverPayable.GetID,
	Searchable: []string{"number", "driverName", "tripNumber"},
	Fields: []query.Field[DriverPayable]{
		{Name: "number", Text: func(p DriverPayable) string { return p.Number }},
		{Name: "driverName", Text: func(p DriverPayable) string { return p.DriverName }},
		{Name: "driverId", Text: func(p DriverPayable) string { return p.DriverID }},
		{Name: "tripNumber", Text: func(p DriverPayable) string { return p.TripNumber }},
		{Name: "status", Text: func(p DriverPayable) string { return string(p.Status) }},
		{Name: "paymentMethod", Text: func(p DriverPayable) string { return string(p.PaymentMethod) }},
		{Name: "totalAmount", Kind: query.KindNumber, Number: DriverPayable.TotalAmount},
		{Name: "dueDate", Kind: query.KindTime, Time: func(p DriverPayable) time.Time { return p.DueDate }},
	},
}

var SLASchema = query.Schema[SLARecord]{
	Entity:     "sla",
	ID:         SLARecord.GetID,
	Searchable: []string{"number", "tripNumber", "customerName", "metric"},
	Fields: []query.Field[SLARecord]{
		{Name: "number", Text: func(s SLARecord) string { return s.Number }},
		{Name: "tripNumber", Text: func(s SLARecord) string { return s.TripNumber }},
		{Name: "customerName", Text: func(s SLARecord) string { return s.CustomerName }},
		{Name: "metric", Text: func(s SLARecord) string { return s.Metric }},
		{Name: "status", Text: func(s SLARecord) string { return string(s.Status) }},
		{Name: "priority", Kind: query.KindRank, Ranks: PriorityRank, Text: func(s SLARecord) string { return string(s.Priority) }},
		{Name: "targetTime", Kind: query.KindDate, Layout: SLATimeLayout, Text: func(s SLARecord) string { return s.TargetTime }},
		{Name: "escalated", Text: func(s SLARecord) string { return strconv.FormatBool(s.Escalated) }},
	},
}

var UserSchema = query.Schema[User]{
	Entity:     "users",
	ID:         User.GetID,
	Searchable: []string{"name", "email", "role", "department"},
	Fields: []query.Field[User]{
		{Name: "name", Text: func(u User) string { return u.Name }},
		{Name: "email", Text: func(u User) string { return u.Email }},
		{Name: "role", Text: func(u User) string { return string(u.Role) }},
		{Name: "department", Text: func(u User) string { return u.Department }},
		{Name: "status", Text: func(u User) string { return string(u.Status) }},
		{Name: "lastLogin", Kind: query.KindTime, Time: func(u User) time.Time { return u.LastLogin }},
	},
}
