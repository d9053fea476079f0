package entity

import "time"

// Record is implemented by every entity kept in a store.
type Record interface {
	GetID() string
}

// Priority is shared by inquiries, trips and SLA records.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// PriorityRank orders priorities by severity.
var PriorityRank = map[string]int{
	string(PriorityLow):    1,
	string(PriorityMedium): 2,
	string(PriorityHigh):   3,
}

// Attachment captures the metadata of a file picked in a form; contents are never kept.
type Attachment struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// ---------- Inquiry ----------

type InquiryStatus string

const (
	InquiryNew           InquiryStatus = "New"
	InquiryUnderReview   InquiryStatus = "Under Review"
	InquiryQuoteSent     InquiryStatus = "Quote Sent"
	InquiryQuoteApproved InquiryStatus = "Quote Approved"
	InquiryQuoteRejected InquiryStatus = "Quote Rejected"
	InquiryExpired       InquiryStatus = "Expired"
	InquiryCancelled     InquiryStatus = "Cancelled"
)

type InquiryItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Weight      float64 `json:"weight"` // kg
	Volume      float64 `json:"volume"` // m3
	Value       float64 `json:"value"`
}

type Inquiry struct {
	ID              string        `json:"id"`
	Number          string        `json:"number"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   string        `json:"customerEmail"`
	ServiceType     string        `json:"serviceType"`
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	Priority        Priority      `json:"priority"`
	Status          InquiryStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	Items           []InquiryItem `json:"items"`
	QuotedAmount    float64       `json:"quotedAmount"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	Attachments     []Attachment  `json:"attachments,omitempty"`
}

func (i Inquiry) GetID() string { return i.ID }

// TotalWeight folds the item weights; it is never stored.
func (i Inquiry) TotalWeight() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Weight * float64(item.Quantity)
	}
	return total
}

func (i Inquiry) TotalVolume() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Volume * float64(item.Quantity)
	}
	return total
}

func (i Inquiry) TotalValue() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Value * float64(item.Quantity)
	}
	return total
}

// ---------- Driver / Trip ----------

type DriverStatus string

const (
	DriverAvailable DriverStatus = "Available"
	DriverOnTrip    DriverStatus = "On Trip"
	DriverOffDuty   DriverStatus = "Off Duty"
)

type Driver struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	LicenseNumber string       `json:"licenseNumber"`
	VehicleNumber string       `json:"vehicleNumber"`
	VehicleType   string       `json:"vehicleType"`
	Rating        float64      `json:"rating"`
	Status        DriverStatus `json:"status"`
}

func (d Driver) GetID() string { return d.ID }

type TripStatus string

const (
	TripUnassigned TripStatus = "Unassigned"
	TripAssigned   TripStatus = "Assigned"
	TripInProgress TripStatus = "In Progress"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

// Trip embeds the assigned driver by value. The snapshot is taken when the driver is
// assigned and does not follow later changes to the driver record.
type Trip struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	CustomerName   string     `json:"customerName"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	CargoType      string     `json:"cargoType"`
	Weight         float64    `json:"weight"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	Priority       Priority   `json:"priority"`
	Status         TripStatus `json:"status"`
	AssignedDriver *Driver    `json:"assignedDriver,omitempty"`
}

func (t Trip) GetID() string { return t.ID }

// DriverName is empty while the trip is unassigned.
func (t Trip) DriverName() string {
	if t.AssignedDriver == nil {
		return ""
	}
	return t.AssignedDriver.Name
}

// ---------- Payable ----------

type PayableStatus string

const (
	PayablePending  PayableStatus = "Pending"
	PayableApproved PayableStatus = "Approved"
	PayablePaid     PayableStatus = "Paid"
	PayableRejected PayableStatus = "Rejected"
	PayableOnHold   PayableStatus = "On Hold"
)

type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
	PaymentCash         PaymentMethod = "Cash"
	PaymentCheque       PaymentMethod = "Cheque"
)

type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

type PayableLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type DriverPayable struct {
	ID               string        `json:"id"`
	Number           string        `json:"number"`
	DriverID         string        `json:"driverId"`
	DriverName       string        `json:"driverName"`
	TripNumber       string        `json:"tripNumber"`
	Lines            []PayableLine `json:"lines"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	BankDetails      *BankDetails  `json:"bankDetails,omitempty"`
	Status           PayableStatus `json:"status"`
	DueDate          time.Time     `json:"dueDate"`
	RejectionReason  string        `json:"rejectionReason,omitempty"`
	PaymentReference string        `json:"paymentReference,omitempty"`
	PaidAt           *time.Time    `json:"paidAt,omitempty"`
}

func (p DriverPayable) GetID() string { return p.ID }

// TotalAmount folds the payable lines.
func (p DriverPayable) TotalAmount() float64 {
	var total float64
	for _, l := range p.Lines {
		total += l.Amount
	}
	return total
}

// ---------- SLA ----------

type SLAStatus string

const (
	SLAOnTrack  SLAStatus = "On Track"
	SLAAtRisk   SLAStatus = "At Risk"
	SLABreached SLAStatus = "Breached"
	SLAMet      SLAStatus = "Met"
	SLAResolved SLAStatus = "Resolved"
)

// SLATimeLayout is the layout of TargetTime and ActualTime.
const SLATimeLayout = "2006-01-02 15:04"

// SLARecord keeps its times as display strings; no deadline is computed from them.
type SLARecord struct {
	ID             string    `json:"id"`
	Number         string    `json:"number"`
	TripNumber     string    `json:"tripNumber"`
	CustomerName   string    `json:"customerName"`
	Metric         string    `json:"metric"`
	TargetTime     string    `json:"targetTime"`
	ActualTime     string    `json:"actualTime,omitempty"`
	Priority       Priority  `json:"priority"`
	Status         SLAStatus `json:"status"`
	Escalated      bool      `json:"escalated"`
	ResolutionNote string    `json:"resolutionNote,omitempty"`
}

func (s SLARecord) GetID() string { return s.ID }

// ---------- User ----------

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserLocked   UserStatus = "Locked"
	UserInactive UserStatus = "Inactive"
)

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleDispatcher Role = "Dispatcher"
	RoleFinance    Role = "Finance"
	RoleViewer     Role = "Viewer"
)

type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Department string     `json:"department"`
	Status     UserStatus `json:"status"`
	LastLogin  time.Time  `json:"lastLogin"`
}

func (u User) GetID() string { return u.ID }
