package entity

import "time"

// Seed functions return a fresh collection on every call so callers never share
// backing arrays or nested pointers.

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func SeedInquiries() []Inquiry {
	return []Inquiry{
		{
			ID: "inq-1", Number: "INQ-2024-5678", CustomerName: "Marina Textiles", CustomerEmail: "ops@marinatex.com",
			ServiceType: "FTL", Origin: "Chennai", Destination: "Bangalore", Priority: PriorityHigh,
			Status: InquiryNew, CreatedAt: day("2024-03-02 09:15"),
			Items: []InquiryItem{
				{Description: "Fabric rolls", Quantity: 40, Weight: 25, Volume: 0.2, Value: 120},
				{Description: "Dye drums", Quantity: 10, Weight: 60, Volume: 0.3, Value: 80},
			},
			Attachments: []Attachment{{Name: "packing-list.pdf", Size: 48213, ContentType: "application/pdf"}},
		},
		{
			ID: "inq-2", Number: "INQ-2024-5679", CustomerName: "Northwind Foods", CustomerEmail: "logistics@northwind.io",
			ServiceType: "Reefer", Origin: "Mumbai", Destination: "Pune", Priority: PriorityMedium,
			Status: InquiryUnderReview, CreatedAt: day("2024-03-01 14:40"),
			Items: []InquiryItem{{Description: "Frozen goods pallets", Quantity: 12, Weight: 400, Volume: 1.2, Value: 900}},
		},
		{
			ID: "inq-3", Number: "INQ-2024-5680", CustomerName: "Apex Components", CustomerEmail: "buy@apexcomp.com",
			ServiceType: "LTL", Origin: "Delhi", Destination: "Jaipur", Priority: PriorityLow,
			Status: InquiryQuoteSent, CreatedAt: day("2024-02-27 11:05"), QuotedAmount: 18500,
			Items: []InquiryItem{{Description: "Electronic boards", Quantity: 30, Weight: 5, Volume: 0.05, Value: 300}},
		},
		{
			ID: "inq-4", Number: "INQ-2024-5681", CustomerName: "Coastal Ceramics", CustomerEmail: "dispatch@coastalc.in",
			ServiceType: "FTL", Origin: "Kochi", Destination: "Chennai", Priority: PriorityHigh,
			Status: InquiryQuoteApproved, CreatedAt: day("2024-02-20 16:30"), QuotedAmount: 42000,
			Items: []InquiryItem{{Description: "Tile crates", Quantity: 80, Weight: 50, Volume: 0.1, Value: 40}},
		},
		{
			ID: "inq-5", Number: "INQ-2024-5682", CustomerName: "Greenleaf Pharma", CustomerEmail: "scm@greenleaf.com",
			ServiceType: "Express", Origin: "Hyderabad", Destination: "Mumbai", Priority: PriorityMedium,
			Status: InquiryExpired, CreatedAt: day("2024-01-18 10:00"), QuotedAmount: 9700,
			Items: []InquiryItem{{Description: "Medicine cartons", Quantity: 60, Weight: 8, Volume: 0.04, Value: 150}},
		},
	}
}

func SeedDrivers() []Driver {
	return []Driver{
		{ID: "drv-1", Name: "Ravi Kumar", Phone: "+91 98450 11223", LicenseNumber: "KA-0120190012345", VehicleNumber: "KA-01-AB-1234", VehicleType: "32ft Container", Rating: 4.8, Status: DriverAvailable},
		{ID: "drv-2", Name: "Suresh Patel", Phone: "+91 98250 44556", LicenseNumber: "GJ-0520170045678", VehicleNumber: "GJ-05-CD-5678", VehicleType: "20ft Truck", Rating: 4.5, Status: DriverOnTrip},
		{ID: "drv-3", Name: "Anita Sharma", Phone: "+91 99100 77889", LicenseNumber: "DL-0320200078901", VehicleNumber: "DL-03-EF-9012", VehicleType: "Reefer", Rating: 4.9, Status: DriverAvailable},
		{ID: "drv-4", Name: "Mohan Das", Phone: "+91 94440 99001", LicenseNumber: "TN-0920160090123", VehicleNumber: "TN-09-GH-3456", VehicleType: "Trailer", Rating: 4.2, Status: DriverOffDuty},
	}
}

func SeedTrips() []Trip {
	drivers := SeedDrivers()
	assigned, started, finished := drivers[1], drivers[2], drivers[3]
	return []Trip{
		{ID: "trip-1", Number: "TRP-2024-0001", CustomerName: "Marina Textiles", Origin: "Chennai", Destination: "Bangalore", CargoType: "Textiles", Weight: 1600, ScheduledAt: day("2024-03-05 06:00"), Priority: PriorityHigh, Status: TripUnassigned},
		{ID: "trip-2", Number: "TRP-2024-0002", CustomerName: "Northwind Foods", Origin: "Mumbai", Destination: "Pune", CargoType: "Frozen", Weight: 4800, ScheduledAt: day("2024-03-04 22:00"), Priority: PriorityMedium, Status: TripUnassigned},
		{ID: "trip-3", Number: "TRP-2024-0003", CustomerName: "Coastal Ceramics", Origin: "Kochi", Destination: "Chennai", CargoType: "Ceramics", Weight: 4000, ScheduledAt: day("2024-03-03 05:30"), Priority: PriorityHigh, Status: TripAssigned, AssignedDriver: &assigned},
		{ID: "trip-4", Number: "TRP-2024-0004", CustomerName: "Apex Components", Origin: "Delhi", Destination: "Jaipur", CargoType: "Electronics", Weight: 150, ScheduledAt: day("2024-03-02 08:00"), Priority: PriorityLow, Status: TripInProgress, AssignedDriver: &started},
		{ID: "trip-5", Number: "TRP-2024-0005", CustomerName: "Greenleaf Pharma", Origin: "Hyderabad", Destination: "Mumbai", CargoType: "Pharma", Weight: 480, ScheduledAt: day("2024-02-28 07:00"), Priority: PriorityMedium, Status: TripCompleted, AssignedDriver: &finished},
	}
}

func SeedPayables() []DriverPayable {
	paidAt := day("2024-02-29 17:20")
	return []DriverPayable{
		{
			ID: "pay-1", Number: "PAY-2024-0041", DriverID: "drv-1", DriverName: "Ravi Kumar", TripNumber: "TRP-2024-0001",
			Lines: []PayableLine{{Description: "Trip fare", Amount: 12000}, {Description: "Toll", Amount: 850}},
			PaymentMethod: PaymentBankTransfer, BankDetails: &BankDetails{BankName: "HDFC Bank", AccountName: "Ravi Kumar", AccountNumber: "50100012345678"},
			Status: PayablePending, DueDate: day("2024-03-10 00:00"),
		},
		{
			ID: "pay-2", Number: "PAY-2024-0042", DriverID: "drv-2", DriverName: "Suresh Patel", TripNumber: "TRP-2024-0003",
			Lines: []PayableLine{{Description: "Trip fare", Amount: 15500}},
			PaymentMethod: PaymentCash, Status: PayableApproved, DueDate: day("2024-03-08 00:00"),
		},
		{
			ID: "pay-3", Number: "PAY-2024-0043", DriverID: "drv-3", DriverName: "Anita Sharma", TripNumber: "TRP-2024-0004",
			Lines: []PayableLine{{Description: "Trip fare", Amount: 6400}, {Description: "Loading charges", Amount: 600}},
			PaymentMethod: PaymentBankTransfer, BankDetails: &BankDetails{BankName: "ICICI Bank", AccountName: "Anita Sharma", AccountNumber: "001201509876"},
			Status: PayableApproved, DueDate: day("2024-03-06 00:00"),
		},
		{
			ID: "pay-4", Number: "PAY-2024-0044", DriverID: "drv-4", DriverName: "Mohan Das", TripNumber: "TRP-2024-0005",
			Lines: []PayableLine{{Description: "Trip fare", Amount: 9800}},
			PaymentMethod: PaymentCheque, Status: PayablePaid, DueDate: day("2024-02-29 00:00"),
			PaymentReference: "CHQ-448812", PaidAt: &paidAt,
		},
		{
			ID: "pay-5", Number: "PAY-2024-0045", DriverID: "drv-2", DriverName: "Suresh Patel", TripNumber: "TRP-2024-0002",
			Lines: []PayableLine{{Description: "Waiting charges", Amount: 1200}},
			PaymentMethod: PaymentCash, Status: PayableOnHold, DueDate: day("2024-03-12 00:00"),
		},
		{
			ID: "pay-6", Number: "PAY-2024-0046", DriverID: "drv-1", DriverName: "Ravi Kumar", TripNumber: "TRP-2024-0003",
			Lines: []PayableLine{{Description: "Fuel advance", Amount: 3000}},
			PaymentMethod: PaymentCash, Status: PayableRejected, DueDate: day("2024-03-01 00:00"),
			RejectionReason: "Duplicate claim",
		},
	}
}

func SeedSLARecords() []SLARecord {
	return []SLARecord{
		{ID: "sla-1", Number: "SLA-2024-0007", TripNumber: "TRP-2024-0003", CustomerName: "Coastal Ceramics", Metric: "Pickup", TargetTime: "2024-03-03 06:00", ActualTime: "2024-03-03 05:50", Priority: PriorityHigh, Status: SLAMet},
		{ID: "sla-2", Number: "SLA-2024-0008", TripNumber: "TRP-2024-0004", CustomerName: "Apex Components", Metric: "Delivery", TargetTime: "2024-03-02 18:00", Priority: PriorityMedium, Status: SLAAtRisk},
		{ID: "sla-3", Number: "SLA-2024-0009", TripNumber: "TRP-2024-0002", CustomerName: "Northwind Foods", Metric: "Pickup", TargetTime: "2024-03-04 21:30", Priority: PriorityHigh, Status: SLAOnTrack},
		{ID: "sla-4", Number: "SLA-2024-0010", TripNumber: "TRP-2024-0005", CustomerName: "Greenleaf Pharma", Metric: "Delivery", TargetTime: "2024-02-29 09:00", ActualTime: "2024-02-29 13:45", Priority: PriorityLow, Status: SLABreached},
		{ID: "sla-5", Number: "SLA-2024-0011", TripNumber: "TRP-2024-0001", CustomerName: "Marina Textiles", Metric: "Response", TargetTime: "pending", Priority: PriorityMedium, Status: SLAOnTrack},
	}
}

func SeedUsers() []User {
	return []User{
		{ID: "usr-1", Name: "Priya Menon", Email: "priya.menon@logidash.io", Role: RoleAdmin, Department: "Operations", Status: UserActive, LastLogin: day("2024-03-02 08:55")},
		{ID: "usr-2", Name: "Arjun Rao", Email: "arjun.rao@logidash.io", Role: RoleDispatcher, Department: "Fleet", Status: UserActive, LastLogin: day("2024-03-02 07:30")},
		{ID: "usr-3", Name: "Kavya Iyer", Email: "kavya.iyer@logidash.io", Role: RoleFinance, Department: "Accounts", Status: UserLocked, LastLogin: day("2024-02-21 18:10")},
		{ID: "usr-4", Name: "Vikram Singh", Email: "vikram.singh@logidash.io", Role: RoleManager, Department: "Operations", Status: UserActive, LastLogin: day("2024-03-01 19:45")},
		{ID: "usr-5", Name: "Neha Joshi", Email: "neha.joshi@logidash.io", Role: RoleViewer, Department: "Sales", Status: UserInactive, LastLogin: day("2024-01-11 12:00")},
	}
}
