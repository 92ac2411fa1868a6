package domain

import "time"

// Region groups branches
type Region struct {
	ID   int64
	Name string
}

// Branch is a warehouse accepting deliveries
type Branch struct {
	ID       int64
	RegionID int64
	Name     string
}

// FarmerType classifies the applicant
type FarmerType struct {
	ID   int64
	Name string
}

// Holiday is a date on which a branch accepts no appointments.
// BranchID == nil applies to every branch.
type Holiday struct {
	ID       int64
	BranchID *int64
	Date     time.Time
	Name     string
}
