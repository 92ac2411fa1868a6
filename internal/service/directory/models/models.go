package models

import "github.com/m04kA/NFA-DeliveryBookingService/internal/domain"

// RegionResponse регион
type RegionResponse struct {
	RegionID   int64
	RegionName string
}

// BranchResponse филиал
type BranchResponse struct {
	BranchID   int64
	BranchName string
}

// FarmerTypeResponse тип фермера
type FarmerTypeResponse struct {
	FarmerTypeID int64
	TypeName     string
}

func FromDomainRegions(regions []domain.Region) []RegionResponse {
	out := make([]RegionResponse, 0, len(regions))
	for _, r := range regions {
		out = append(out, RegionResponse{RegionID: r.ID, RegionName: r.Name})
	}
	return out
}

func FromDomainBranches(branches []domain.Branch) []BranchResponse {
	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchResponse{BranchID: b.ID, BranchName: b.Name})
	}
	return out
}

func FromDomainFarmerTypes(types []domain.FarmerType) []FarmerTypeResponse {
	out := make([]FarmerTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, FarmerTypeResponse{FarmerTypeID: t.ID, TypeName: t.Name})
	}
	return out
}
