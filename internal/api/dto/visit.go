package dto

import "time"

type VisitRequest struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	PetName         string    `json:"pet_name"`
	Address         string    `json:"address"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceType     string    `json:"service_type"`
	Notes           string    `json:"notes"`
}

type VisitResponse struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	PetName         string    `json:"pet_name"`
	Address         string    `json:"address"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ServiceType     string    `json:"service_type"`
	Notes           string    `json:"notes,omitempty"`
	Completed       bool      `json:"completed"`
}

type ListVisitResponse struct {
	Visits []VisitResponse `json:"visits"`
}
