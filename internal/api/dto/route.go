package dto

import "time"

type HomeBaseRequest struct {
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	UseCurrentLocation bool     `json:"use_current_location"`
}

type OptimizeRequest struct {
	UseAI    bool             `json:"use_ai"`
	HomeBase *HomeBaseRequest `json:"home_base"`
}

type RouteResponse struct {
	Visits             []VisitResponse `json:"visits"`
	TotalDistanceMiles float64         `json:"total_distance_miles"`
	TotalTimeSeconds   float64         `json:"total_time_seconds"`
	Efficiency         float64         `json:"efficiency"`
	CreatedAt          time.Time       `json:"created_at"`
	Reasoning          string          `json:"reasoning"`
	Feasible           bool            `json:"feasible"`
	Origin             string          `json:"origin"`
}
