package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Location string `query:"location" json:"location"`
	Limit    int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=500"`
	From     string `query:"from" json:"from"`
	To       string `query:"to" json:"to"`
}

// FocusRequest targets a placed comparable marker either by the index it had
// in the last rendered result or by raw coordinates.
type FocusRequest struct {
	Index     *int     `json:"index,omitempty" validate:"omitempty,gte=0"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
