package analytics

// TrackEventRequest represents a first-party analytics event reported
// by the site frontend
type TrackEventRequest struct {
	Event  string                 `json:"event" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// TrackEventResponse represents the response after accepting an event
type TrackEventResponse struct {
	Accepted bool `json:"accepted"`
}
