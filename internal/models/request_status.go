package models

// RequestStatus tracks the lifecycle of a project load
type RequestStatus string

// RequestStatus constants
const (
	RequestIdle      RequestStatus = "idle"
	RequestInFlight  RequestStatus = "in_flight"
	RequestSucceeded RequestStatus = "succeeded"
	RequestFailed    RequestStatus = "failed"
)

// IsLoading returns true while a load is in flight
func (s RequestStatus) IsLoading() bool {
	return s == RequestInFlight
}

// IsTerminal returns true if the request has finished
func (s RequestStatus) IsTerminal() bool {
	return s == RequestSucceeded || s == RequestFailed
}
