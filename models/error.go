package models

// ErrorResponse is the {"error": ...} body returned on request failures
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthCheckResponse returns the health check response, exciting stuff
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
