// Package api defines the JSON request and response bodies of the HTTP API.
package api

import "time"

// ErrorResponse is the body of every 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetectionResponse is a single filtered detection.
type DetectionResponse struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// PredictResponse is returned by POST /predict when detections are reported as a list.
type PredictResponse struct {
	AnimalsDetected []DetectionResponse `json:"animals_detected"`
}

// DetectionRecordResponse is a stored detection returned by GET /v1/detections.
type DetectionRecordResponse struct {
	ID         uint      `json:"id"`
	RequestID  string    `json:"request_id"`
	Animal     string    `json:"animal"`
	Confidence float64   `json:"confidence"`
	DetectedAt time.Time `json:"detected_at"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
