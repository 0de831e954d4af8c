package model

import (
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed request parameter
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError reports a missing provider credential detected at
// request time
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError is a structured error the provider returned inside a 2xx
// payload. Rate-limit errors keep their 429 status; everything else is
// normalized to 400.
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// HTTPStatus returns the status the proxy surfaces for this error
func (e *UpstreamError) HTTPStatus() int {
	if e.Code == http.StatusTooManyRequests {
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}

// TransportError is a network failure or a non-2xx provider response.
// StatusCode is the upstream HTTP status when one was received, zero
// otherwise; Message is the best available description.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider request failed: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status the proxy surfaces for this error
func (e *TransportError) HTTPStatus() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
