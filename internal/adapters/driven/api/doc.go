// Package api implements driven.JobAPI over the inspection backend's HTTP
// API.
//
// The client keeps the dashboard session in a cookie jar, so a session
// token restored from configuration is sent with every request. Requests
// are throttled with a token bucket and non-2xx responses are returned as
// *APIError values that unwrap to the domain errors.
package api
