// Package notifications pushes export results to ntfy.
//
// NewService returns a no-op publisher when no topic is configured, so callers
// can publish unconditionally. Only events a band would want on their phone
// are forwarded; the rest are accepted and dropped.
package notifications
