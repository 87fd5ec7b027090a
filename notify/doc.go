// Package notify delivers run completion events to configured webhook
// URLs. Server errors are retried with exponential backoff; client
// errors are treated as permanent. Delivery is best effort and never
// affects the run outcome.
package notify
