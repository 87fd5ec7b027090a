// Package resilience provides retry with exponential backoff and
// jitter. The execution engine uses it for task-level retries; any
// operation returning an error can be wrapped:
//
//	err := resilience.RetryFunc(ctx, resilience.RetryConfig{
//	    MaxAttempts:    3,
//	    InitialBackoff: 250 * time.Millisecond,
//	}, func() error {
//	    return executor.Execute(ctx, in)
//	})
package resilience
