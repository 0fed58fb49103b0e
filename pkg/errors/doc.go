// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "timed out waiting for deployment rollout",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "namespace":  ns,
//	        "deployment": name,
//	    },
//	)
package errors
