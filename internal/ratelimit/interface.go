package ratelimit

import "context"

// Service limits requests globally and per client address
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Allow consumes one token from both tiers, or none when either is exhausted
	Allow(clientIP string) bool
	// Wait blocks until both tiers admit the client or ctx is done
	Wait(ctx context.Context, clientIP string) error
}
