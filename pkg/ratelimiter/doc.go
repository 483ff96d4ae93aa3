// Package ratelimiter implements a fixed-window "once per window" gate on top
// of an atomic set-if-absent store operation.
//
//	limiter, err := ratelimiter.New(store, ratelimiter.WithPrefix("auth:verify:limit:"))
//	allowed, err := limiter.Allow(ctx, clientIP, time.Minute)
//	if !allowed {
//	    // too frequent
//	}
//
// Because the decision is made by the store, the gate holds across process
// instances when the store is Redis.
package ratelimiter
