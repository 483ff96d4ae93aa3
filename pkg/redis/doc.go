// Package redis connects to Redis and exposes it as a kvstore.Store.
//
// Connect retries until the server answers a PING, Storage adapts the
// client to the key-value contract used by the auth services, and
// Healthcheck plugs into the HTTP health endpoint.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStorageFromConfig(client, cfg)
//
// SetIfAbsent is a single SET NX PX round trip, which makes it safe to use as
// a cross-instance gate.
package redis
