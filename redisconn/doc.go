// Package redisconn provides helpers for connecting the gallery client to
// a Redis server, used when the session store is shared between processes.
// Connect retries with a bounded timeout; Healthcheck integrates the
// connection into liveness probes.
package redisconn
