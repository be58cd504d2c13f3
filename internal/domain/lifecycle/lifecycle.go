// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and infrastructure
// clients.
const DefaultTimeout = 10 * time.Second
