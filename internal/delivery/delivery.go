// Package delivery defines the common contract for the application's
// serving surfaces (HTTP API, alerts worker).
package delivery

import "context"

// Delivery is implemented by every server the application can run.
type Delivery interface {
	// Serve starts the server and blocks until it stops.
	Serve(ctx context.Context) error
}
