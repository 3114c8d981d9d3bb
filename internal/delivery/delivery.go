// Package delivery contains the inbound adapters of the service.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the application.
type Delivery interface {
	Serve(ctx context.Context) error
}
