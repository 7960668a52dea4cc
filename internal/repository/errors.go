package repository

import "github.com/painelweb/painel/internal/apperr"

// dbError normalizes driver and connection failures into the service
// unavailable shape.  Domain errors (validation, not found, unauthorized)
// never pass through here.
func dbError(err error) error {
	return apperr.NewServiceUnavailable("Database or query error.", err)
}
