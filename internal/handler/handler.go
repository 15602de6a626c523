// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package,
// calls the service layer, and picks the success status. Errors
// are returned to the global error handler, which renders them.
package handler
