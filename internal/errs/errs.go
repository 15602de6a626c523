// Package errs defines the error values the HTTP layer renders.
//
// Every failure a client can observe is an *HTTPError. It carries the
// status, a machine-friendly code for logs, and the envelope the body is
// rendered in, so handlers never write error bodies themselves.
package errs
