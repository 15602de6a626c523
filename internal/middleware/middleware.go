// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, CORS, New Relic tracing,
// panic recovery, and the route guards that turn an unacceptable
// content type or id into a routing miss.
package middleware
