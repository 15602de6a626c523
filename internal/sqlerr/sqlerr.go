// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the PostgreSQL driver and decides whether a
// failed statement was the client's fault (bad or missing values, 400) or an
// unrecoverable fault of the store (500).
package sqlerr
