// Package http implements the HTTP transport of the shop server.
//
// Every business operation goes through POST /query, which looks the
// operation up in a static table, verifies the bearer token and the role
// guard for non-public operations and renders either a data or an errors
// envelope. Tracing, access logging, metrics and compression are handled
// by middleware before requests reach the dispatcher.
package http
