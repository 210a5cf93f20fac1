// Package server runs the HTTP transport of the shop: startup, signal
// handling and graceful shutdown.
package server
