package server

// Server is the lifecycle contract of the application server.
type Server interface {
	// RunServer serves requests and blocks until SIGTERM, SIGINT or SIGQUIT
	// arrives and the shutdown has finished.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
