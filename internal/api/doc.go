// Package api provides the HTTP server for the voice gateway.
//
// It exposes the inbound skill endpoint the voice platform posts events
// to, a health check, and read-only views of the group registry for
// debugging. All mutation flows through the skill endpoint; the REST
// surface never writes.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
