// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the variation endpoints.
//   - rayid: generates a request id (RayID) for every request, stores it in the
//     context locals and echoes it in the X-Ray-ID response header.
package middleware
