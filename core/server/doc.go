// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// listen port, the API key protecting the variation endpoints, and the request
// body limit that bounds image uploads.
package server
