// Package http implements the REST transport of the job tracker.
//
// It wires the chi router, decodes JSON and multipart request bodies, and
// renders every outcome as a models.Envelope based JSON document. Request
// tracing, access logging, compression, request deadlines, auth rate
// limiting and bearer token authentication are middleware defined here.
// Business rules live in the service layer.
package http
