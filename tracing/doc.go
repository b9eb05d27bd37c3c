// Package tracing integrates observability back-ends with the harness to
// provide tracing information for fixture lifecycle phases.  All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
