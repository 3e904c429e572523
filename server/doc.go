// Package server exposes the arrival and alert queries over HTTP.
//
// Responses are plain JSON. Arrival selections are memoized per snapshot
// generation, so repeated queries between refreshes cost one map lookup;
// due-in minutes are computed against the clock on every request.
package server
