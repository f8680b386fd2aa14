// Package mocks provides hand-rolled test doubles for the service and store
// interfaces consumed by the API handlers. Each mock exposes optional
// function fields for per-test behavior plus simple default values, so tests
// only override what they care about.
package mocks
