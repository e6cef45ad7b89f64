// Package testinfra starts throwaway backing services for integration tests.
// Everything here is behind the "integration" build tag and needs Docker:
//
//	go test -tags integration ./internal/...
package testinfra
