// Package e2e drives the genshinbook binary through a PTY against a local
// upstream. Run with: go test -tags e2e ./e2e
package e2e
