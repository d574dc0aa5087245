// Package test holds integration tests that drive a complete chaptersafe server through its
// REST client.
package test
