// Package remoteasset waits for uploaded media assets to become usable by a
// remote inference service.
//
// The service processes uploads asynchronously: a handle starts pending and
// eventually turns active or failed. The Poller re-queries at a fixed
// interval under a wall-clock budget and reports the three outcomes as
// distinct error kinds. The status query is injected by the caller, so the
// package has no service dependency of its own.
package remoteasset
