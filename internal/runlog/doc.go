// Package runlog keeps a SQLite ledger of dubbing runs so past inputs,
// outputs, and failures can be inspected with 'overdub history'.
package runlog
