// Package sink defines the PDW output collaborator. The design notes
// call out the source's habit of redirecting stdout and passing state
// ambiently; every implementation here is instead an explicit value
// the driver writes to and closes, the same shape as the teacher's
// storage.Storage/sharedmem.Client collaborators.
package sink

import "github.com/pv/radarsim/internal/pdw"

// Sink accepts generated PDWs in emission order and is closed once at
// the end of a run.
type Sink interface {
	Write(p pdw.PDW) error
	Close() error
}
