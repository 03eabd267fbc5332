// Package domain contains the core entities of frdsource.
//
// It has no dependencies on file access, logging or the CLI.
//
// # Entities
//
//   - [EventID]: run, luminosity section and event number of one event
//   - [Collection]: the FED frames produced for one event, keyed by FED id
//   - [Position]: where a stream reader currently is in its file sequence
//   - [Progress]: conversion progress persisted for operators
package domain
