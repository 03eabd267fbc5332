// Package ports defines the interfaces between the conversion core and its
// infrastructure.
//
//   - [RecordReader]: yields decoded, verified FRD records from one stream
//   - [FrameSink]: receives the FED frame collection of each event
//   - [ProgressRepository]: persists conversion progress
//   - [Logger]: structured logging
//
// The application layer (internal/app) depends only on these interfaces;
// internal/adapters provides the file-system implementations.
package ports
