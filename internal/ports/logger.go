package ports

import "github.com/bft-labs/frdsource/pkg/log"

// Logger is the logging port; see pkg/log.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

var (
	String   = log.String
	Int      = log.Int
	Int64    = log.Int64
	Uint16   = log.Uint16
	Uint32   = log.Uint32
	Uint64   = log.Uint64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err

	OrNoop = log.OrNoop
)
