// Package frdsource reads FRD event streams and re-encodes every record as a
// FED frame. It can be used through the frdsource CLI or embedded as a
// library.
//
// # Basic Usage
//
// To pull events from one facility:
//
//	cfg := frdsource.DefaultConfig()
//	cfg.Inputs = []string{"/data/run360000_ls0001.raw"}
//
//	src, err := frdsource.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	for {
//	    err := src.Next(ctx)
//	    if errors.Is(err, frdsource.ErrEndOfInput) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    c := src.Emit()
//	    frame, _ := c.Frame(cfg.FEDID)
//	    // ...
//	}
//
// Setting SecondaryInputs adds a second facility read in lockstep with the
// first; both frames of an event arrive in the same [Collection].
//
// # Conversion
//
// [Convert] drives a source to completion and writes one fed<ID>.raw file per
// facility, keeping a status.json progress record next to it. [Follow] does
// the same for files appearing in a directory.
//
// # States
//
// A Source is in one of five states: [StateIdle], [StateReading],
// [StateEmitting], [StateExhausted] or [StateFailed]. The last two are
// terminal. Use [WithEventHandler] to observe transitions.
//
// # Version
//
// Use [ModuleVersions] to get versions of all sub-modules.
package frdsource
