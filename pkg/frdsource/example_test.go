package frdsource_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/frdsource/pkg/frd"
	"github.com/bft-labs/frdsource/pkg/frdsource"
)

// writeExampleFile writes three v5 records with 80-byte payloads.
func writeExampleFile(dir string) string {
	var b []byte
	for i := uint64(1); i <= 3; i++ {
		b, _ = frd.AppendEvent(b, frd.Event{Version: 5, Run: 1, Lumi: 1, Event: i, Payload: make([]byte, 80)})
	}
	path := filepath.Join(dir, "run1_ls0001.raw")
	_ = os.WriteFile(path, b, 0o644)
	return path
}

// ExampleNew demonstrates pulling events from a single facility.
func ExampleNew() {
	dir, _ := os.MkdirTemp("", "frdsource")
	defer os.RemoveAll(dir)

	cfg := frdsource.DefaultConfig()
	cfg.Inputs = []string{writeExampleFile(dir)}

	src, err := frdsource.New(cfg)
	if err != nil {
		fmt.Printf("failed to create source: %v\n", err)
		return
	}
	defer src.Close()

	ctx := context.Background()
	for {
		err := src.Next(ctx)
		if errors.Is(err, frdsource.ErrEndOfInput) {
			break
		}
		if err != nil {
			fmt.Printf("read failed: %v\n", err)
			return
		}
		c := src.Emit()
		frame, _ := c.Frame(cfg.FEDID)
		fmt.Printf("event %s: %d bytes\n", c.ID, len(frame))
	}
	fmt.Println(src.Status())

	// Output:
	// event 1:1:1: 120 bytes
	// event 1:1:2: 120 bytes
	// event 1:1:3: 120 bytes
	// Exhausted
}

// ExampleConvert demonstrates converting files to per-facility outputs.
func ExampleConvert() {
	dir, _ := os.MkdirTemp("", "frdsource")
	defer os.RemoveAll(dir)

	cfg := frdsource.ConvertConfig{
		Config:    frdsource.DefaultConfig(),
		OutputDir: filepath.Join(dir, "out"),
	}
	cfg.Inputs = []string{writeExampleFile(dir)}

	p, err := frdsource.Convert(context.Background(), cfg)
	if err != nil {
		fmt.Printf("convert failed: %v\n", err)
		return
	}
	fmt.Printf("events=%d files=%d bytes=%d\n", p.Events, len(p.Files), p.FEDBytes[frdsource.DefaultFEDID])

	// Output: events=3 files=1 bytes=360
}
