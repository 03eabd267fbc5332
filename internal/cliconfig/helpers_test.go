package cliconfig

import (
	"strings"
	"testing"
)

// checkConfig compares every field of got against want.
func checkConfig(t *testing.T, got, want Config) {
	t.Helper()

	if strings.Join(got.Inputs, ",") != strings.Join(want.Inputs, ",") {
		t.Errorf("Inputs = %v, want %v", got.Inputs, want.Inputs)
	}
	if strings.Join(got.SecondaryInputs, ",") != strings.Join(want.SecondaryInputs, ",") {
		t.Errorf("SecondaryInputs = %v, want %v", got.SecondaryInputs, want.SecondaryInputs)
	}
	if got.OutputDir != want.OutputDir {
		t.Errorf("OutputDir = %v, want %v", got.OutputDir, want.OutputDir)
	}
	if got.StateDir != want.StateDir {
		t.Errorf("StateDir = %v, want %v", got.StateDir, want.StateDir)
	}
	if got.FEDID != want.FEDID || got.FEDID2 != want.FEDID2 {
		t.Errorf("FED ids = %d/%d, want %d/%d", got.FEDID, got.FEDID2, want.FEDID, want.FEDID2)
	}
	if got.VerifyChecksum != want.VerifyChecksum {
		t.Errorf("VerifyChecksum = %v, want %v", got.VerifyChecksum, want.VerifyChecksum)
	}
	if got.VerifyAdler32 != want.VerifyAdler32 {
		t.Errorf("VerifyAdler32 = %v, want %v", got.VerifyAdler32, want.VerifyAdler32)
	}
	if got.UseL1EventID != want.UseL1EventID {
		t.Errorf("UseL1EventID = %v, want %v", got.UseL1EventID, want.UseL1EventID)
	}
	if got.RunNumber != want.RunNumber {
		t.Errorf("RunNumber = %v, want %v", got.RunNumber, want.RunNumber)
	}
	if got.MaxEvents != want.MaxEvents {
		t.Errorf("MaxEvents = %v, want %v", got.MaxEvents, want.MaxEvents)
	}
	if got.FollowDir != want.FollowDir || got.FollowPattern != want.FollowPattern {
		t.Errorf("follow = %q %q, want %q %q", got.FollowDir, got.FollowPattern, want.FollowDir, want.FollowPattern)
	}
	if got.LogLevel != want.LogLevel || got.LogFormat != want.LogFormat {
		t.Errorf("log = %s/%s, want %s/%s", got.LogLevel, got.LogFormat, want.LogLevel, want.LogFormat)
	}
}
