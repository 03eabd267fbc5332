// Package fs holds the filesystem adapters: the FRD stream reader, the
// per-facility frame sink, the progress status file and the directory
// follower used by convert --follow.
package fs
