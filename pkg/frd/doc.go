// Package frd decodes the FRD (front-end readout driver) event stream format.
//
// An FRD file is an optional file header followed by a concatenation of event
// records. Each record is a fixed-size header, whose layout depends on the
// version tag in its first two bytes, followed by the detector payload and,
// for some versions, padding. All integers are little-endian.
//
// This package works on byte slices only. Reading from files, advancing
// across a file sequence and checksum verification are done by the caller;
// see internal/adapters/fs for the streaming reader built on top of it.
//
// # Event header versions
//
//	v2  version run lumi event fedSizes[1024]            4112 bytes
//	v3  version run lumi event size padding adler32        28 bytes
//	v4  version run lumi eventLo eventHi size padding adler32  32 bytes
//	v5  version run lumi event size crc32c                 24 bytes
//	v6  version(u16) flags(u16) run lumi event size crc32c 24 bytes
//
// Version 1 records carried no version tag and are not supported.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package frd
