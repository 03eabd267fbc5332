package domain

// Position describes where a stream reader is in its file sequence.
type Position struct {
	Path      string // current file, as configured
	FileIndex int    // index into the file sequence
	Offset    int64  // bytes consumed from the current file
	Records   int    // records read from the current file
	Version   uint16 // detected event header version, 0 until the first record
}

// FileSummary is reported when a stream finishes a file.
type FileSummary struct {
	Path    string `json:"path"`
	Index   int    `json:"index"`
	Records int    `json:"records"`
	Bytes   int64  `json:"bytes"`
}
