package converter

import (
	"image/color"

	"github.com/carmacs2023/photo-tools/pkg/imgutil"
)

type Options struct {
	Source      string
	Destination string
	Size        int
	Format      imgutil.OutputFormat
	Background  color.NRGBA
	Quality     int
	Recursive   bool
	Mirror      bool
	AutoOrient  bool
	Workers     int

	ExcludeExtensions []string
	ExcludeNames      []string
}

// Request describes a single conversion. The producer builds one per eligible
// file and it is never mutated afterwards.
type Request struct {
	SourcePath string
	DestBase   string
	Size       int
	Format     imgutil.OutputFormat
	Background color.NRGBA
	Quality    int
	AutoOrient bool
}

type Job struct {
	Request
	RelPath string
}

type Result struct {
	Job
	OutputPath   string
	BytesWritten int64
	Err          error
}

type Failure struct {
	RelPath string
	Err     error
}

// Summary is owned by the collector goroutine while a run is in flight and is
// safe to read only after Run returns. Skipped files never count as Attempted.
type Summary struct {
	Attempted    int
	Converted    int
	Failed       int
	Skipped      int
	BytesWritten int64
}

type ProgressUpdate struct {
	EligibleDelta  int
	AttemptedDelta int
	ConvertedDelta int
	FailedDelta    int
	SkippedDelta   int
	BytesDelta     int64
}
