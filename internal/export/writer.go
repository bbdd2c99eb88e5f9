package export

import (
	"context"
	"fmt"
	"os"
	"strings"

	"shopcore/internal/blob"
	"shopcore/internal/blob/fs"
	"shopcore/internal/blob/memory"
	"shopcore/internal/blob/s3"
	"shopcore/internal/metrics"
	"shopcore/pkg/domain"
)

// Writer persists serialized exports through a blob sink using the dated
// filename convention.
type Writer struct {
	sink  blob.Store
	clock domain.Clock
}

// NewWriter constructs a Writer over sink. A nil clock defaults to UTC now.
func NewWriter(sink blob.Store, clock domain.Clock) *Writer {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &Writer{sink: sink, clock: clock}
}

// WriteCSV stores text under `{base}_{ISO-date}.csv` and returns the artifact
// description the host uses to trigger a download.
func (w *Writer) WriteCSV(ctx context.Context, base, text string) (blob.Info, error) {
	key := Filename(base, "csv", w.clock)
	info, err := w.sink.Put(ctx, key, strings.NewReader(text), blob.PutOptions{ContentType: "text/csv"})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store export %s: %w", key, err)
	}
	metrics.ExportsWritten.WithLabelValues(string(w.sink.Driver())).Inc()
	return info, nil
}

// OpenSink selects a blob sink using environment variables. Defaults to the
// filesystem when unset.
//
//	SHOPCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	SHOPCORE_BLOB_DIR: root directory for the fs driver (default ./exports)
//	SHOPCORE_BLOB_S3_*: see the s3 package
func OpenSink(ctx context.Context) (blob.Store, error) {
	driver := os.Getenv("SHOPCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(blob.DriverFilesystem)
	}
	switch blob.Driver(driver) {
	case blob.DriverFilesystem:
		return fs.New(os.Getenv("SHOPCORE_BLOB_DIR"))
	case blob.DriverS3:
		return s3.OpenFromEnv(ctx)
	case blob.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
