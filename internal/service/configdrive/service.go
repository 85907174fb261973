package configdrive

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohmanhakim/cloudmeta/internal/service"
	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
	"github.com/rohmanhakim/cloudmeta/pkg/failure"
	"github.com/rohmanhakim/cloudmeta/pkg/fileutil"
	"github.com/rohmanhakim/cloudmeta/pkg/pathutil"
)

/*
Responsibilities

- Resolve metadata paths against a mounted config-drive copy
- Classify a missing file as absent metadata
- Release the working copy on cleanup

Retry is left off: the drive is local, so a failed read will not heal by
waiting. Password writes are unsupported; the drive is read-only media.
*/

// DriveService reads metadata from the filesystem copy of a config drive.
type DriveService struct {
	sink telemetry.Sink
	root string
	// ownsRoot marks a working copy materialized for this run; Cleanup
	// removes it. A drive mounted by the operator is left alone.
	ownsRoot bool
}

func NewDriveService(sink telemetry.Sink, root string, ownsRoot bool) *DriveService {
	return &DriveService{
		sink:     sink,
		root:     root,
		ownsRoot: ownsRoot,
	}
}

func (d *DriveService) Name() string {
	return "configdrive"
}

func (d *DriveService) EnableRetry() bool {
	return false
}

func (d *DriveService) CanPostPassword() bool {
	return false
}

func (d *DriveService) FetchData(path string) (service.Payload, failure.ClassifiedError) {
	startTime := time.Now()

	filePath, pathErr := d.resolve(path)
	if pathErr != nil {
		return service.Payload{}, pathErr
	}

	data, err := fileutil.ReadFile(filePath)
	if err != nil {
		if err.Cause == fileutil.ErrCauseNotFound {
			return service.Payload{}, service.NewNotExistingError(path)
		}
		d.sink.RecordError(
			time.Now(),
			"configdrive",
			"DriveService.FetchData",
			telemetry.CauseStorageFailure,
			err.Error(),
			[]telemetry.Attribute{
				telemetry.NewAttr(telemetry.AttrPath, path),
				telemetry.NewAttr(telemetry.AttrWritePath, filePath),
			},
		)
		return service.Payload{}, err
	}

	d.sink.RecordFetch(path, false, 0, time.Since(startTime), len(data))
	return service.NewRawPayload(data), nil
}

// PostData always fails: the drive carries no write channel back to the
// provider.
func (d *DriveService) PostData(path string, _ []byte) failure.ClassifiedError {
	return service.NewNotExistingError(path)
}

// Cleanup removes the working copy when this service materialized it.
// Safe to call unconditionally.
func (d *DriveService) Cleanup() failure.ClassifiedError {
	if !d.ownsRoot || d.root == "" {
		return nil
	}
	if err := os.RemoveAll(d.root); err != nil {
		return &fileutil.FileError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseCleanupFailed,
		}
	}
	return nil
}

// resolve maps a normalized metadata path onto the drive root, rejecting
// anything that would escape it.
func (d *DriveService) resolve(path string) (string, failure.ClassifiedError) {
	rel := pathutil.Normalize("/" + path)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || rel == "." {
		return "", service.NewNotExistingError(path)
	}

	filePath := filepath.Join(d.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(filePath, filepath.Clean(d.root)+string(filepath.Separator)) {
		return "", service.NewNotExistingError(path)
	}
	return filePath, nil
}
