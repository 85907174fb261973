package configdrive

import (
	"github.com/rohmanhakim/cloudmeta/pkg/fileutil"
)

const (
	ErrCauseCleanupFailed fileutil.FileErrorCause = "cleanup failed"
)
