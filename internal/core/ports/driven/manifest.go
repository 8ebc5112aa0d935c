package driven

import (
	"io"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

// JobManifestReader decodes a job manifest into jobs.
// Jobs may be returned with empty IDs and timestamps; the caller fills them.
type JobManifestReader interface {
	Read(r io.Reader) ([]domain.Job, error)
}
