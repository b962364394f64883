package splitter

import (
	"context"

	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
)

// StemFilePaths maps a stem name such as "vocals" to the absolute path of its file
type StemFilePaths = map[string]string

type FileSplitter interface {
	SplitFile(ctx context.Context, originalFilePath string, stemOutputDir string, stemMode jobentity.StemMode) (StemFilePaths, error)
}
