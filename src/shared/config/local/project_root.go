package local

import (
	"path"
	"runtime"
	"strings"
)

const thisFile = "/src/shared/config/local/project_root.go"

// ProjectRoot only works when running from a source checkout
func ProjectRoot() string {
	_, filePath, _, ok := runtime.Caller(0)
	if !ok {
		panic("Failed to call runtime.Caller")
	}

	if !strings.HasSuffix(filePath, thisFile) {
		panic("project_root.go has moved, expected it at " + thisFile)
	}

	return path.Clean(strings.TrimSuffix(filePath, thisFile))
}
