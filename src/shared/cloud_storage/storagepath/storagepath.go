package storagepath

import "path"

const DefaultPrefix = "stems"

type Generator struct {
	Prefix string
}

// GeneratePath builds <prefix>/<jobID>/<relativePath> with forward slashes
func (g Generator) GeneratePath(jobID string, relativePath string) string {
	return path.Join(g.Prefix, jobID, relativePath)
}
