package cloudentity

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Uploader
type Uploader interface {
	UploadFile(ctx context.Context, localPath string, remoteKey string) error
}
