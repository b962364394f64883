package executor

import (
	"context"
	"os/exec"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Executor
type Executor interface {
	Command(ctx context.Context, name string, arg ...string) Command
}

//counterfeiter:generate . Command
type Command interface {
	SetDir(dir string)
	CombinedOutput() ([]byte, error)
}

var _ Executor = BinaryFileExecutor{}

// BinaryFileExecutor runs real binaries. Cancelling ctx kills the process.
type BinaryFileExecutor struct{}

func (BinaryFileExecutor) Command(ctx context.Context, name string, arg ...string) Command {
	return &binaryCommand{
		Cmd: exec.CommandContext(ctx, name, arg...),
	}
}

type binaryCommand struct {
	*exec.Cmd
}

func (b *binaryCommand) SetDir(dir string) {
	b.Cmd.Dir = dir
}
