package dummy

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/split/executor"
)

var _ executor.Executor = &SpleeterExecutor{}

// SpleeterExecutor pretends to be spleeter: every stem file contains the
// original file's bytes followed by "-<stem name>".
type SpleeterExecutor struct {
	// Fail makes spleeter exit with an error and no output
	Fail bool
	// NoOutput makes spleeter exit cleanly without writing any stem
	NoOutput bool
	// Gate, when set, holds every run until it is closed or the context ends
	Gate chan struct{}

	lock  sync.Mutex
	calls [][]string
	dirs  []string
}

func NewDummySpleeterExecutor() *SpleeterExecutor {
	return &SpleeterExecutor{}
}

func (s *SpleeterExecutor) Command(ctx context.Context, name string, arg ...string) executor.Command {
	return &spleeterCommand{
		ctx:      ctx,
		executor: s,
		args:     append([]string{name}, arg...),
	}
}

func (s *SpleeterExecutor) CallCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.calls)
}

func (s *SpleeterExecutor) ArgsForCall(i int) []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls[i]
}

func (s *SpleeterExecutor) DirForCall(i int) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.dirs[i]
}

func (s *SpleeterExecutor) record(args []string, dir string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.calls = append(s.calls, args)
	s.dirs = append(s.dirs, dir)
}

type spleeterCommand struct {
	ctx      context.Context
	executor *SpleeterExecutor
	args     []string
	dir      string
}

func (s *spleeterCommand) SetDir(dir string) {
	s.dir = dir
}

func (s *spleeterCommand) CombinedOutput() ([]byte, error) {
	s.executor.record(s.args, s.dir)

	if s.executor.Gate != nil {
		select {
		case <-s.executor.Gate:
		case <-s.ctx.Done():
			return []byte("killed"), s.ctx.Err()
		}
	}

	if s.executor.Fail {
		return []byte("spleeter: model exploded"), ModelFailure
	}

	if s.executor.NoOutput {
		return []byte("nothing to do"), nil
	}

	outputDir := s.flagValue("-o")
	modelParam := s.flagValue("-p")
	sourcePath := s.args[len(s.args)-1]

	stemMode := jobentity.StemMode(strings.TrimPrefix(modelParam, "spleeter:"))
	stemNames := stemMode.StemNames()
	if len(stemNames) == 0 {
		return []byte("unknown model " + modelParam), errors.Newf("unknown model %s", modelParam)
	}

	contents, err := os.ReadFile(sourcePath)
	if err != nil {
		return []byte(err.Error()), err
	}

	fileName := filepath.Base(sourcePath)
	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	for _, stemName := range stemNames {
		stemPath := filepath.Join(outputDir, stemName, baseName+".mp3")
		if err := os.MkdirAll(filepath.Dir(stemPath), os.ModePerm); err != nil {
			return []byte(err.Error()), err
		}

		stemContents := append(append([]byte{}, contents...), []byte("-"+stemName)...)
		if err := os.WriteFile(stemPath, stemContents, 0o644); err != nil {
			return []byte(err.Error()), err
		}
	}

	return []byte("done"), nil
}

func (s *spleeterCommand) flagValue(flag string) string {
	for i := 0; i < len(s.args)-1; i++ {
		if s.args[i] == flag {
			return s.args[i+1]
		}
	}

	return ""
}
