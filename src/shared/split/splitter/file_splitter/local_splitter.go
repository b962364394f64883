package file_splitter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"github.com/veedubyou/stem-splitter/src/shared/split/executor"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter"
)

var _ splitter.FileSplitter = LocalFileSplitter{}

var spleeterParamMap = map[jobentity.StemMode]string{
	jobentity.TwoStems:  "spleeter:2stems",
	jobentity.FourStems: "spleeter:4stems",
	jobentity.FiveStems: "spleeter:5stems",
}

// each stem lands in its own directory, e.g. vocals/song.mp3
const spleeterFilenameFormat = "{instrument}/{filename}.{codec}"

func NewLocalFileSplitter(workingDir string, spleeterBinPath string, executor executor.Executor) (LocalFileSplitter, error) {
	absWorkingDir, err := filepath.Abs(workingDir)
	if err != nil {
		return LocalFileSplitter{}, cerr.Wrap(err).Error("Failed to convert working dir to absolute format")
	}

	if err := os.MkdirAll(absWorkingDir, os.ModePerm); err != nil {
		return LocalFileSplitter{}, cerr.Field("working_dir", absWorkingDir).
			Wrap(err).Error("Failed to create working dir")
	}

	return LocalFileSplitter{
		workingDir:      absWorkingDir,
		spleeterBinPath: spleeterBinPath,
		executor:        executor,
	}, nil
}

type LocalFileSplitter struct {
	workingDir      string
	spleeterBinPath string
	executor        executor.Executor
}

func (l LocalFileSplitter) SplitFile(ctx context.Context, originalFilePath string, stemsOutputDir string, stemMode jobentity.StemMode) (splitter.StemFilePaths, error) {
	absOriginalFilePath, err := filepath.Abs(originalFilePath)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Cannot convert source path to absolute format")
	}

	errctx := cerr.Field("original_filepath", absOriginalFilePath)

	absStemsOutputDir, err := filepath.Abs(stemsOutputDir)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Cannot convert destination path to absolute format")
	}

	// splitting is a lengthy process, if we want to halt now is the time
	if ctx.Err() != nil {
		return nil, cerr.Wrap(ctx.Err()).Error("Context cancelled before splitting could happen")
	}

	if err := l.runSpleeter(ctx, absOriginalFilePath, absStemsOutputDir, stemMode); err != nil {
		return nil, cerr.Field("output_dir", absStemsOutputDir).
			Wrap(err).Error("Failed to execute spleeter")
	}

	return collectStemFilePaths(absStemsOutputDir)
}

func (l LocalFileSplitter) runSpleeter(ctx context.Context, sourcePath string, destPath string, stemMode jobentity.StemMode) error {
	logger := log.WithFields(log.Fields{
		"sourcePath": sourcePath,
		"destPath":   destPath,
		"stemMode":   stemMode,
		"workingDir": l.workingDir,
	})

	splitParam, ok := spleeterParamMap[stemMode]
	if !ok {
		return cerr.Field("stem_mode", stemMode).Error("Invalid stem mode passed in!")
	}

	logger.Info("Running spleeter command")

	args := []string{"separate", "-p", splitParam, "-o", destPath, "-c", "mp3", "-b", "320k", "-f", spleeterFilenameFormat, sourcePath}

	errctx := cerr.Field("spleeter_bin_path", l.spleeterBinPath).Field("spleeter_args", args)

	cmd := l.executor.Command(ctx, l.spleeterBinPath, args...)
	cmd.SetDir(l.workingDir)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return errctx.Field("spleeter_output", string(output)).
				Wrap(ctx.Err()).
				Error("Spleeter was stopped before it finished")
		}

		return errctx.Field("spleeter_output", string(output)).
			Wrap(err).
			Error(fmt.Sprintf("Error occurred while running spleeter: %s", string(output)))
	}

	logger.Debug(string(output))
	logger.Info("Finished spleeter command")

	return nil
}

// collectStemFilePaths keys each produced audio file by its stem directory
func collectStemFilePaths(dir string) (splitter.StemFilePaths, error) {
	logger := log.WithFields(log.Fields{
		"dir": dir,
	})

	logger.Info("Walking directory to collect stem file paths")

	outputs := splitter.StemFilePaths{}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !jobentity.IsAudioOutput(entry.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return cerr.Field("file_path", path).
				Wrap(err).Error("Failed to make file path relative")
		}

		stemName := strings.Split(filepath.ToSlash(relPath), "/")[0]
		if stemName == filepath.ToSlash(relPath) {
			stemName = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}

		outputs[stemName] = path
		return nil
	})

	if err != nil {
		return nil, cerr.Wrap(err).Error("Error reading output directory")
	}

	if len(outputs) == 0 {
		return nil, cerr.Field("dir", dir).Error("No stem files in output directory")
	}

	return outputs, nil
}
