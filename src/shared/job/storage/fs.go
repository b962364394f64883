package jobstorage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/errors/mark"
)

const (
	StatusFileName       = "status.txt"
	ErrorDetailsFileName = "error.txt"
)

var _ jobentity.Store = FileStore{}

// FileStore keeps every job in two directories: <uploadRoot>/<id> for the
// original upload and <outputRoot>/<id> for markers and stems.
type FileStore struct {
	uploadRoot string
	outputRoot string
}

func NewFileStore(uploadRoot string, outputRoot string) (FileStore, error) {
	absUploadRoot, err := filepath.Abs(uploadRoot)
	if err != nil {
		return FileStore{}, errors.Wrapf(err, "Failed to convert upload root %s to absolute format", uploadRoot)
	}

	absOutputRoot, err := filepath.Abs(outputRoot)
	if err != nil {
		return FileStore{}, errors.Wrapf(err, "Failed to convert output root %s to absolute format", outputRoot)
	}

	for _, dir := range []string{absUploadRoot, absOutputRoot} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return FileStore{}, errors.Wrapf(err, "Failed to create root directory %s", dir)
		}
	}

	return FileStore{
		uploadRoot: absUploadRoot,
		outputRoot: absOutputRoot,
	}, nil
}

func (f FileStore) inputDir(jobID string) string {
	return filepath.Join(f.uploadRoot, jobID)
}

func (f FileStore) outputDir(jobID string) string {
	return filepath.Join(f.outputRoot, jobID)
}

func (f FileStore) statusFile(jobID string) string {
	return filepath.Join(f.outputDir(jobID), StatusFileName)
}

func (f FileStore) errorDetailsFile(jobID string) string {
	return filepath.Join(f.outputDir(jobID), ErrorDetailsFileName)
}

func (f FileStore) job(jobID string, fileName string, stemMode jobentity.StemMode) jobentity.Job {
	return jobentity.Job{
		ID:        jobID,
		InputPath: filepath.Join(f.inputDir(jobID), filepath.Base(fileName)),
		OutputDir: f.outputDir(jobID),
		StemMode:  stemMode,
	}
}

func (f FileStore) CreateJob(_ context.Context, jobID string, fileName string, contents []byte, stemMode jobentity.StemMode) (jobentity.Job, error) {
	if !jobentity.IsValidJobID(jobID) {
		return jobentity.Job{}, errors.Newf("Job ID %q is not a valid identifier", jobID)
	}

	job := f.job(jobID, fileName, stemMode)

	if err := os.MkdirAll(filepath.Dir(job.InputPath), os.ModePerm); err != nil {
		return jobentity.Job{}, mark.Wrap(err, DefaultErrorMark, "Failed to create the job input directory")
	}

	if err := os.WriteFile(job.InputPath, contents, 0o644); err != nil {
		return jobentity.Job{}, mark.Wrap(err, DefaultErrorMark, "Failed to persist the uploaded file")
	}

	if err := os.MkdirAll(job.OutputDir, os.ModePerm); err != nil {
		return jobentity.Job{}, mark.Wrap(err, DefaultErrorMark, "Failed to create the job output directory")
	}

	return job, nil
}

func (f FileStore) RemoveJob(_ context.Context, jobID string) error {
	if !jobentity.IsValidJobID(jobID) {
		return mark.Message(JobNotFoundMark, "Job ID is not a valid identifier")
	}

	if err := os.RemoveAll(f.inputDir(jobID)); err != nil {
		return errors.Wrap(err, "Failed to remove the job input directory")
	}

	if err := os.RemoveAll(f.outputDir(jobID)); err != nil {
		return errors.Wrap(err, "Failed to remove the job output directory")
	}

	return nil
}

// LoadJob rebuilds a job created elsewhere, e.g. by a server sharing the same roots
func (f FileStore) LoadJob(_ context.Context, jobID string, fileName string, stemMode jobentity.StemMode) (jobentity.Job, error) {
	if !jobentity.IsValidJobID(jobID) {
		return jobentity.Job{}, mark.Message(JobNotFoundMark, "Job ID is not a valid identifier")
	}

	job := f.job(jobID, fileName, stemMode)

	if _, err := os.Stat(job.InputPath); err != nil {
		return jobentity.Job{}, mark.Wrap(err, JobNotFoundMark, "The job's input file does not exist")
	}

	if _, err := os.Stat(job.OutputDir); err != nil {
		return jobentity.Job{}, mark.Wrap(err, JobNotFoundMark, "The job's output directory does not exist")
	}

	return job, nil
}

func (f FileStore) readStatus(jobID string) (jobentity.Status, error) {
	contents, err := os.ReadFile(f.statusFile(jobID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jobentity.NoStatus, nil
		}

		return jobentity.NoStatus, errors.Wrap(err, "Failed to read status marker")
	}

	return jobentity.ParseStatus(string(contents)), nil
}

func (f FileStore) SetStatus(_ context.Context, jobID string, status jobentity.Status) error {
	if _, err := os.Stat(f.outputDir(jobID)); err != nil {
		return mark.Wrap(err, JobNotFoundMark, "Cannot set status for a job without an output directory")
	}

	current, err := f.readStatus(jobID)
	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to check the current status")
	}

	if !current.CanTransitionTo(status) {
		return mark.Message(InvalidTransitionMark,
			"Cannot move job status from '"+string(current)+"' to '"+string(status)+"'")
	}

	if err := writeFileAtomic(f.statusFile(jobID), []byte(status)); err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to write status marker")
	}

	return nil
}

func (f FileStore) SetErrorDetails(_ context.Context, jobID string, details string) error {
	if _, err := os.Stat(f.outputDir(jobID)); err != nil {
		return mark.Wrap(err, JobNotFoundMark, "Cannot set error details for a job without an output directory")
	}

	if err := writeFileAtomic(f.errorDetailsFile(jobID), []byte(details)); err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to write error details")
	}

	return nil
}

func (f FileStore) GetReport(_ context.Context, jobID string) (jobentity.Report, error) {
	if !jobentity.IsValidJobID(jobID) {
		return jobentity.Report{}, mark.Message(JobNotFoundMark, "Job ID is not a valid identifier")
	}

	info, err := os.Stat(f.outputDir(jobID))
	if err != nil || !info.IsDir() {
		return jobentity.Report{}, mark.Message(JobNotFoundMark, "Job output directory does not exist")
	}

	status, err := f.readStatus(jobID)
	if err != nil {
		return jobentity.Report{}, mark.Wrap(err, DefaultErrorMark, "Failed to read job status")
	}

	switch status {
	case jobentity.CompletedStatus:
		files, err := ListAudioFiles(f.outputDir(jobID))
		if err != nil {
			return jobentity.Report{}, mark.Wrap(err, DefaultErrorMark, "Failed to list output files")
		}

		return jobentity.Report{Status: jobentity.CompletedStatus, Files: files}, nil

	case jobentity.ErrorStatus:
		details, err := os.ReadFile(f.errorDetailsFile(jobID))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return jobentity.Report{}, mark.Wrap(err, DefaultErrorMark, "Failed to read error details")
		}

		return jobentity.Report{Status: jobentity.ErrorStatus, ErrorDetails: string(details)}, nil

	default:
		return jobentity.Report{Status: jobentity.ProcessingStatus}, nil
	}
}

func (f FileStore) ArtifactPath(_ context.Context, jobID string, relativePath string) (string, error) {
	if !jobentity.IsValidJobID(jobID) {
		return "", mark.Message(ArtifactNotFoundMark, "Job ID is not a valid identifier")
	}

	root := f.outputDir(jobID)
	resolved, ok := resolveWithin(root, relativePath)
	if !ok {
		return "", mark.Message(ArtifactNotFoundMark, "Requested path escapes the job output directory")
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", mark.Wrap(err, ArtifactNotFoundMark, "Requested file does not exist")
	}

	if !info.Mode().IsRegular() {
		return "", mark.Message(ArtifactNotFoundMark, "Requested path is not a regular file")
	}

	return resolved, nil
}

func resolveWithin(root string, relativePath string) (string, bool) {
	if relativePath == "" || filepath.IsAbs(relativePath) || strings.HasPrefix(relativePath, "/") {
		return "", false
	}

	resolved := filepath.Join(root, filepath.FromSlash(relativePath))
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", false
	}

	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return resolved, true
}

// ListAudioFiles walks dir and returns slash separated paths of audio
// outputs relative to dir, sorted.
func ListAudioFiles(dir string) ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !jobentity.IsAudioOutput(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return errors.Wrapf(err, "Failed to make %s relative", path)
		}

		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "Failed to walk output directory")
	}

	sort.Strings(files)
	return files, nil
}

// writeFileAtomic writes to a sibling temp file and renames it over path,
// so readers see either the old contents or the new ones.
func writeFileAtomic(path string, contents []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errors.Wrap(err, "Failed to create temp file")
	}

	tempPath := tempFile.Name()
	cleanup := func() { _ = os.Remove(tempPath) }

	if _, err := tempFile.Write(contents); err != nil {
		_ = tempFile.Close()
		cleanup()
		return errors.Wrap(err, "Failed to write temp file")
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		cleanup()
		return errors.Wrap(err, "Failed to sync temp file")
	}

	if err := tempFile.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "Failed to close temp file")
	}

	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return errors.Wrap(err, "Failed to move temp file into place")
	}

	return nil
}
