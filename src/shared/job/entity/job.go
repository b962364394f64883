package jobentity

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Status string

const (
	// NoStatus is what a job reports before its worker has written a marker
	NoStatus         Status = ""
	ProcessingStatus Status = "processing"
	CompletedStatus  Status = "completed"
	ErrorStatus      Status = "error"
)

var statusRank = map[Status]int{
	NoStatus:         0,
	ProcessingStatus: 1,
	CompletedStatus:  2,
	ErrorStatus:      2,
}

// CanTransitionTo only allows forward moves: none -> processing -> completed|error
func (s Status) CanTransitionTo(next Status) bool {
	currentRank, ok := statusRank[s]
	if !ok {
		return false
	}

	nextRank, ok := statusRank[next]
	if !ok || next == NoStatus {
		return false
	}

	return nextRank > currentRank
}

// ParseStatus maps marker contents to a status. Anything unrecognized,
// including a partially written marker, reads as processing.
func ParseStatus(contents string) Status {
	switch Status(strings.TrimSpace(contents)) {
	case CompletedStatus:
		return CompletedStatus
	case ErrorStatus:
		return ErrorStatus
	default:
		return ProcessingStatus
	}
}

type StemMode string

const (
	TwoStems  StemMode = "2stems"
	FourStems StemMode = "4stems"
	FiveStems StemMode = "5stems"

	DefaultStemMode = TwoStems
)

var stemNames = map[StemMode][]string{
	TwoStems:  {"vocals", "accompaniment"},
	FourStems: {"vocals", "drums", "bass", "other"},
	FiveStems: {"vocals", "drums", "bass", "piano", "other"},
}

func ParseStemMode(mode string) (StemMode, bool) {
	if mode == "" {
		return DefaultStemMode, true
	}

	stemMode := StemMode(mode)
	_, ok := stemNames[stemMode]
	return stemMode, ok
}

func (m StemMode) StemNames() []string {
	names := stemNames[m]
	return append([]string(nil), names...)
}

var allowedExtensions = map[string]bool{
	"mp3":  true,
	"wav":  true,
	"flac": true,
	"ogg":  true,
	"m4a":  true,
	"wma":  true,
}

func IsAllowedFile(filename string) bool {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return allowedExtensions[strings.ToLower(ext)]
}

var audioOutputExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
}

func IsAudioOutput(filename string) bool {
	return audioOutputExtensions[strings.ToLower(filepath.Ext(filename))]
}

func NewJobID() string {
	return uuid.New().String()
}

// IsValidJobID guards path construction from user supplied ids
func IsValidJobID(jobID string) bool {
	parsed, err := uuid.Parse(jobID)
	return err == nil && parsed.String() == jobID
}

type Job struct {
	ID        string   `json:"job_id"`
	InputPath string   `json:"input_path"`
	OutputDir string   `json:"output_dir"`
	StemMode  StemMode `json:"stems"`
}

type Report struct {
	Status       Status
	Files        []string
	ErrorDetails string
}
