package mark

import "github.com/cockroachdb/errors"

// Wrap marks handledErr so that markers.Is(err, newMarkingError) holds,
// then wraps it with msg.
func Wrap(handledErr error, newMarkingError error, msg string) error {
	newErr := errors.Mark(handledErr, newMarkingError)
	return errors.Wrap(newErr, msg)
}

func Message(newMarkingError error, msg string) error {
	err := errors.New(msg)
	return errors.Mark(err, newMarkingError)
}
