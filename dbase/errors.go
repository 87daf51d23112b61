package dbase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Returned when the buffer ends inside the table header or the column descriptors
	ErrTruncatedHeader = errors.New("TRUNCATED_HEADER")
	// Returned when the declared rows do not fit into the table buffer
	ErrTruncatedRecordArea = errors.New("TRUNCATED_RECORD_AREA")
	// Returned when a memo block or its content lies outside the memo file
	ErrMalformedMemoBlock = errors.New("MALFORMED_MEMO_BLOCK")
	// Returned when the header values contradict each other
	ErrInvalidHeader = errors.New("INVALID_HEADER")
	// Returned when a memo block is read while no memo file is present
	ErrNoMemo = errors.New("MEMO_FILE_NOT_FOUND")
	// Returned when the end of the table is reached
	ErrEOF = errors.New("EOF")
	// Returned when a table is opened without filename
	ErrNoFilename = errors.New("MISSING_FILENAME")
)

// Error wraps an error with the chain of contexts it passed through.
type Error struct {
	context []string
	err     error
}

func newError(context string, err error) Error {
	if dbaseErr, ok := err.(Error); ok {
		dbaseErr.context = append([]string{context}, dbaseErr.context...)
		return dbaseErr
	}
	return Error{
		context: []string{context},
		err:     err,
	}
}

func newErrorf(context string, format string, a ...interface{}) Error {
	return newError(context, fmt.Errorf(format, a...))
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Unwrap() error {
	return e.err
}

// Context returns the contexts the error passed, outermost first
func (e Error) Context() []string {
	return e.context
}

func (e Error) trace() string {
	return strings.Join(append(append([]string{}, e.context...), e.err.Error()), ":")
}

// GetErrorTrace returns an error whose message contains the context trace of err
func GetErrorTrace(err error) error {
	var dbaseErr Error
	if errors.As(err, &dbaseErr) {
		return errors.New(dbaseErr.trace())
	}
	return err
}
