package ingest

import "fmt"

// UnrecognizedLayoutError reports a document no classifier rule matched.
// The text is kept for the failure audit trail, not for the message.
type UnrecognizedLayoutError struct {
	Hint string
}

func (e *UnrecognizedLayoutError) Error() string {
	if e.Hint == "" {
		return "unrecognized order layout"
	}
	return fmt.Sprintf("unrecognized order layout (%s)", e.Hint)
}

// NoScheduleDataError reports a recognized document that carries no
// schedule rows, such as a summary-only export.
type NoScheduleDataError struct {
	OrderType OrderType
}

func (e *NoScheduleDataError) Error() string {
	return fmt.Sprintf("no schedule data in %s order", e.OrderType)
}

// ParseError wraps a failure inside an agency parser with enough context to
// route the document to the failed folder and say why.
type ParseError struct {
	OrderType OrderType
	Stage     string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parser: %s: %v", e.OrderType, e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
