package adapter

import "errors"

// Sentinel causes attached to flagged adapter results.
var (
	ErrPoseUnavailable   = errors.New("current pose unavailable")
	ErrBadView           = errors.New("view has no usable pose")
	ErrAcquisitionFailed = errors.New("data acquisition failed")
	ErrMovementFailed    = errors.New("movement failed")
)

// Fault records which adapter operation absorbed an underlying error.
// errors.Is sees through it to both the sentinel and the collaborator's error.
type Fault struct {
	Op  string
	Err error
}

func (f *Fault) Error() string {
	return f.Op + ": " + f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}
