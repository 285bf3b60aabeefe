package recognize

import "errors"

var (
	// ErrPoolClosed is returned by Acquire after the pool has been closed.
	ErrPoolClosed = errors.New("recognize: session pool closed")

	// ErrSessionClosed is returned by Infer after the session has been closed.
	ErrSessionClosed = errors.New("recognize: session closed")

	// ErrOutputSize indicates the model output does not match the alphabet.
	ErrOutputSize = errors.New("recognize: model output does not match alphabet")

	// ErrNoClass indicates the layout excludes every class of the alphabet.
	ErrNoClass = errors.New("recognize: no class allowed for slot")

	// ErrSlotOutsideLayout indicates an indexed request past the end of the plate layout.
	ErrSlotOutsideLayout = errors.New("recognize: slot outside plate layout")
)
