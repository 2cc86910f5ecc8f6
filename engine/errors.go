package engine

import "errors"

var (
	ErrAlreadyStarted      = errors.New("engine: already started")
	ErrStopped             = errors.New("engine: stopped")
	ErrMissingCollaborator = errors.New("engine: missing collaborator")
)
