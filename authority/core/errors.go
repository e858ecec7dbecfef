package core

import "errors"

// Tasks errors
var (
	ErrTaskInvalidArgs = errors.New("task invalid args")
	ErrTaskNotFound    = errors.New("task not found")
)

// Tags errors
var (
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagInvalidArgs   = errors.New("tag invalid args")
)

// Labels errors
var (
	ErrLabelAlreadyExists = errors.New("label already exists")
	ErrLabelNotFound      = errors.New("label not found")
	ErrLabelInvalidArgs   = errors.New("label invalid args")
)
