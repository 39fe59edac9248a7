package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrQueueFull  = errors.New("evaluation queue full")
	ErrProcessing = errors.New("evaluation still processing")
	ErrJobFailed  = errors.New("evaluation failed")
)
