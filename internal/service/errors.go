package service

import "errors"

var (
	ErrValidation               = errors.New("validation failed")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrNotAuthenticated         = errors.New("user not authenticated")
	ErrMaxCorrectors            = errors.New("submission already has two correctors")
	ErrCorrectorAlreadySelected = errors.New("corrector already selected for this submission")
	ErrCorrectorUnavailable     = errors.New("corrector not available for assignment")
)
