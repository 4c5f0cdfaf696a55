package util

import "errors"

var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrQuizExpired    = errors.New("quiz link expired")
	ErrEmptyUpload    = errors.New("question file is empty")
	ErrUploadTooLarge = errors.New("question file too large")
	ErrNameRequired   = errors.New("respondent name is required")
	ErrNoResults      = errors.New("no results for this quiz")
)
