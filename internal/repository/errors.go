package repository

import "errors"

// Sentinel errors returned by all repositories. Callers match with errors.Is
// and decide how much to surface; storage driver errors never cross this
// boundary verbatim.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
