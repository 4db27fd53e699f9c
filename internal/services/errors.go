package services

import "errors"

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ErrInvalidFileType is returned for upload filenames whose extension is not
// allowed.
var ErrInvalidFileType = errors.New("invalid file type")
