package repository

import "errors"

// ErrCaseNotFound is returned by CaseExists when the case id is unknown.
var ErrCaseNotFound = errors.New("case not found")
