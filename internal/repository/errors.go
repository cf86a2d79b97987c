package repository

import "errors"

// ErrNotFound is returned by Get when the key has no value. It abstracts away the
// driver's sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")
