package common

import "errors"

// ErrorNotFound is returned by repositories for a missing key.
var ErrorNotFound = errors.New("not found")
