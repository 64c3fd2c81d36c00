package profiles

import "errors"

var ErrNotFound = errors.New("not found")
