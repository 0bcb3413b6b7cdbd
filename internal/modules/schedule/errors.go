package schedule

import "errors"

var ErrValidation = errors.New("validation error")
