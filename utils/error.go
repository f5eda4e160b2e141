package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorInvalidInput marks request-validation failures so handlers can map
// them to 400 instead of 500. Wrap with fmt.Errorf("%w: detail", ...).
var ErrorInvalidInput = errors.New("invalid input")
