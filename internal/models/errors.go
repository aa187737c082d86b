package models

import "errors"

var (
	ErrValidation     = errors.New("invalid item payload")
	ErrDataCorruption = errors.New("database file is not valid JSON")
	ErrTypeConversion = errors.New("stored item id is not numeric")
	ErrStoreMissing   = errors.New("item store does not exist")
)
