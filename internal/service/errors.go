package service

import "errors"

var (
	ErrNotInitialized  = errors.New("service not initialized - call Initialize() first")
	ErrNoCurve         = errors.New("no yield curve for currency")
	ErrUnknownCurrency = errors.New("currency not in configured set")
)
