package service

import "errors"

var (
	// ErrNotFound means the provider answered but had no row for the ticker.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps every failure of the screener or market-data provider.
	ErrUpstream = errors.New("upstream failure")
	// ErrHistoryDisabled is returned by History when storage is off.
	ErrHistoryDisabled = errors.New("scan history is disabled")
)
