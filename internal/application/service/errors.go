package service

import "errors"

var (
	// ErrSnapshotUnavailable means the registry or ledger could not be read.
	// Callers show status as unknown, never as pending.
	ErrSnapshotUnavailable = errors.New("status unknown: snapshot unavailable")

	ErrCollectionNotFound = errors.New("expected collection not found")
	ErrBlockNotFound      = errors.New("block not found")
	ErrFlatNotFound       = errors.New("flat not found")
	ErrPaymentNotFound    = errors.New("payment submission not found")
	ErrInvalidInput       = errors.New("invalid input")
)
