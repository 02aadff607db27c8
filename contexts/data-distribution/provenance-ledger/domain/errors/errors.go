package errors

import "errors"

var (
	ErrInvalidAssetID     = errors.New("asset id is required")
	ErrInvalidPublisherID = errors.New("publisher id is required")
	ErrInvalidPacketType  = errors.New("packet type is not recognized")
	ErrEmptyPayload       = errors.New("payload is required")
	ErrPacketNotFound     = errors.New("data packet not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrIntegrityViolation = errors.New("content hash does not match stored fields")
	ErrCorrectionConflict = errors.New("a correction for this version already exists")
	ErrInvalidReaderID    = errors.New("reader id is required")
)
