package errors

import "errors"

var (
	ErrInvalidGrantorID      = errors.New("invalid grantor id")
	ErrInvalidGranteeID      = errors.New("invalid grantee id")
	ErrSelfGrant             = errors.New("grantor and grantee must differ")
	ErrEmptyCapabilities     = errors.New("grant must carry at least one capability")
	ErrEmptyAssetScope       = errors.New("asset scope must be ALL or a non-empty set")
	ErrInvalidExpiry         = errors.New("expiry must be in the future")
	ErrGrantNotFound         = errors.New("grant not found")
	ErrAssetNotFound         = errors.New("asset not found")
	ErrInvalidTransition     = errors.New("grant status does not allow this transition")
	ErrNotApprover           = errors.New("only the asset's manager may approve or reject this grant")
	ErrNotRevoker            = errors.New("only the grantor or the asset's manager may revoke this grant")
	ErrGrantConcurrentUpdate = errors.New("grant was concurrently updated")
)
