package errors

import "errors"

var (
	ErrInvalidOrganizationID     = errors.New("invalid organization id")
	ErrInvalidAssetID            = errors.New("invalid asset id")
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrAssetNotFound             = errors.New("asset not found")
	ErrOrganizationAlreadyExists = errors.New("organization already exists")
	ErrAssetAlreadyExists        = errors.New("asset already exists")
	ErrAssetParentCycle          = errors.New("asset parent chain forms a cycle")
)
