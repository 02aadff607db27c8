package errors

import "errors"

var (
	ErrInvalidAssetID            = errors.New("invalid asset id")
	ErrInvalidSubscriberID       = errors.New("invalid subscriber id")
	ErrInvalidActorID            = errors.New("invalid actor id")
	ErrAssetNotFound             = errors.New("asset not found")
	ErrSubscriptionNotFound      = errors.New("subscription not found")
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists for asset and subscriber")
	ErrInvalidTransition         = errors.New("subscription is not awaiting a response")
	ErrNotCounterparty           = errors.New("actor is not the counterparty for this response")
	ErrNotAssetManager           = errors.New("actor does not manage this asset")
)
