package repository

import (
	"context"
)

// Keys used in the client state store.
const (
	KeyAuthToken = "auth_token"
)

//go:generate mockery --name=StateRepository --structname=MockStateRepository --filename=StateRepository.go --output=mocks --outpkg=mocks --with-expecter=false

// StateRepository persists small pieces of client state that must survive a
// restart. It is the durable counterpart of the in-memory session.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
