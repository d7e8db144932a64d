package repofake

import (
	"context"
	"sync"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	"github.com/google/uuid"
)

var _ credentials.Repo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory credentials.Repo for tests. It mirrors
// the store's uniqueness semantics: Insert under the lock is atomic, so a
// duplicate username always reports ErrUsernameTaken.
type FakeCredentialRepo struct {
	byUsername map[string]*credentials.Credential
	lock       sync.RWMutex
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{
		byUsername: make(map[string]*credentials.Credential),
	}
}

func (cr *FakeCredentialRepo) FindByUsername(_ context.Context, username string) (*credentials.Credential, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	credential, ok := cr.byUsername[username]
	if !ok {
		return nil, credentials.ErrNotFound
	}
	copied := *credential
	return &copied, nil
}

func (cr *FakeCredentialRepo) Insert(_ context.Context, credential *credentials.Credential) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if _, ok := cr.byUsername[credential.Username]; ok {
		return credentials.ErrUsernameTaken
	}
	if credential.ID == "" {
		credential.ID = uuid.New().String()
	}
	copied := *credential
	cr.byUsername[credential.Username] = &copied
	return nil
}
