package fakesessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/workmap/auth-service/sessions"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type entry struct {
	token     string
	expiresAt time.Time
}

type FakeSessionRepo struct {
	records map[string]entry
	lock    sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		records: make(map[string]entry),
	}
}

func (sr *FakeSessionRepo) Get(_ context.Context, userID string) (string, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	rec, ok := sr.records[userID]
	if !ok || NowTimeFunc().After(rec.expiresAt) {
		return "", sessions.ErrNotFound
	}
	return rec.token, nil
}

func (sr *FakeSessionRepo) Store(_ context.Context, userID, token string, ttl time.Duration) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.records[userID] = entry{token: token, expiresAt: NowTimeFunc().Add(ttl)}
	return nil
}

func (sr *FakeSessionRepo) Remove(_ context.Context, userID string) (bool, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	rec, ok := sr.records[userID]
	if ok && NowTimeFunc().After(rec.expiresAt) {
		delete(sr.records, userID)
		return false, nil
	}
	if !ok {
		return false, nil
	}
	delete(sr.records, userID)
	return true, nil
}
