package storage

import "context"

// StubStore is an in-memory Store for tests.
type StubStore struct {
	data map[string]string
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[string]string{}}
}

func (s *StubStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *StubStore) Put(ctx context.Context, key string, value string) error {
	s.data[key] = value
	return nil
}

func (s *StubStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *StubStore) Cleanup() {
	s.data = map[string]string{}
}
