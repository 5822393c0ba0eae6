package inventory

import (
	"context"
	"sort"
)

// MemStore keeps records in memory only. It satisfies Store for tests and
// throwaway runs. FailNext forces the next call of the named method to
// return the given error, which the catalog tests use to check that a
// failed write leaves the in-memory index untouched.
type MemStore struct {
	m    map[int64]Record
	fail map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[int64]Record{}, fail: map[string]error{}}
}

func (s *MemStore) FailNext(method string, err error) {
	s.fail[method] = err
}

func (s *MemStore) failure(method string) error {
	err := s.fail[method]
	delete(s.fail, method)
	return err
}

func (s *MemStore) Init(ctx context.Context) error { return s.failure("Init") }
func (s *MemStore) Ping(ctx context.Context) error { return s.failure("Ping") }

func (s *MemStore) LoadAll(ctx context.Context) ([]Record, error) {
	if err := s.failure("LoadAll"); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(s.m))
	for _, r := range s.m {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (s *MemStore) Insert(ctx context.Context, r Record) error {
	if err := s.failure("Insert"); err != nil {
		return err
	}
	s.m[r.ID()] = r
	return nil
}

func (s *MemStore) Update(ctx context.Context, r Record) error {
	if err := s.failure("Update"); err != nil {
		return err
	}
	s.m[r.ID()] = r
	return nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) error {
	if err := s.failure("Delete"); err != nil {
		return err
	}
	delete(s.m, id)
	return nil
}

func (s *MemStore) Close() error { return s.failure("Close") }
