package testutils

import "errors"

// MemStore er en ren in-memory implementasjon av store.Store for
// enhetstester. FailReads/FailWrites simulerer ødelagt lagring.
type MemStore struct {
	Data       map[string][]byte
	FailReads  bool
	FailWrites bool
}

func NewMemStore() *MemStore {
	return &MemStore{Data: map[string][]byte{}}
}

func (m *MemStore) Get(key string) ([]byte, error) {
	if m.FailReads {
		return nil, errors.New("simulert lesefeil")
	}
	data, ok := m.Data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *MemStore) Set(key string, value []byte) error {
	if m.FailWrites {
		return errors.New("simulert skrivefeil")
	}
	m.Data[key] = value
	return nil
}

func (m *MemStore) Delete(key string) error {
	delete(m.Data, key)
	return nil
}

// Has er en hjelp for assertions på persistert tilstand.
func (m *MemStore) Has(key string) bool {
	_, ok := m.Data[key]
	return ok
}
