package archive

import (
	"context"

	"github.com/matzehuels/geomech/pkg/errors"
)

// NullStore discards every record.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return NullStore{}
}

func (NullStore) Save(context.Context, Record) error { return nil }

func (NullStore) Get(_ context.Context, id string) (Record, error) {
	return Record{}, errors.New(errors.ErrCodeNotFound, "run %s not found (archive disabled)", id)
}

func (NullStore) List(context.Context, ListOptions) ([]Record, error) { return nil, nil }

func (NullStore) Close() error { return nil }

var _ Store = NullStore{}
