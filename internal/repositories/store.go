package repositories

import "context"

// Store groups the repositories of one backend together with the function
// that releases the backend's resources.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Carts    CartRepository

	closeFn func(ctx context.Context) error
}

// NewStore creates a Store. closeFn may be nil.
func NewStore(users UserRepository, products ProductRepository, carts CartRepository, closeFn func(ctx context.Context) error) *Store {
	return &Store{
		Users:    users,
		Products: products,
		Carts:    carts,
		closeFn:  closeFn,
	}
}

// Close releases the underlying connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}
