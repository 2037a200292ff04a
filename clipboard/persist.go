package clipboard

import "context"

// Persister is a Store whose contents live in this process and need work to
// survive its exit.
type Persister interface {
	Persist(ctx context.Context) error
}

// Persist makes the current contents of st outlive this process. Stores
// whose data already lives outside the process return immediately.
func Persist(ctx context.Context, st Store) error {
	if p, ok := st.(Persister); ok {
		return p.Persist(ctx)
	}
	return nil
}
