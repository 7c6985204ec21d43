package host

import (
	"sync"

	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// ContractRegistry is the host's record of which identities are
// programmatic accounts. It backs the ledger's contract-account predicate:
// any registered identity is rejected as a transfer recipient.
type ContractRegistry struct {
	mu  sync.RWMutex
	ids map[ledger.Identity]struct{}
}

// NewContractRegistry creates an empty registry.
func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{ids: make(map[ledger.Identity]struct{})}
}

// Register marks an identity as a programmatic account.
func (r *ContractRegistry) Register(id ledger.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[id] = struct{}{}
}

// Unregister removes an identity from the registry.
func (r *ContractRegistry) Unregister(id ledger.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
}

// Contains reports whether the identity is registered.
func (r *ContractRegistry) Contains(id ledger.Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ids[id]
	return ok
}
