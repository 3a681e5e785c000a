package host

import (
	"context"
	"errors"
	"sync"

	"github.com/yaoapp/node-neo4j/types"
)

// ErrNoCredentials returned by a Mock that has no credentials configured
var ErrNoCredentials = errors.New("no credentials configured")

// Mock a Context with canned values that records the credential requests
// it receives
type Mock struct {
	// Params the node parameters
	Params map[string]interface{}

	// ItemParams per item parameter overrides
	ItemParams []map[string]interface{}

	// Cred the credentials to hand out
	Cred *types.Credentials

	// CredErr is returned instead of Cred when set
	CredErr error

	// Input the input items
	Input []types.Item

	// Continue the continueOnFail setting
	Continue bool

	mu        sync.Mutex
	requested []string
}

// Parameter implements Context
func (m *Mock) Parameter(name string, index int) (interface{}, bool) {
	if index >= 0 && index < len(m.ItemParams) {
		if value, has := m.ItemParams[index][name]; has {
			return value, true
		}
	}
	value, has := m.Params[name]
	return value, has
}

// Credentials implements Context
func (m *Mock) Credentials(ctx context.Context, name string) (types.Credentials, error) {
	m.mu.Lock()
	m.requested = append(m.requested, name)
	m.mu.Unlock()

	if m.CredErr != nil {
		return types.Credentials{}, m.CredErr
	}
	if m.Cred == nil {
		return types.Credentials{}, ErrNoCredentials
	}
	return *m.Cred, nil
}

// Items implements Context
func (m *Mock) Items() []types.Item {
	if len(m.Input) == 0 {
		return []types.Item{{}}
	}
	return m.Input
}

// ContinueOnFail implements Context
func (m *Mock) ContinueOnFail() bool {
	return m.Continue
}

// Requested the credential names requested so far
func (m *Mock) Requested() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.requested...)
}
