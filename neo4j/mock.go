package neo4j

import (
	"context"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

// MockQuery a statement received by a MockConn
type MockQuery struct {
	Write  bool
	Cypher string
	Params map[string]interface{}
}

// MockConn an in-memory Conn used by tests, it records the statements it
// receives and how many times it was closed
type MockConn struct {
	VerifyErr error
	ReadFunc  func(cypher string, params map[string]interface{}) ([]*neo4j.Record, error)
	WriteFunc func(cypher string, params map[string]interface{}) ([]*neo4j.Record, error)

	mu      sync.Mutex
	queries []MockQuery
	closed  int
	dialed  int
	cred    types.Credentials
	timeout time.Duration
}

// VerifyConnectivity implements Conn
func (m *MockConn) VerifyConnectivity(ctx context.Context) error {
	return m.VerifyErr
}

// Read implements Conn
func (m *MockConn) Read(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	m.record(false, cypher, params)
	if m.ReadFunc == nil {
		return nil, nil
	}
	return m.ReadFunc(cypher, params)
}

// Write implements Conn
func (m *MockConn) Write(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	m.record(true, cypher, params)
	if m.WriteFunc == nil {
		return nil, nil
	}
	return m.WriteFunc(cypher, params)
}

// Close implements Conn
func (m *MockConn) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

// Closed how many times Close was called
func (m *MockConn) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Dialed how many times the mock dialer handed out this connection
func (m *MockConn) Dialed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dialed
}

// Queries the statements received so far
func (m *MockConn) Queries() []MockQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockQuery{}, m.queries...)
}

// Credentials the credentials of the last dial
func (m *MockConn) Credentials() types.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

// Timeout the timeout of the last dial
func (m *MockConn) Timeout() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeout
}

// Use replaces the package dialer with one returning this connection, the
// returned function restores the previous dialer
func (m *MockConn) Use() func() {
	prev := Dial
	Dial = func(ctx context.Context, cred types.Credentials, timeout time.Duration) (Conn, error) {
		if err := cred.Validate(); err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.dialed++
		m.cred = cred
		m.timeout = timeout
		m.mu.Unlock()
		return m, nil
	}
	return func() { Dial = prev }
}

func (m *MockConn) record(write bool, cypher string, params map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, MockQuery{Write: write, Cypher: cypher, Params: params})
}

// NewRecord builds a driver record from column names and values
func NewRecord(keys []string, values ...interface{}) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}
