package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/yaoapp/node-neo4j/types"
)

// Conn a driver connection owned by a single call
type Conn interface {
	VerifyConnectivity(ctx context.Context) error
	Read(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error)
	Write(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error)
	Close(ctx context.Context) error
}

// Dialer opens a connection for the given credentials. A zero timeout keeps
// the driver defaults.
type Dialer func(ctx context.Context, cred types.Credentials, timeout time.Duration) (Conn, error)

// Dial the dialer used by the helpers of this package
var Dial Dialer = dial

type driverConn struct {
	driver   neo4j.DriverWithContext
	database string
}

func dial(ctx context.Context, cred types.Credentials, timeout time.Duration) (Conn, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	auth := neo4j.BasicAuth(cred.Username, cred.Password, "")
	driver, err := neo4j.NewDriverWithContext(cred.Target(), auth, func(config *neo4j.Config) {
		config.Log = newDriverLogger(cred.Target())
		if timeout > 0 {
			config.SocketConnectTimeout = timeout
			config.ConnectionAcquisitionTimeout = timeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	return &driverConn{driver: driver, database: cred.DatabaseName()}, nil
}

// VerifyConnectivity checks the server is reachable with the credentials
func (c *driverConn) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Read runs a statement in a read session
func (c *driverConn) Read(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	return c.run(ctx, neo4j.AccessModeRead, cypher, params)
}

// Write runs a statement in a write session
func (c *driverConn) Write(ctx context.Context, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	return c.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

// Close closes the driver and every pooled connection
func (c *driverConn) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// run uses an auto-commit transaction, the driver does not retry those
func (c *driverConn) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	if params == nil {
		params = map[string]interface{}{}
	}

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Verify dials, checks connectivity and closes the connection
func Verify(ctx context.Context, cred types.Credentials, timeout time.Duration) error {
	conn, err := Dial(ctx, cred, timeout)
	if err != nil {
		return err
	}
	defer closeConn(ctx, conn)
	return conn.VerifyConnectivity(ctx)
}

func closeConn(ctx context.Context, conn Conn) {
	if err := conn.Close(ctx); err != nil {
		logError("failed to close Neo4j driver", err)
	}
}
