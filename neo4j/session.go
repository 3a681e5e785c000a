package neo4j

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/yaoapp/kun/exception"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/types"
)

// ErrorOptionValue the value of the option that reports a failure in a picker
const ErrorOptionValue = "__error__"

// OptionsFunc reads options over an open connection
type OptionsFunc func(ctx context.Context, conn Conn) ([]types.Option, error)

// WithSession opens a connection, verifies it, hands it to fn and closes it.
// Failures never escape: they come back as a single error option so the
// picker shows the message instead of breaking.
func WithSession(ctx context.Context, cred types.Credentials, timeout time.Duration, fn OptionsFunc) (options []types.Option) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := exception.Catch(recovered)
			if err == nil {
				err = fmt.Errorf("%v", recovered)
			}
			logError("load options panic", err)
			options = ErrorOptions(err)
		}
	}()

	conn, err := Dial(ctx, cred, timeout)
	if err != nil {
		logError("failed to open Neo4j connection", err)
		return ErrorOptions(err)
	}
	defer closeConn(ctx, conn)

	if err := conn.VerifyConnectivity(ctx); err != nil {
		logError("Neo4j connectivity check failed", err)
		return ErrorOptions(err)
	}

	options, err = fn(ctx, conn)
	if err != nil {
		logError("failed to load options", err)
		return ErrorOptions(err)
	}
	return options
}

// Options runs a parameter free read query and maps the given column of
// every row to an option
func Options(ctx context.Context, cred types.Credentials, timeout time.Duration, cypher string, column string) []types.Option {
	return WithSession(ctx, cred, timeout, func(ctx context.Context, conn Conn) ([]types.Option, error) {
		records, err := conn.Read(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}
		return OptionsOf(records, column), nil
	})
}

// OptionsOf maps records to options sorted by value, rows without a string
// in the column are skipped
func OptionsOf(records []*neo4j.Record, column string) []types.Option {
	options := make([]types.Option, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		value, ok := record.Get(column)
		if !ok {
			continue
		}
		name, ok := value.(string)
		if !ok {
			continue
		}
		options = append(options, types.Option{Name: name, Value: name})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}

// ErrorOptions the single option list reporting err
func ErrorOptions(err error) []types.Option {
	return []types.Option{{
		Name:  fmt.Sprintf("Error: %s", ParseError(err)),
		Value: ErrorOptionValue,
	}}
}

func logError(message string, err error) {
	log.With(log.F{"error": err.Error()}).Error("[neo4j] %s: %s", message, ParseError(err))
}
