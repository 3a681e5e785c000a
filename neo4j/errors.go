package neo4j

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Server error codes with a dedicated message
const (
	CodeUnauthorized     = "Neo.ClientError.Security.Unauthorized"
	CodeRateLimit        = "Neo.ClientError.Security.AuthenticationRateLimit"
	CodeForbidden        = "Neo.ClientError.Security.Forbidden"
	CodeDatabaseNotFound = "Neo.ClientError.Database.DatabaseNotFound"
	CodeSyntaxError      = "Neo.ClientError.Statement.SyntaxError"
	CodeConstraint       = "Neo.ClientError.Schema.ConstraintValidationFailed"
)

// ParseError turns a driver error into a message fit for the user
func ParseError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Connection timed out"
	}

	if errors.Is(err, context.Canceled) {
		return "Operation canceled"
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		switch neoErr.Code {
		case CodeUnauthorized:
			return "Authentication failed: invalid username or password"
		case CodeRateLimit:
			return "Authentication rate limit reached, try again later"
		case CodeForbidden:
			return "Access denied: " + neoErr.Msg
		case CodeDatabaseNotFound:
			return "Database not found: " + neoErr.Msg
		case CodeSyntaxError:
			return "Cypher syntax error: " + firstLine(neoErr.Msg)
		case CodeConstraint:
			return "Constraint violation: " + neoErr.Msg
		}

		if neoErr.Msg != "" {
			return neoErr.Msg
		}
		return neoErr.Code
	}

	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) {
		return "Could not connect to Neo4j: " + connErr.Error()
	}

	var usageErr *neo4j.UsageError
	if errors.As(err, &usageErr) {
		return "Invalid connection settings: " + usageErr.Error()
	}

	return err.Error()
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return strings.TrimSpace(message[:idx])
	}
	return message
}
