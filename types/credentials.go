package types

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/yaoapp/kun/any"
	"github.com/yaoapp/kun/maps"
)

// Missing returns the names of the required fields left empty
func (c Credentials) Missing() []string {
	missing := []string{}
	if strings.TrimSpace(c.Host) == "" {
		missing = append(missing, "host")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

// Validate returns an error naming the missing required fields
func (c Credentials) Validate() error {
	missing := c.Missing()
	if len(missing) > 0 {
		return fmt.Errorf("Missing required credential fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DatabaseName returns the database to open sessions on
func (c Credentials) DatabaseName() string {
	if c.Database == "" {
		return DefaultDatabase
	}
	return c.Database
}

// Target returns the driver URI. A host without scheme is dialed over bolt://,
// the port is appended unless the host already carries one.
func (c Credentials) Target() string {
	host := strings.TrimRight(strings.TrimSpace(c.Host), "/")
	if !strings.Contains(host, "://") {
		host = "bolt://" + host
	}

	u, err := url.Parse(host)
	if err != nil || u.Port() != "" {
		return host
	}

	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	return u.String()
}

// CredentialsOf converts the value the host hands over into Credentials
func CredentialsOf(value interface{}) (Credentials, error) {
	switch v := value.(type) {
	case Credentials:
		return v, nil

	case *Credentials:
		if v == nil {
			return Credentials{}, fmt.Errorf("credentials are required")
		}
		return *v, nil

	case maps.MapStrAny:
		return credentialsFromMap(v), nil

	case map[string]interface{}:
		return credentialsFromMap(v), nil

	case nil:
		return Credentials{}, fmt.Errorf("credentials are required")
	}

	return Credentials{}, fmt.Errorf("credentials type %T does not support", value)
}

func credentialsFromMap(data map[string]interface{}) Credentials {
	cred := Credentials{
		Host:     stringOf(data, "host"),
		Username: stringOf(data, "username", "user"),
		Password: stringOf(data, "password", "pass"),
		Database: stringOf(data, "database", "db"),
	}

	switch port := data["port"].(type) {
	case nil:
	case int:
		cred.Port = port
	case int64:
		cred.Port = int(port)
	case float64:
		cred.Port = int(port)
	case string:
		if port != "" {
			cred.Port = any.Of(port).CInt()
		}
	default:
		cred.Port = any.Of(port).CInt()
	}
	return cred
}

func stringOf(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, has := data[key]; has && v != nil {
			return any.Of(v).CString()
		}
	}
	return ""
}
