package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/kun/maps"
)

func TestCredentialsTarget(t *testing.T) {
	tests := []struct {
		cred Credentials
		want string
	}{
		{Credentials{Host: "localhost", Port: 7687}, "bolt://localhost:7687"},
		{Credentials{Host: "localhost"}, "bolt://localhost:7687"},
		{Credentials{Host: "bolt://db.local", Port: 7688}, "bolt://db.local:7688"},
		{Credentials{Host: "neo4j+s://abc.databases.neo4j.io", Port: 7687}, "neo4j+s://abc.databases.neo4j.io:7687"},
		{Credentials{Host: "neo4j://db.local:9999", Port: 7687}, "neo4j://db.local:9999"},
		{Credentials{Host: " bolt://db.local/ ", Port: 7687}, "bolt://db.local:7687"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cred.Target(), tt.cred.Host)
	}
}

func TestCredentialsMissing(t *testing.T) {
	assert.Equal(t, []string{"host", "username", "password"}, Credentials{}.Missing())
	assert.Equal(t, []string{"password"}, Credentials{Host: "localhost", Username: "neo4j"}.Missing())
	assert.Empty(t, Credentials{Host: "localhost", Username: "neo4j", Password: "pass"}.Missing())

	err := Credentials{Host: "localhost"}.Validate()
	assert.EqualError(t, err, "Missing required credential fields: username, password")
	assert.Nil(t, Credentials{Host: "localhost", Username: "neo4j", Password: "pass"}.Validate())
}

func TestCredentialsDatabaseName(t *testing.T) {
	assert.Equal(t, DefaultDatabase, Credentials{}.DatabaseName())
	assert.Equal(t, "movies", Credentials{Database: "movies"}.DatabaseName())
}

func TestCredentialsOf(t *testing.T) {
	cred, err := CredentialsOf(map[string]interface{}{
		"host":     "localhost",
		"port":     "7688",
		"username": "neo4j",
		"password": "secret",
	})
	assert.Nil(t, err)
	assert.Equal(t, Credentials{Host: "localhost", Port: 7688, Username: "neo4j", Password: "secret"}, cred)

	cred, err = CredentialsOf(maps.MapStrAny{"host": "db", "port": 7000, "user": "u", "pass": "p", "database": "movies"})
	assert.Nil(t, err)
	assert.Equal(t, Credentials{Host: "db", Port: 7000, Username: "u", Password: "p", Database: "movies"}, cred)

	cred, err = CredentialsOf(&Credentials{Host: "db"})
	assert.Nil(t, err)
	assert.Equal(t, "db", cred.Host)

	_, err = CredentialsOf(nil)
	assert.Error(t, err)

	_, err = CredentialsOf(42)
	assert.Error(t, err)
}
