package helper

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestEnvString(t *testing.T) {
	os.Setenv("NEO4J_NODE_TEST_HOST", "db.local")
	defer os.Unsetenv("NEO4J_NODE_TEST_HOST")

	assert.Equal(t, "db.local", EnvString("$ENV.NEO4J_NODE_TEST_HOST"))
	assert.Equal(t, "fallback", EnvString("$ENV.NEO4J_NODE_TEST_UNSET", "fallback"))
	assert.Equal(t, "", EnvString("$ENV.NEO4J_NODE_TEST_UNSET"))
	assert.Equal(t, "plain", EnvString("plain"))
	assert.Equal(t, "fallback", EnvString(nil, "fallback"))
	assert.Equal(t, "7687", EnvString(7687))
}

func TestEnvInt(t *testing.T) {
	os.Setenv("NEO4J_NODE_TEST_PORT", "7688")
	defer os.Unsetenv("NEO4J_NODE_TEST_PORT")

	assert.Equal(t, 7688, EnvInt("$ENV.NEO4J_NODE_TEST_PORT"))
	assert.Equal(t, 7687, EnvInt("$ENV.NEO4J_NODE_TEST_UNSET", 7687))
	assert.Equal(t, 7000, EnvInt(7000))
	assert.Equal(t, 7001, EnvInt("7001"))
	assert.Equal(t, 7687, EnvInt(nil, 7687))
	assert.Equal(t, 7687, EnvInt("", 7687))
}

func TestDump(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	Output = buf
	defer func() { Output = os.Stdout }()

	Dump(errors.New("failed"), 1, "text", map[string]interface{}{"name": "neo4j"})
	assert.Equal(t, "failed\n1\ntext\n{\n    \"name\": \"neo4j\"\n}\n", buf.String())
}
