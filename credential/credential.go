// Package credential is the host side credential store. Credentials are
// described by neo4j connector DSL files:
//
//	// credentials/movies.neo4j.yao
//	{
//	  "type": "neo4j",
//	  "label": "Movies",
//	  "options": {
//	    "host": "$ENV.NEO4J_HOST",
//	    "port": 7687,
//	    "user": "neo4j",
//	    "pass": "$SEALED.q2V0...",
//	    "database": "movies"
//	  }
//	}
package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/node-neo4j/helper"
	"github.com/yaoapp/node-neo4j/json"
	"github.com/yaoapp/node-neo4j/types"
)

// TypeNeo4j the only connector type the store accepts
const TypeNeo4j = "neo4j"

// Extensions the DSL file extensions the store reads
var Extensions = []string{".yao", ".json", ".jsonc", ".yml", ".yaml"}

// DSL the connector DSL
type DSL struct {
	Type    string                 `json:"type" yaml:"type"`
	Name    string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Label   string                 `json:"label,omitempty" yaml:"label,omitempty"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// Connector a loaded credential
type Connector struct {
	ID          string            `json:"id"`
	File        string            `json:"file,omitempty"`
	Name        string            `json:"name,omitempty"`
	Label       string            `json:"label,omitempty"`
	Credentials types.Credentials `json:"-"`
}

// Registry the loaded credentials
type Registry struct {
	connectors map[string]*Connector
	mu         sync.RWMutex
}

// Default the registry used by the package level functions
var Default = New()

// New create an empty registry
func New() *Registry {
	return &Registry{connectors: map[string]*Connector{}}
}

// Load a credential from file
func Load(file string, id string) (*Connector, error) {
	return Default.Load(file, id)
}

// LoadSource load a credential from source
func LoadSource(source []byte, id string, file string) (*Connector, error) {
	return Default.LoadSource(source, id, file)
}

// Select a loaded credential
func Select(id string) (*Connector, error) {
	return Default.Select(id)
}

// Remove a loaded credential
func Remove(id string) error {
	return Default.Remove(id)
}

// Load a credential from file
func (r *Registry) Load(file string, id string) (*Connector, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return r.LoadSource(data, id, file)
}

// LoadSource load a credential from source, the file name selects the parser
func (r *Registry) LoadSource(source []byte, id string, file string) (*Connector, error) {
	dsl := DSL{}
	if err := json.ParseFile(file, source, &dsl); err != nil {
		return nil, err
	}

	if dsl.Type != TypeNeo4j {
		return nil, fmt.Errorf("[Credential] %s type %q does not support", id, dsl.Type)
	}

	cred, err := credentialsOf(dsl.Options)
	if err != nil {
		return nil, fmt.Errorf("[Credential] %s %w", id, err)
	}

	if err := cred.Validate(); err != nil {
		return nil, fmt.Errorf("[Credential] %s %w", id, err)
	}

	label := dsl.Label
	if label == "" {
		label = dsl.Name
	}
	if label == "" {
		label = id
	}

	connector := &Connector{ID: id, File: file, Name: dsl.Name, Label: label, Credentials: cred}

	r.mu.Lock()
	r.connectors[id] = connector
	r.mu.Unlock()

	log.Info("[Credential] %s loaded (%s)", id, cred.Target())
	return connector, nil
}

// Select a loaded credential
func (r *Registry) Select(id string) (*Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connector, has := r.connectors[id]
	if !has {
		return nil, fmt.Errorf("credential %s not loaded", id)
	}
	return connector, nil
}

// Remove a loaded credential
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, has := r.connectors[id]; !has {
		return fmt.Errorf("credential %s not loaded", id)
	}
	delete(r.connectors, id)
	return nil
}

// IDs the ids of the loaded credentials, sorted
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.connectors))
	for id := range r.connectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Options the loaded credentials as picker options
func (r *Registry) Options() []types.Option {
	options := []types.Option{}
	for _, id := range r.IDs() {
		connector, err := r.Select(id)
		if err != nil {
			continue
		}
		options = append(options, types.Option{Name: connector.Label, Value: id})
	}
	return options
}

// Credentials implements host.CredentialStore
func (r *Registry) Credentials(ctx context.Context, id string) (types.Credentials, error) {
	connector, err := r.Select(id)
	if err != nil {
		return types.Credentials{}, err
	}
	return connector.Credentials, nil
}

// LoadDir loads every credential file under root, files that fail to load
// are logged and skipped
func (r *Registry) LoadDir(root string) ([]string, error) {
	return r.loadDir(root, root)
}

// loadDir loads the files under dir with ids relative to root
func (r *Registry) loadDir(root string, dir string) ([]string, error) {
	loaded := []string{}
	err := filepath.WalkDir(dir, func(file string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsDSL(file) {
			return nil
		}

		id := IDOf(root, file)
		if _, err := r.Load(file, id); err != nil {
			log.Error("[Credential] %s %s", file, err.Error())
			return nil
		}
		loaded = append(loaded, id)
		return nil
	})
	return loaded, err
}

// IsDSL reports whether the file has a credential DSL extension
func IsDSL(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, allowed := range Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// IDOf the credential id of a file under root
// e.g. root/team/movies.neo4j.yao => team.movies
func IDOf(root string, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	rel = filepath.ToSlash(rel)

	dir, name := "", rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		dir, name = rel[:i+1], rel[i+1:]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return strings.ReplaceAll(dir+name, "/", ".")
}

func credentialsOf(options map[string]interface{}) (types.Credentials, error) {
	values := map[string]interface{}{}
	for key, value := range options {
		text, ok := value.(string)
		if !ok {
			values[key] = value
			continue
		}

		resolved, err := Resolve(text)
		if err != nil {
			return types.Credentials{}, fmt.Errorf("option %s: %w", key, err)
		}
		values[key] = resolved
	}

	if port, has := values["port"]; has {
		values["port"] = helper.EnvInt(port, types.DefaultPort)
	}
	return types.CredentialsOf(values)
}

// Resolve replaces $ENV.NAME with the environment value and opens
// $SEALED.<base64> values
func Resolve(value string) (string, error) {
	value = helper.EnvString(value)
	if strings.HasPrefix(value, SealedPrefix) {
		return Open(value)
	}
	return value, nil
}
