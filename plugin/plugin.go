package plugin

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"github.com/yaoapp/kun/grpc"
	"github.com/yaoapp/kun/log"
)

// Plugins the loaded node plugins
var Plugins = map[string]*Plugin{}

var rwlock sync.RWMutex

var pluginLogger = hclog.New(&hclog.LoggerOptions{
	Name:   "plugin",
	Output: os.Stdout,
	Level:  hclog.Error,
})

// Load starts a node plugin binary, a running plugin with the same id is
// killed first
func Load(file string, id string) (*Plugin, error) {
	rwlock.Lock()
	defer rwlock.Unlock()
	return load(file, id)
}

func load(file string, id string) (*Plugin, error) {
	if plug, has := Plugins[id]; has && !plug.Client.Exited() {
		plug.Client.Kill()
	}

	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  grpc.Handshake,
		Plugins:          grpc.PluginMap,
		Cmd:              exec.Command(file),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Logger:           pluginLogger,
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("%s(%s) %s", id, file, err.Error())
	}

	raw, err := rpcClient.Dispense("model")
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("%s(%s) %s", id, file, err.Error())
	}

	mod, ok := raw.(grpc.Model)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("%s(%s) is not a model plugin", id, file)
	}

	p := &Plugin{Client: client, Model: mod, ID: id, File: file}
	if _, err := p.Describe(); err != nil {
		client.Kill()
		return nil, fmt.Errorf("%s(%s) %s", id, file, err.Error())
	}
	Plugins[id] = p
	log.Info("[Plugin] %s loaded (%s)", id, file)
	return p, nil
}

// Select a loaded plugin, a plugin whose process has exited is reloaded
func Select(id string) (*Plugin, error) {
	rwlock.RLock()
	plug, has := Plugins[id]
	rwlock.RUnlock()
	if !has {
		return nil, fmt.Errorf("plugin %s not loaded", id)
	}

	if !plug.Client.Exited() {
		return plug, nil
	}

	log.Warn("[Plugin] %s exited, reloading", id)
	rwlock.Lock()
	defer rwlock.Unlock()
	plug, err := load(plug.File, plug.ID)
	if err != nil {
		return nil, fmt.Errorf("%s %s", id, err)
	}
	return plug, nil
}

// Remove kills a plugin and forgets it
func Remove(id string) error {
	rwlock.Lock()
	defer rwlock.Unlock()
	plug, has := Plugins[id]
	if !has {
		return fmt.Errorf("plugin %s not loaded", id)
	}
	plug.Kill()
	delete(Plugins, id)
	return nil
}

// KillAll kill all loaded plugins
func KillAll() {
	rwlock.RLock()
	defer rwlock.RUnlock()
	for _, plug := range Plugins {
		if !plug.Client.Exited() {
			plug.Client.Kill()
		}
	}
}

// SetPluginLogger set the logger handed to go-plugin
func SetPluginLogger(name string, output io.Writer, level hclog.Level) {
	pluginLogger = hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: output,
		Level:  level,
	})
}

// Kill a plugin process
func (plugin *Plugin) Kill() {
	plugin.Client.Kill()
}
