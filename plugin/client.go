package plugin

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/grpc"
	"github.com/yaoapp/node-neo4j/host"
	"github.com/yaoapp/node-neo4j/node"
	"github.com/yaoapp/node-neo4j/types"
)

// Call runs a node method and decodes the JSON response into v
func Call(model grpc.Model, method string, payload *host.Payload, v interface{}) error {
	args := []interface{}{}
	if payload != nil {
		data := map[string]interface{}{}
		raw, err := jsoniter.Marshal(payload)
		if err != nil {
			return err
		}
		if err := jsoniter.Unmarshal(raw, &data); err != nil {
			return err
		}
		args = append(args, data)
	}

	res, err := model.Exec(method, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if res == nil {
		return fmt.Errorf("%s: empty response", method)
	}
	if err := jsoniter.Unmarshal(res.Bytes, v); err != nil {
		return fmt.Errorf("%s: invalid response: %w", method, err)
	}
	return nil
}

// Describe the node descriptor, a descriptor without a semver version is
// refused
func (plugin *Plugin) Describe() (types.Description, error) {
	desc := types.Description{}
	if err := Call(plugin.Model, "describe", nil, &desc); err != nil {
		return desc, err
	}
	if err := node.CheckVersion(desc.Version); err != nil {
		return desc, fmt.Errorf("%s: %w", plugin.ID, err)
	}
	return desc, nil
}

// CredentialTest tests the credentials of the payload
func (plugin *Plugin) CredentialTest(payload *host.Payload) (types.CredentialTestResult, error) {
	res := types.CredentialTestResult{}
	err := Call(plugin.Model, "credentialTest", payload, &res)
	return res, err
}

// LoadOptions runs a load options method, e.g. getNodeLabels
func (plugin *Plugin) LoadOptions(method string, payload *host.Payload) ([]types.Option, error) {
	options := []types.Option{}
	err := Call(plugin.Model, "loadOptions."+method, payload, &options)
	return options, err
}

// ResourceMapping the tool fields of the operation in the payload
func (plugin *Plugin) ResourceMapping(payload *host.Payload) (types.ResourceMapperFields, error) {
	fields := types.ResourceMapperFields{}
	err := Call(plugin.Model, "resourceMapping", payload, &fields)
	return fields, err
}

// Execute runs the operation in the payload
func (plugin *Plugin) Execute(payload *host.Payload) ([]types.Item, error) {
	items := []types.Item{}
	err := Call(plugin.Model, "execute", payload, &items)
	return items, err
}

func payloadOf(value interface{}) (*host.Payload, error) {
	if value == nil {
		return nil, nil
	}
	return host.PayloadOf(value)
}
