// Command neo4j serves the Neo4j node. Started by a host it speaks the
// go-plugin protocol, the flags switch to an MCP or HTTP server or run one
// of the tooling commands.
//
//	neo4j                                   serve as a host plugin
//	neo4j -mcp -credentials ./neo4j -credential movies
//	neo4j -http :5099 -credentials ./neo4j
//	neo4j -describe
//	NEO4J_NODE_SECRET=... neo4j -seal <password>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"github.com/yaoapp/kun/grpc"
	"github.com/yaoapp/node-neo4j/api"
	"github.com/yaoapp/node-neo4j/credential"
	"github.com/yaoapp/node-neo4j/helper"
	"github.com/yaoapp/node-neo4j/mcp"
	"github.com/yaoapp/node-neo4j/node"
	"github.com/yaoapp/node-neo4j/types"
)

func main() {
	var (
		serveMCP    = flag.Bool("mcp", false, "serve the operations as MCP tools over stdio")
		httpAddr    = flag.String("http", "", "serve the method table over HTTP on the address")
		describe    = flag.Bool("describe", false, "print the node descriptor")
		seal        = flag.String("seal", "", "seal a secret with NEO4J_NODE_SECRET")
		credentials = flag.String("credentials", "", "directory of neo4j credential files, watched for changes")
		credID      = flag.String("credential", "", "credential id the MCP tools run with")
		allows      = flag.String("allows", "", "referer host allowed to call the HTTP server")
	)
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.LevelFromString(helper.EnvString("$ENV.NEO4J_NODE_LOG_LEVEL", "info")),
		Output:     output(),
		JSONFormat: true,
	})

	switch {
	case *describe:
		helper.Dump(node.Describe())
		return

	case *seal != "":
		sealed, err := credential.Seal(*seal)
		if err != nil {
			helper.Dump(err)
			os.Exit(1)
		}
		fmt.Println(sealed)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *credentials != "" {
		if err := credential.Default.Watch(ctx, *credentials); err != nil {
			logger.Error("load credentials", "root", *credentials, "error", err)
			os.Exit(1)
		}
		logger.Info("credentials loaded", "ids", credential.Default.IDs())
	}

	switch {
	case *serveMCP:
		options := mcp.Options{CredentialID: *credID, Store: credential.Default}
		if *credID == "" {
			cred := envCredentials()
			options.Credentials = &cred
		}

		s, err := mcp.New(options)
		if err != nil {
			logger.Error("mcp", "error", err)
			os.Exit(1)
		}
		if err := s.ServeStdio(); err != nil {
			logger.Error("mcp", "error", err)
			os.Exit(1)
		}

	case *httpAddr != "":
		hosts := []string{}
		if *allows != "" {
			hosts = append(hosts, *allows)
		}
		logger.Info("http", "addr", *httpAddr)
		if err := api.New(node.Default, hosts...).Run(*httpAddr); err != nil {
			logger.Error("http", "error", err)
			os.Exit(1)
		}

	default:
		logger.Debug("serve plugin", "version", node.Version)
		plugin.Serve(&plugin.ServeConfig{
			HandshakeConfig: grpc.Handshake,
			Plugins: map[string]plugin.Plugin{
				"model": &grpc.ModelGRPCPlugin{Impl: node.Default},
			},
			GRPCServer: plugin.DefaultGRPCServer,
			Logger:     logger,
		})
	}
}

// envCredentials the credentials given by NEO4J_HOST, NEO4J_PORT, NEO4J_USER,
// NEO4J_PASS and NEO4J_DATABASE
func envCredentials() types.Credentials {
	return types.Credentials{
		Host:     helper.EnvString("$ENV.NEO4J_HOST", "localhost"),
		Port:     helper.EnvInt("$ENV.NEO4J_PORT", types.DefaultPort),
		Username: helper.EnvString("$ENV.NEO4J_USER", "neo4j"),
		Password: helper.EnvString("$ENV.NEO4J_PASS"),
		Database: helper.EnvString("$ENV.NEO4J_DATABASE", types.DefaultDatabase),
	}
}

func output() io.Writer {
	root := helper.EnvString("$ENV.NEO4J_NODE_LOG")
	if root == "" {
		return os.Stderr
	}
	file, err := os.OpenFile(filepath.Join(root, "neo4j.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return file
}
