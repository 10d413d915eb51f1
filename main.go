package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
	promptx "github.com/castlebay/supportdesk/agent/prompt"
	sessionx "github.com/castlebay/supportdesk/agent/session"
	dispatchx "github.com/castlebay/supportdesk/dispatch"
	configx "github.com/castlebay/supportdesk/pkg/config"
	_ "github.com/castlebay/supportdesk/pkg/logger/autoload"
	openrouterx "github.com/castlebay/supportdesk/pkg/openrouter"
	shellx "github.com/castlebay/supportdesk/shell"
	storex "github.com/castlebay/supportdesk/store"
	transportx "github.com/castlebay/supportdesk/transport"
)

type AppConfig struct {
	DefaultUserID string `envconfig:"DEFAULT_USER_ID" split_words:"true" default:"user_001"`
	MaxToolRounds int    `envconfig:"MAX_TOOL_ROUNDS" split_words:"true" default:"10"`

	// GatewayMode selects how operations run: "direct" executes in-process,
	// "stdio" spawns the supportdesk-mcp tool server.
	GatewayMode string `envconfig:"GATEWAY_MODE" split_words:"true" default:"direct"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	completer, err := openrouterx.NewCompleter(*openRouterCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}

	var (
		gateway    contractx.OperationGateway
		knownUsers func() []string
	)
	switch appCfg.GatewayMode {
	case "stdio":
		mcpCfg := configx.MustNew[transportx.Config]("MCP")
		gw, err := transportx.NewStdioGateway(ctx, *mcpCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to tool server")
		}
		gateway = gw
	default:
		db := storex.NewSeeded()
		gateway = dispatchx.NewDirectGateway(dispatchx.New(db))
		knownUsers = db.KnownAccountIDs
	}
	defer gateway.Close()

	sess, err := sessionx.New(ctx, completer, gateway, promptx.System(), sessionx.Config{
		UserID:    appCfg.DefaultUserID,
		MaxRounds: appCfg.MaxToolRounds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	sh := shellx.New(sess, os.Stdin, os.Stdout, knownUsers)
	if err := sh.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("shell terminated")
	}
}
