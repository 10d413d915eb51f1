// supportdesk-mcp is the tool-server process: it serves the support
// operations over stdio MCP by default, or over HTTP with -http.
package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	dispatchx "github.com/castlebay/supportdesk/dispatch"
	httpserverx "github.com/castlebay/supportdesk/httpserver"
	mcpserverx "github.com/castlebay/supportdesk/mcpserver"
	configx "github.com/castlebay/supportdesk/pkg/config"
	logx "github.com/castlebay/supportdesk/pkg/logger"
	storex "github.com/castlebay/supportdesk/store"
)

func main() {
	httpAddr := flag.String("http", "", "serve over HTTP on this address (e.g. :8765) instead of stdio")

	logCfg := configx.MustNew[logx.Config]("LOG")
	// stdout carries the protocol stream in stdio mode; logs must not.
	logCfg.Stderr = true
	logx.Init(*logCfg)

	db := storex.NewSeeded()
	dispatcher := dispatchx.New(db)

	if *httpAddr != "" {
		log.Info().Str("addr", *httpAddr).Msg("serving tools over HTTP")
		if err := httpserverx.New(dispatcher).Run(*httpAddr); err != nil {
			log.Fatal().Err(err).Msg("http server terminated")
		}
		return
	}

	log.Info().Msg("serving tools over stdio")
	if err := mcpserverx.ServeStdio(mcpserverx.New(dispatcher)); err != nil {
		log.Fatal().Err(err).Msg("stdio server terminated")
	}
}
