// Package autoload initializes the global logger from the LOG_* environment
// on import. Underscore-import it from main.
package autoload

import (
	configx "github.com/castlebay/supportdesk/pkg/config"
	logx "github.com/castlebay/supportdesk/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
