package app

import (
	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every bounded context's route registration during server
// initialization, and to the seed tool.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item created", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db     *database.Database
	Logger logger.Logger
	Config *config.Config
}
