package worker

import (
	"crm-import-web/internal/config"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// TaskImportRun applies a session's validated mapping and writes the
// renamed records to the CRM store.
const TaskImportRun = "import:run"

// ImportPayload identifies the session an import task runs for.
type ImportPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) {
	// Register import task handler
	importHandler := NewImportTaskHandler(db, redisClient, cfg)
	mux.HandleFunc(TaskImportRun, importHandler.HandleImport)
}
