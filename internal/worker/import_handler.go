package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"crm-import-web/internal/config"
	"crm-import-web/internal/mapping"
	"crm-import-web/internal/models"
	"crm-import-web/internal/repository"
	"crm-import-web/internal/service"
	"crm-import-web/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type ImportTaskHandler struct {
	sessionRepo    *repository.SessionRepository
	schemaService  *service.SchemaService
	mappingService *service.MappingService
	cfg            *config.Config
	logger         *logrus.Logger
}

func NewImportTaskHandler(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) *ImportTaskHandler {
	logger := utils.GetLogger()
	return &ImportTaskHandler{
		sessionRepo:    repository.NewSessionRepository(db),
		schemaService:  service.NewSchemaService(repository.NewSchemaRepository(db), logger),
		mappingService: service.NewMappingService(redisClient, cfg.MappingTTL),
		cfg:            cfg,
		logger:         logger,
	}
}

// HandleImport executes one queued import: loads the session's stored
// mapping, re-checks the validation gate, then streams source rows in
// batches through the mapping transformer into crm_records.
func (h *ImportTaskHandler) HandleImport(ctx context.Context, task *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid import payload: %w", err)
	}

	log := h.logger.WithFields(logrus.Fields{
		"session_id":   payload.SessionID,
		"session_code": payload.SessionCode,
	})
	log.Info("import started")

	session, err := h.sessionRepo.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("session %d not found: %w", payload.SessionID, err)
	}
	if !session.ObjectID.Valid {
		return h.fail(session, "no target object selected")
	}
	objectID := int(session.ObjectID.Int64)

	fields, err := h.schemaService.FieldsForObject(objectID)
	if err != nil {
		return h.fail(session, fmt.Sprintf("failed to load fields: %v", err))
	}

	m, report, err := h.mappingService.Get(ctx, session.SessionCode, fields)
	if err != nil {
		return h.fail(session, fmt.Sprintf("failed to load mapping: %v", err))
	}
	// The handler already gated on the report; re-check in case the
	// mapping was edited between enqueue and execution.
	if !report.CanProceed {
		return h.fail(session, "mapping is no longer valid")
	}

	if err := h.sessionRepo.UpdateSessionStatus(session.ID, models.SessionStatusProcessing); err != nil {
		return err
	}

	imported, failed := 0, 0
	batchSize := h.cfg.BatchSize
	for offset := 0; ; offset += batchSize {
		sourceRows, err := h.sessionRepo.GetRows(session.ID, batchSize, offset)
		if err != nil {
			return h.fail(session, fmt.Sprintf("failed to load rows: %v", err))
		}
		if len(sourceRows) == 0 {
			break
		}

		rows := make([]mapping.Row, 0, len(sourceRows))
		indices := make([]int, 0, len(sourceRows))
		for _, src := range sourceRows {
			var row mapping.Row
			if err := json.Unmarshal([]byte(src.Data), &row); err != nil {
				failed++
				continue
			}
			rows = append(rows, row)
			indices = append(indices, src.RowIndex)
		}

		transformed := mapping.ApplyMapping(rows, m)

		records := make([]models.CRMRecord, 0, len(transformed))
		for i, row := range transformed {
			data, err := json.Marshal(row)
			if err != nil {
				failed++
				continue
			}
			records = append(records, models.CRMRecord{
				SessionID: session.ID,
				ObjectID:  objectID,
				RowIndex:  indices[i],
				Data:      string(data),
			})
		}

		if err := h.sessionRepo.BulkInsertRecords(records); err != nil {
			return h.fail(session, fmt.Sprintf("failed to insert records: %v", err))
		}
		imported += len(records)

		if err := h.sessionRepo.UpdateSessionProgress(session.ID, imported, failed); err != nil {
			return err
		}
	}

	if err := h.sessionRepo.UpdateSessionStatus(session.ID, models.SessionStatusCompleted); err != nil {
		return err
	}

	// The mapping's lifecycle ends with the import.
	if err := h.mappingService.Delete(ctx, session.SessionCode); err != nil {
		log.WithError(err).Warn("failed to clear mapping after import")
	}

	log.WithFields(logrus.Fields{
		"imported": imported,
		"failed":   failed,
	}).Info("import completed")
	return nil
}

func (h *ImportTaskHandler) fail(session *models.ImportSession, message string) error {
	if err := h.sessionRepo.MarkSessionFailed(session.ID, message); err != nil {
		h.logger.WithError(err).Error("failed to mark session failed")
	}
	return fmt.Errorf("import %s failed: %s", session.SessionCode, message)
}
