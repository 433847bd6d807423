package handler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"crm-import-web/internal/config"
	"crm-import-web/internal/mapping"
	"crm-import-web/internal/models"
	"crm-import-web/internal/repository"
	"crm-import-web/internal/service"
	"crm-import-web/internal/utils"
	"crm-import-web/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type ImportHandler struct {
	sessionRepo    *repository.SessionRepository
	fileService    *service.FileService
	schemaService  *service.SchemaService
	mappingService *service.MappingService
	asynqClient    *asynq.Client
	cfg            *config.Config
}

func NewImportHandler(
	sessionRepo *repository.SessionRepository,
	fileService *service.FileService,
	schemaService *service.SchemaService,
	mappingService *service.MappingService,
	asynqClient *asynq.Client,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		sessionRepo:    sessionRepo,
		fileService:    fileService,
		schemaService:  schemaService,
		mappingService: mappingService,
		asynqClient:    asynqClient,
		cfg:            cfg,
	}
}

// UploadFile accepts a CSV or Excel file, parses the header and rows, and
// creates an import session holding them.
func (h *ImportHandler) UploadFile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only CSV and Excel files (.csv, .xlsx, .xls) are allowed", nil)
	}

	if file.Size > int64(h.cfg.UploadMaxSize) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File size exceeds maximum limit", nil)
	}

	// Generate session code
	sessionCode := fmt.Sprintf("IMP-%s", uuid.New().String()[:8])

	// Save file
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, ext))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	// Parse header and rows
	columns, rows, err := h.fileService.ParseFile(filePath)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse file", err)
	}

	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encode columns", err)
	}

	session := &models.ImportSession{
		SessionCode: sessionCode,
		UserID:      userID,
		Filename:    file.Filename,
		FilePath:    filePath,
		Columns:     string(columnsJSON),
		TotalRows:   len(rows),
		Status:      models.SessionStatusUploaded,
	}

	if err := h.sessionRepo.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	// Insert source rows in batches
	batchSize := h.cfg.BatchSize
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := make([]models.SourceRow, 0, end-i)
		for j := i; j < end; j++ {
			data, err := json.Marshal(rows[j])
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encode row", err)
			}
			batch = append(batch, models.SourceRow{
				SessionID: session.ID,
				RowIndex:  j,
				Data:      string(data),
			})
		}

		if err := h.sessionRepo.BulkInsertRows(batch); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to insert rows", err)
		}
	}

	return utils.SuccessResponse(c, "File uploaded successfully", fiber.Map{
		"session":    session,
		"columns":    columns,
		"total_rows": len(rows),
		"preview":    previewRows(rows, 10),
	})
}

func (h *ImportHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	params := utils.GetPaginationParams(c)

	sessions, total, err := h.sessionRepo.GetSessions(params, userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)
	return utils.PaginatedResponseBuilder(c, "Sessions retrieved successfully", sessions, pagination)
}

func (h *ImportHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}
	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

// Run gates the import on the validation report and enqueues the
// background import task.
func (h *ImportHandler) Run(c *fiber.Ctx) error {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	if !session.ObjectID.Valid {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No target object selected for this session", nil)
	}

	fields, err := h.schemaService.FieldsForObject(int(session.ObjectID.Int64))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load object fields", err)
	}

	_, report, err := h.mappingService.Get(c.Context(), session.SessionCode, fields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No mapping found for this session", err)
	}

	if !report.CanProceed {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity,
			"Mapping has validation errors", fmt.Errorf("%s", strings.Join(report.Errors, "; ")))
	}

	if h.asynqClient == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background processing is not available", nil)
	}

	payload, err := json.Marshal(worker.ImportPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encode task payload", err)
	}

	if _, err := h.asynqClient.Enqueue(asynq.NewTask(worker.TaskImportRun, payload)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enqueue import", err)
	}

	if err := h.sessionRepo.UpdateSessionStatus(session.ID, models.SessionStatusQueued); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update session status", err)
	}

	return utils.SuccessResponse(c, "Import queued successfully", fiber.Map{
		"session_code": session.SessionCode,
		"status":       models.SessionStatusQueued,
	})
}

// GetRecords returns imported records for review, paginated.
func (h *ImportHandler) GetRecords(c *fiber.Ctx) error {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	records, err := h.sessionRepo.GetRecords(session.ID, params.Limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve records", err)
	}

	total, err := h.sessionRepo.CountRecords(session.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count records", err)
	}

	// Decode stored JSON for the response
	data := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		row := map[string]string{}
		if err := json.Unmarshal([]byte(rec.Data), &row); err != nil {
			continue
		}
		data = append(data, row)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)
	return utils.PaginatedResponseBuilder(c, "Records retrieved successfully", data, pagination)
}

func previewRows(rows []mapping.Row, limit int) []mapping.Row {
	if len(rows) < limit {
		limit = len(rows)
	}
	return rows[:limit]
}
