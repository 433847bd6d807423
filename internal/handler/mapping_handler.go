package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"crm-import-web/internal/mapping"
	"crm-import-web/internal/models"
	"crm-import-web/internal/repository"
	"crm-import-web/internal/service"
	"crm-import-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MappingHandler struct {
	sessionRepo    *repository.SessionRepository
	schemaRepo     *repository.SchemaRepository
	schemaService  *service.SchemaService
	mappingService *service.MappingService
}

func NewMappingHandler(
	sessionRepo *repository.SessionRepository,
	schemaRepo *repository.SchemaRepository,
	schemaService *service.SchemaService,
	mappingService *service.MappingService,
) *MappingHandler {
	return &MappingHandler{
		sessionRepo:    sessionRepo,
		schemaRepo:     schemaRepo,
		schemaService:  schemaService,
		mappingService: mappingService,
	}
}

// AutoMap selects the target object for a session and seeds its mapping
// from the auto-matcher. Re-running it (or switching object) replaces any
// previous mapping wholesale.
func (h *MappingHandler) AutoMap(c *fiber.Ctx) error {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	objectID, err := strconv.Atoi(c.Query("object_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object_id", err)
	}

	object, err := h.schemaRepo.GetObjectByID(objectID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Object not found", err)
	}

	fields, err := h.schemaService.FieldsForObject(object.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load object fields", err)
	}

	var columns []string
	if err := json.Unmarshal([]byte(session.Columns), &columns); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to decode session columns", err)
	}

	m, report, err := h.mappingService.AutoMatch(c.Context(), session.SessionCode, columns, fields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store mapping", err)
	}

	if err := h.sessionRepo.UpdateSessionObject(session.ID, object.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update session", err)
	}

	return utils.SuccessResponse(c, "Mapping created successfully", fiber.Map{
		"object":  object,
		"fields":  fields,
		"mapping": m,
		"report":  report,
	})
}

// GetMapping returns the working mapping with a freshly computed report.
func (h *MappingHandler) GetMapping(c *fiber.Ctx) error {
	session, fields, err := h.sessionAndFields(c)
	if err != nil {
		return err
	}

	m, report, err := h.mappingService.Get(c.Context(), session.SessionCode, fields)
	if errors.Is(err, service.ErrNoMapping) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No mapping for this session yet", err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load mapping", err)
	}

	return utils.SuccessResponse(c, "Mapping retrieved successfully", fiber.Map{
		"fields":  fields,
		"mapping": m,
		"report":  report,
	})
}

type updateEntryRequest struct {
	Column   string `json:"column"`
	FieldKey string `json:"field_key"` // empty unassigns the column
}

// UpdateEntry replaces one column's assignment and revalidates. The UI
// calls this on every selection change and renders the returned report.
func (h *MappingHandler) UpdateEntry(c *fiber.Ctx) error {
	session, fields, err := h.sessionAndFields(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Column == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Column is required", nil)
	}

	m, report, err := h.mappingService.UpdateEntry(c.Context(), session.SessionCode, req.Column, req.FieldKey, fields)
	if errors.Is(err, service.ErrNoMapping) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No mapping for this session yet", err)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update mapping", err)
	}

	return utils.SuccessResponse(c, "Mapping updated successfully", fiber.Map{
		"mapping": m,
		"report":  report,
	})
}

// ClearMapping discards the session's mapping, e.g. before switching to a
// different target object.
func (h *MappingHandler) ClearMapping(c *fiber.Ctx) error {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	if err := h.mappingService.Delete(c.Context(), session.SessionCode); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear mapping", err)
	}

	return utils.SuccessResponse(c, "Mapping cleared successfully", nil)
}

func (h *MappingHandler) sessionAndFields(c *fiber.Ctx) (*models.ImportSession, []mapping.Field, error) {
	session, err := h.sessionRepo.GetSessionByCode(c.Params("code"))
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}
	if !session.ObjectID.Valid {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusBadRequest, "No target object selected for this session", nil)
	}

	fields, err := h.schemaService.FieldsForObject(int(session.ObjectID.Int64))
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load object fields", err)
	}
	return session, fields, nil
}
