package handler

import (
	"fmt"
	"strconv"
	"time"

	"crm-import-web/internal/models"
	"crm-import-web/internal/repository"
	"crm-import-web/internal/service"
	"crm-import-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ObjectHandler struct {
	schemaRepo    *repository.SchemaRepository
	schemaService *service.SchemaService
	fileService   *service.FileService
}

func NewObjectHandler(
	schemaRepo *repository.SchemaRepository,
	schemaService *service.SchemaService,
	fileService *service.FileService,
) *ObjectHandler {
	return &ObjectHandler{
		schemaRepo:    schemaRepo,
		schemaService: schemaService,
		fileService:   fileService,
	}
}

func (h *ObjectHandler) GetObjects(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)

	objects, total, err := h.schemaRepo.GetObjects(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve objects", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, total)
	return utils.PaginatedResponseBuilder(c, "Objects retrieved successfully", objects, pagination)
}

func (h *ObjectHandler) GetObject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	object, err := h.schemaRepo.GetObjectByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Object not found", err)
	}

	return utils.SuccessResponse(c, "Object retrieved successfully", object)
}

func (h *ObjectHandler) CreateObject(c *fiber.Ctx) error {
	var req models.CRMObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.ObjectKey == "" || req.DisplayName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Object key and display name are required", nil)
	}

	object := &models.CRMObject{
		ObjectKey:   req.ObjectKey,
		DisplayName: req.DisplayName,
		IsActive:    true,
	}

	if err := h.schemaRepo.CreateObject(object); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create object", err)
	}

	return utils.SuccessResponse(c, "Object created successfully", object)
}

func (h *ObjectHandler) UpdateObject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	var req models.CRMObjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.ObjectKey == "" || req.DisplayName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Object key and display name are required", nil)
	}

	object, err := h.schemaRepo.GetObjectByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Object not found", err)
	}

	object.ObjectKey = req.ObjectKey
	object.DisplayName = req.DisplayName
	object.IsActive = req.IsActive

	if err := h.schemaRepo.UpdateObject(object); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update object", err)
	}

	return utils.SuccessResponse(c, "Object updated successfully", object)
}

func (h *ObjectHandler) DeleteObject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	if err := h.schemaRepo.DeleteObject(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete object", err)
	}

	return utils.SuccessResponse(c, "Object deleted successfully", nil)
}

func (h *ObjectHandler) GetFields(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	fields, err := h.schemaRepo.GetFieldsByObjectID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve fields", err)
	}

	return utils.SuccessResponse(c, "Fields retrieved successfully", fields)
}

func (h *ObjectHandler) CreateField(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	var req models.CRMFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if req.FieldKey == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Field key is required", nil)
	}

	field := &models.CRMField{
		ObjectID:    id,
		FieldKey:    req.FieldKey,
		DisplayName: req.DisplayName,
		DataType:    req.DataType,
		IsRequired:  req.IsRequired,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}

	if err := h.schemaRepo.CreateField(field); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create field", err)
	}

	return utils.SuccessResponse(c, "Field created successfully", field)
}

func (h *ObjectHandler) UpdateField(c *fiber.Ctx) error {
	fieldID, err := strconv.Atoi(c.Params("fieldId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid field ID", err)
	}

	var req models.CRMFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	field, err := h.schemaRepo.GetFieldByID(fieldID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Field not found", err)
	}

	if req.FieldKey != "" {
		field.FieldKey = req.FieldKey
	}
	field.DisplayName = req.DisplayName
	field.DataType = req.DataType
	field.IsRequired = req.IsRequired
	field.SortOrder = req.SortOrder
	field.IsActive = req.IsActive

	if err := h.schemaRepo.UpdateField(field); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update field", err)
	}

	return utils.SuccessResponse(c, "Field updated successfully", field)
}

func (h *ObjectHandler) DeleteField(c *fiber.Ctx) error {
	fieldID, err := strconv.Atoi(c.Params("fieldId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid field ID", err)
	}

	if err := h.schemaRepo.DeleteField(fieldID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete field", err)
	}

	return utils.SuccessResponse(c, "Field deleted successfully", nil)
}

// DownloadTemplate streams an XLSX whose header row is the object's field
// display names, so an export of the template auto-matches cleanly.
func (h *ObjectHandler) DownloadTemplate(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	object, err := h.schemaRepo.GetObjectByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Object not found", err)
	}

	fields, err := h.schemaService.FieldsForObject(object.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load fields", err)
	}

	f, err := h.fileService.BuildFieldTemplate(fields)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build template", err)
	}

	filename := fmt.Sprintf("%s-template-%s.xlsx",
		object.ObjectKey, time.Now().Format("20060102"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to write template", err)
	}
	return c.Send(buf.Bytes())
}

// ImportFields loads a field catalog spreadsheet for an object.
func (h *ObjectHandler) ImportFields(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid object ID", err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	filePath := fmt.Sprintf("/tmp/fields-%d-%d.xlsx", id, time.Now().UnixNano())
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	result, err := h.schemaService.ImportFields(filePath, id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to import fields", err)
	}

	return utils.SuccessResponse(c, "Fields imported", result)
}
