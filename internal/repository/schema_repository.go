package repository

import (
	"fmt"

	"crm-import-web/internal/models"
	"crm-import-web/internal/utils"

	"github.com/jmoiron/sqlx"
)

type SchemaRepository struct {
	db *sqlx.DB
}

func NewSchemaRepository(db *sqlx.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Objects

func (r *SchemaRepository) GetObjects(params utils.PaginationParams) ([]models.CRMObject, int64, error) {
	var objects []models.CRMObject
	var total int64

	whereClause := "WHERE is_active = 1"
	args := []interface{}{}

	if params.Search != "" {
		whereClause += " AND (object_key LIKE ? OR display_name LIKE ?)"
		search := "%" + params.Search + "%"
		args = append(args, search, search)
	}

	countQuery := "SELECT COUNT(*) FROM crm_objects " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM crm_objects %s ORDER BY object_key LIMIT ? OFFSET ?", whereClause)
	args = append(args, params.Limit, utils.GetOffset(params.Page, params.Limit))
	if err := r.db.Select(&objects, query, args...); err != nil {
		return nil, 0, err
	}

	return objects, total, nil
}

func (r *SchemaRepository) GetObjectByID(id int) (*models.CRMObject, error) {
	var object models.CRMObject
	query := "SELECT * FROM crm_objects WHERE id = ? LIMIT 1"
	if err := r.db.Get(&object, query, id); err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *SchemaRepository) GetObjectByKey(key string) (*models.CRMObject, error) {
	var object models.CRMObject
	query := "SELECT * FROM crm_objects WHERE object_key = ? LIMIT 1"
	if err := r.db.Get(&object, query, key); err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *SchemaRepository) CreateObject(object *models.CRMObject) error {
	query := `INSERT INTO crm_objects (object_key, display_name, is_active)
	          VALUES (:object_key, :display_name, :is_active)`
	result, err := r.db.NamedExec(query, object)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	object.ID = int(id)
	return nil
}

func (r *SchemaRepository) UpdateObject(object *models.CRMObject) error {
	query := `UPDATE crm_objects SET object_key = :object_key, display_name = :display_name,
	          is_active = :is_active WHERE id = :id`
	_, err := r.db.NamedExec(query, object)
	return err
}

func (r *SchemaRepository) DeleteObject(id int) error {
	_, err := r.db.Exec("UPDATE crm_objects SET is_active = 0 WHERE id = ?", id)
	return err
}

// Fields

func (r *SchemaRepository) GetFieldsByObjectID(objectID int) ([]models.CRMField, error) {
	var fields []models.CRMField
	query := `SELECT * FROM crm_fields WHERE object_id = ? AND is_active = 1
	          ORDER BY sort_order, field_key`
	if err := r.db.Select(&fields, query, objectID); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *SchemaRepository) GetFieldByID(id int) (*models.CRMField, error) {
	var field models.CRMField
	query := "SELECT * FROM crm_fields WHERE id = ? LIMIT 1"
	if err := r.db.Get(&field, query, id); err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *SchemaRepository) CreateField(field *models.CRMField) error {
	query := `INSERT INTO crm_fields (object_id, field_key, display_name, data_type,
	          is_required, sort_order, is_active)
	          VALUES (:object_id, :field_key, :display_name, :data_type,
	          :is_required, :sort_order, :is_active)`
	result, err := r.db.NamedExec(query, field)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	field.ID = int(id)
	return nil
}

func (r *SchemaRepository) UpdateField(field *models.CRMField) error {
	query := `UPDATE crm_fields SET field_key = :field_key, display_name = :display_name,
	          data_type = :data_type, is_required = :is_required, sort_order = :sort_order,
	          is_active = :is_active WHERE id = :id`
	_, err := r.db.NamedExec(query, field)
	return err
}

func (r *SchemaRepository) DeleteField(id int) error {
	_, err := r.db.Exec("UPDATE crm_fields SET is_active = 0 WHERE id = ?", id)
	return err
}

func (r *SchemaRepository) BulkInsertFields(fields []models.CRMField) error {
	if len(fields) == 0 {
		return nil
	}
	query := `INSERT INTO crm_fields (object_id, field_key, display_name, data_type,
	          is_required, sort_order, is_active)
	          VALUES (:object_id, :field_key, :display_name, :data_type,
	          :is_required, :sort_order, :is_active)`
	_, err := r.db.NamedExec(query, fields)
	return err
}
