package models

import "time"

// CRMObject is a destination object type in the CRM, e.g. Contact or Deal.
type CRMObject struct {
	ID          int       `db:"id" json:"id"`
	ObjectKey   string    `db:"object_key" json:"object_key"` // e.g. "crm.contact"
	DisplayName string    `db:"display_name" json:"display_name"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CRMField is one attribute of a CRM object. FieldKey is dot-qualified
// under the object key, e.g. "crm.contact.email".
type CRMField struct {
	ID          int       `db:"id" json:"id"`
	ObjectID    int       `db:"object_id" json:"object_id"`
	FieldKey    string    `db:"field_key" json:"field_key"`
	DisplayName string    `db:"display_name" json:"display_name"`
	DataType    string    `db:"data_type" json:"data_type"` // free-form tag: string, number, date, ...
	IsRequired  bool      `db:"is_required" json:"is_required"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CRMObjectRequest struct {
	ObjectKey   string `json:"object_key" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	IsActive    bool   `json:"is_active"`
}

type CRMFieldRequest struct {
	FieldKey    string `json:"field_key" validate:"required"`
	DisplayName string `json:"display_name"`
	DataType    string `json:"data_type"`
	IsRequired  bool   `json:"is_required"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}
