package repository

import (
	"fmt"
	"strings"

	"crm-import-web/internal/models"
	"crm-import-web/internal/utils"

	"github.com/jmoiron/sqlx"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Import sessions

func (r *SessionRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions (session_code, user_id, filename, file_path,
	          columns, total_rows, status) VALUES (:session_code, :user_id, :filename,
	          :file_path, :columns, :total_rows, :status)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *SessionRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	if err := r.db.Get(&session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetSessionByCode(code string) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE session_code = ? LIMIT 1"
	if err := r.db.Get(&session, query, code); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetSessions(params utils.PaginationParams, userID int) ([]models.ImportSession, int64, error) {
	var sessions []models.ImportSession
	var total int64

	whereClause := "WHERE user_id = ?"
	args := []interface{}{userID}

	if params.Search != "" {
		whereClause += " AND (session_code LIKE ? OR filename LIKE ?)"
		search := "%" + params.Search + "%"
		args = append(args, search, search)
	}

	countQuery := "SELECT COUNT(*) FROM import_sessions " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT * FROM import_sessions %s ORDER BY created_at DESC LIMIT ? OFFSET ?", whereClause)
	args = append(args, params.Limit, utils.GetOffset(params.Page, params.Limit))
	if err := r.db.Select(&sessions, query, args...); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *SessionRepository) UpdateSessionStatus(id int, status string) error {
	_, err := r.db.Exec("UPDATE import_sessions SET status = ? WHERE id = ?", status, id)
	return err
}

func (r *SessionRepository) UpdateSessionObject(id int, objectID int) error {
	_, err := r.db.Exec("UPDATE import_sessions SET object_id = ?, status = ? WHERE id = ?",
		objectID, models.SessionStatusMapping, id)
	return err
}

func (r *SessionRepository) UpdateSessionProgress(id, imported, failed int) error {
	_, err := r.db.Exec("UPDATE import_sessions SET imported_rows = ?, failed_rows = ? WHERE id = ?",
		imported, failed, id)
	return err
}

func (r *SessionRepository) MarkSessionFailed(id int, message string) error {
	_, err := r.db.Exec("UPDATE import_sessions SET status = ?, error_message = ? WHERE id = ?",
		models.SessionStatusFailed, message, id)
	return err
}

// Source rows

func (r *SessionRepository) BulkInsertRows(rows []models.SourceRow) error {
	if len(rows) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(rows))
	valueArgs := make([]interface{}, 0, len(rows)*3)
	for _, row := range rows {
		valueStrings = append(valueStrings, "(?, ?, ?)")
		valueArgs = append(valueArgs, row.SessionID, row.RowIndex, row.Data)
	}

	query := fmt.Sprintf("INSERT INTO source_rows (session_id, row_index, data) VALUES %s",
		strings.Join(valueStrings, ","))
	_, err := r.db.Exec(query, valueArgs...)
	return err
}

func (r *SessionRepository) GetRows(sessionID, limit, offset int) ([]models.SourceRow, error) {
	var rows []models.SourceRow
	query := "SELECT * FROM source_rows WHERE session_id = ? ORDER BY row_index LIMIT ? OFFSET ?"
	if err := r.db.Select(&rows, query, sessionID, limit, offset); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SessionRepository) CountRows(sessionID int) (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM source_rows WHERE session_id = ?", sessionID)
	return total, err
}

// Imported records

func (r *SessionRepository) BulkInsertRecords(records []models.CRMRecord) error {
	if len(records) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*4)
	for _, rec := range records {
		valueStrings = append(valueStrings, "(?, ?, ?, ?)")
		valueArgs = append(valueArgs, rec.SessionID, rec.ObjectID, rec.RowIndex, rec.Data)
	}

	query := fmt.Sprintf("INSERT INTO crm_records (session_id, object_id, row_index, data) VALUES %s",
		strings.Join(valueStrings, ","))
	_, err := r.db.Exec(query, valueArgs...)
	return err
}

func (r *SessionRepository) GetRecords(sessionID, limit, offset int) ([]models.CRMRecord, error) {
	var records []models.CRMRecord
	query := "SELECT * FROM crm_records WHERE session_id = ? ORDER BY row_index LIMIT ? OFFSET ?"
	if err := r.db.Select(&records, query, sessionID, limit, offset); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SessionRepository) CountRecords(sessionID int) (int64, error) {
	var total int64
	err := r.db.Get(&total, "SELECT COUNT(*) FROM crm_records WHERE session_id = ?", sessionID)
	return total, err
}

func (r *SessionRepository) DeleteRecords(sessionID int) error {
	_, err := r.db.Exec("DELETE FROM crm_records WHERE session_id = ?", sessionID)
	return err
}
