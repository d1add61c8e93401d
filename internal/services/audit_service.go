package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"goldloan-backend/internal/models"
)

// AuditService appends immutable audit records. Failures are logged and
// swallowed so an audit hiccup never fails the business operation, except
// inside transactions where the caller passes its own Tx.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record writes an audit log entry outside any transaction
func (s *AuditService) Record(shopID int64, action, entityType string, entityID int64, details interface{}) {
	if err := record(s.db, shopID, action, entityType, entityID, details); err != nil {
		logrus.WithError(err).WithField("action", action).Warn("failed to write audit log")
	}
}

// RecordTx writes an audit log entry inside the caller's transaction so the
// entry commits or rolls back with the operation it describes.
func (s *AuditService) RecordTx(tx *sql.Tx, shopID int64, action, entityType string, entityID int64, details interface{}) error {
	return record(tx, shopID, action, entityType, entityID, details)
}

// List returns the most recent audit entries for a shop
func (s *AuditService) List(shopID int64, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, shop_id, action, entity_type, entity_id, details, created_at
		FROM audit_logs WHERE shop_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, shopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.ShopID, &l.Action, &l.EntityType, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func record(e execer, shopID int64, action, entityType string, entityID int64, details interface{}) error {
	var detailsJSON *string
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			s := string(b)
			detailsJSON = &s
		}
	}

	_, err := e.Exec(`
		INSERT INTO audit_logs (shop_id, action, entity_type, entity_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		shopID, action, entityType, entityID, detailsJSON, time.Now().Unix())
	return err
}
