package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/google/uuid"
)

// AuditEvent records a non-ledger state change, such as a rent increase.
type AuditEvent struct {
	ID        string       `json:"id"`
	Entity    string       `json:"entity"`
	EntityID  string       `json:"entityId"`
	Action    string       `json:"action"`
	Actor     ledger.Actor `json:"actor"`
	Detail    string       `json:"detail,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (t *Tx) InsertAuditEvent(ctx context.Context, ev *AuditEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.Must(uuid.NewV7()).String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO audit_events (id, entity, entity_id, action, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Entity, ev.EntityID, ev.Action, string(ev.Actor), ev.Detail, formatTime(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Store) ListAuditEvents(ctx context.Context, entity, entityID string) ([]AuditEvent, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, entity, entity_id, action, actor, detail, created_at FROM audit_events
		WHERE entity = ? AND entity_id = ? ORDER BY created_at, id`, entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	out := []AuditEvent{}
	for rows.Next() {
		var ev AuditEvent
		var createdAt string
		if err := rows.Scan(&ev.ID, &ev.Entity, &ev.EntityID, &ev.Action, &ev.Actor, &ev.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		ev.CreatedAt = parseTime(createdAt)
		out = append(out, ev)
	}
	return out, rows.Err()
}
