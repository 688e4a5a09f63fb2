package mysql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/useadvisor/advisor/store"
)

func (d *DB) CreateConsultant(ctx context.Context, create *store.Consultant) (*store.Consultant, error) {
	scope, err := json.Marshal(create.TopicScope)
	if err != nil {
		return nil, err
	}
	stmt := "INSERT INTO `consultant` (`consultant_id`, `name`, `system_instruction`, `topic_scope`, `is_active`) VALUES (?, ?, ?, ?, ?)"
	if _, err := d.db.ExecContext(ctx, stmt,
		create.ConsultantID, create.Name, create.SystemInstruction, string(scope), create.IsActive,
	); err != nil {
		return nil, err
	}
	// Fetch it back to populate id and timestamps.
	return d.GetConsultant(ctx, &store.FindConsultant{ConsultantID: &create.ConsultantID})
}

func (d *DB) ListConsultants(ctx context.Context, find *store.FindConsultant) ([]*store.Consultant, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ConsultantID; v != nil {
		where, args = append(where, "`consultant_id` = ?"), append(args, *v)
	}
	if v := find.IsActive; v != nil {
		where, args = append(where, "`is_active` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, consultant_id, name, system_instruction, topic_scope, is_active, UNIX_TIMESTAMP(created_ts), UNIX_TIMESTAMP(updated_ts)
		 FROM consultant WHERE %s ORDER BY updated_ts DESC`,
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.Consultant
	for rows.Next() {
		consultant := &store.Consultant{}
		var scope string
		if err := rows.Scan(
			&consultant.ID, &consultant.ConsultantID, &consultant.Name, &consultant.SystemInstruction,
			&scope, &consultant.IsActive, &consultant.CreatedTs, &consultant.UpdatedTs,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(scope), &consultant.TopicScope); err != nil {
			return nil, err
		}
		list = append(list, consultant)
	}
	return list, rows.Err()
}

func (d *DB) GetConsultant(ctx context.Context, find *store.FindConsultant) (*store.Consultant, error) {
	list, err := d.ListConsultants(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
