package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/useadvisor/advisor/store"
)

func (d *DB) CreateChatRecord(ctx context.Context, create *store.ChatRecord) (*store.ChatRecord, error) {
	stmt := "INSERT INTO `chat_record` (`session_id`, `consultant_id`) VALUES (?, ?)"
	if _, err := d.db.ExecContext(ctx, stmt, create.SessionID, create.ConsultantID); err != nil {
		return nil, err
	}
	// Fetch it back to populate id and timestamps.
	return d.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &create.SessionID})
}

func (d *DB) ListChatRecords(ctx context.Context, find *store.FindChatRecord) ([]*store.ChatRecord, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "`id` = ?"), append(args, *v)
	}
	if v := find.SessionID; v != nil {
		where, args = append(where, "`session_id` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, session_id, consultant_id, UNIX_TIMESTAMP(created_ts), UNIX_TIMESTAMP(updated_ts)
		 FROM chat_record WHERE %s ORDER BY updated_ts DESC`,
		strings.Join(where, " AND "),
	)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.ChatRecord
	for rows.Next() {
		record := &store.ChatRecord{}
		if err := rows.Scan(&record.ID, &record.SessionID, &record.ConsultantID, &record.CreatedTs, &record.UpdatedTs); err != nil {
			return nil, err
		}
		list = append(list, record)
	}
	return list, rows.Err()
}

func (d *DB) GetChatRecord(ctx context.Context, find *store.FindChatRecord) (*store.ChatRecord, error) {
	list, err := d.ListChatRecords(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (d *DB) UpdateChatRecord(ctx context.Context, update *store.UpdateChatRecord) (*store.ChatRecord, error) {
	set, args := []string{"`updated_ts` = CURRENT_TIMESTAMP"}, []any{}
	if v := update.ConsultantID; v != nil {
		set, args = append(set, "`consultant_id` = ?"), append(args, *v)
	}
	args = append(args, update.SessionID)
	stmt := fmt.Sprintf("UPDATE `chat_record` SET %s WHERE `session_id` = ?", strings.Join(set, ", "))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, err
	}
	return d.GetChatRecord(ctx, &store.FindChatRecord{SessionID: &update.SessionID})
}

func (d *DB) CreateChatTurn(ctx context.Context, create *store.CreateChatTurn) (*store.ChatTurn, error) {
	stmt := "INSERT INTO `chat_turn` (`record_id`, `role`, `text`) VALUES (?, ?, ?)"
	result, err := d.db.ExecContext(ctx, stmt, create.RecordID, create.Role, create.Text)
	if err != nil {
		return nil, err
	}
	rawID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	turn := &store.ChatTurn{
		ID:       int32(rawID),
		RecordID: create.RecordID,
		Role:     create.Role,
		Text:     create.Text,
	}
	// Fetch created_ts
	if err := d.db.QueryRowContext(ctx, "SELECT UNIX_TIMESTAMP(created_ts) FROM chat_turn WHERE id = ?", turn.ID).Scan(&turn.CreatedTs); err != nil {
		return nil, err
	}

	return turn, nil
}

func (d *DB) CreateChatExchange(ctx context.Context, create *store.CreateChatExchange) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := "INSERT INTO `chat_turn` (`record_id`, `role`, `text`) VALUES (?, ?, ?)"
	if _, err := tx.ExecContext(ctx, stmt, create.RecordID, store.RoleUser, create.UserText); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, stmt, create.RecordID, store.RoleModel, create.ModelText); err != nil {
		return err
	}

	set, args := []string{"`updated_ts` = CURRENT_TIMESTAMP"}, []any{}
	if v := create.ConsultantID; v != nil {
		set, args = append(set, "`consultant_id` = ?"), append(args, *v)
	}
	args = append(args, create.SessionID)
	update := fmt.Sprintf("UPDATE `chat_record` SET %s WHERE `session_id` = ?", strings.Join(set, ", "))
	if _, err := tx.ExecContext(ctx, update, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ListChatTurns(ctx context.Context, find *store.FindChatTurn) ([]*store.ChatTurn, error) {
	where, args := []string{"`record_id` = ?"}, []any{find.RecordID}
	if v := find.Role; v != nil {
		where, args = append(where, "`role` = ?"), append(args, *v)
	}
	query := fmt.Sprintf(
		`SELECT id, record_id, role, text, UNIX_TIMESTAMP(created_ts)
		 FROM chat_turn WHERE %s ORDER BY id ASC`,
		strings.Join(where, " AND "),
	)
	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*store.ChatTurn
	for rows.Next() {
		turn := &store.ChatTurn{}
		if err := rows.Scan(&turn.ID, &turn.RecordID, &turn.Role, &turn.Text, &turn.CreatedTs); err != nil {
			return nil, err
		}
		list = append(list, turn)
	}
	return list, rows.Err()
}
