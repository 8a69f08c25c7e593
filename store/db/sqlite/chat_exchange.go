package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/verbalis/verbalis/store"
)

func (d *DB) CreateChatExchange(ctx context.Context, create *store.ChatExchange) (*store.ChatExchange, error) {
	fields := []string{"uid", "session_id", "user_input", "reply", "intent", "backend", "latency_ms"}
	placeholderValues := []any{
		create.UID, create.SessionID, create.UserInput, create.Reply,
		create.Intent, create.Backend, create.LatencyMs,
	}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO chat_exchange (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create chat exchange: %w", err)
	}

	return create, nil
}

func (d *DB) ListChatExchanges(ctx context.Context, find *store.FindChatExchange) ([]*store.ChatExchange, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.SessionID; v != nil {
		where, args = append(where, "chat_exchange.session_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, session_id, user_input, reply, intent, backend, latency_ms, created_ts
		FROM chat_exchange
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY chat_exchange.created_ts DESC, chat_exchange.id DESC`

	if v := find.Limit; v != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *v)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat exchanges: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ChatExchange, 0)
	for rows.Next() {
		var exchange store.ChatExchange
		if err := rows.Scan(
			&exchange.ID,
			&exchange.UID,
			&exchange.SessionID,
			&exchange.UserInput,
			&exchange.Reply,
			&exchange.Intent,
			&exchange.Backend,
			&exchange.LatencyMs,
			&exchange.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat exchange: %w", err)
		}
		list = append(list, &exchange)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chat exchanges: %w", err)
	}

	return list, nil
}
