package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/verbalis/verbalis/store"
)

func (d *DB) CreateContact(ctx context.Context, create *store.Contact) (*store.Contact, error) {
	fields := []string{"uid", "name", "phone"}
	placeholderValues := []any{create.UID, create.Name, create.Phone}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO contact (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return create, nil
}

func (d *DB) ListContacts(ctx context.Context, find *store.FindContact) ([]*store.Contact, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "contact.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "contact.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "contact.name = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, name, phone, created_ts
		FROM contact
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY contact.name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Contact, 0)
	for rows.Next() {
		var contact store.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.UID,
			&contact.Name,
			&contact.Phone,
			&contact.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		list = append(list, &contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteContact(ctx context.Context, delete *store.DeleteContact) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM contact WHERE id = ?", delete.ID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
