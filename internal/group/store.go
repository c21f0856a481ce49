package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Store defines persistence operations for groups and device memberships.
//
// All operations are fallible and surface failures wrapped in ErrStore;
// callers do not distinguish causes. PutGroup and PutMembership are
// insert-or-overwrite by primary key and deliberately do not enforce
// name uniqueness - that check belongs to the orchestration layer.
type Store interface {
	// ScanGroups retrieves every stored group. Full scan, no pagination.
	ScanGroups(ctx context.Context) ([]Group, error)
	// PutGroup inserts or overwrites a group by its ID.
	PutGroup(ctx context.Context, g Group) error
	// ScanMemberships retrieves every device-to-group assignment.
	ScanMemberships(ctx context.Context) ([]Membership, error)
	// PutMembership inserts or overwrites an assignment by device ID.
	PutMembership(ctx context.Context, m Membership) error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed group store.
//
// Parameters:
//   - db: Open SQLite connection used for group queries
//
// Returns:
//   - *SQLiteStore: Store instance ready for use
//
// Security: Uses parameterised SQL queries to prevent injection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ScanGroups retrieves every stored group.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - []Group: All groups in insertion order
//   - error: ErrStore-wrapped on query failure
func (s *SQLiteStore) ScanGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, group_name FROM groups ORDER BY created_at, group_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying groups: %w", ErrStore, err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning group: %w", ErrStore, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating groups: %w", ErrStore, err)
	}

	return groups, nil
}

// PutGroup inserts or overwrites a group by its ID.
//
// The store does not check name uniqueness: two groups with the same
// name and different IDs are accepted.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - g: Group to persist (ID and Name required)
//
// Returns:
//   - error: ErrInvalidGroup on missing fields, ErrStore-wrapped on write failure
func (s *SQLiteStore) PutGroup(ctx context.Context, g Group) error {
	if g.ID == "" || g.Name == "" {
		return ErrInvalidGroup
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO groups (group_id, group_name) VALUES (?, ?)
		 ON CONFLICT(group_id) DO UPDATE SET group_name = excluded.group_name`,
		g.ID, g.Name,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting group: %w", ErrStore, err)
	}

	return nil
}

// ScanMemberships retrieves every device-to-group assignment.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - []Membership: All assignments in insertion order
//   - error: ErrStore-wrapped on query failure
func (s *SQLiteStore) ScanMemberships(ctx context.Context) ([]Membership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT device_id, group_id FROM device_mappings ORDER BY created_at, device_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying memberships: %w", ErrStore, err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.DeviceID, &m.GroupID); err != nil {
			return nil, fmt.Errorf("%w: scanning membership: %w", ErrStore, err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating memberships: %w", ErrStore, err)
	}

	return memberships, nil
}

// PutMembership inserts or overwrites an assignment by device ID.
//
// Re-adding a device that already belongs to a group moves it: the old
// assignment is replaced, never duplicated.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - m: Membership to persist (DeviceID and GroupID required)
//
// Returns:
//   - error: ErrInvalidMembership on missing fields, ErrStore-wrapped on write failure
func (s *SQLiteStore) PutMembership(ctx context.Context, m Membership) error {
	if m.DeviceID == "" || m.GroupID == "" {
		return ErrInvalidMembership
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO device_mappings (device_id, group_id) VALUES (?, ?)
		 ON CONFLICT(device_id) DO UPDATE SET group_id = excluded.group_id`,
		m.DeviceID, m.GroupID,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting membership: %w", ErrStore, err)
	}

	return nil
}
