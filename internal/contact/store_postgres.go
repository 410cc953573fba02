// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/revenuegear/internal/platform/apperr"
	"github.com/taibuivan/revenuegear/internal/platform/database/schema"
	"github.com/taibuivan/revenuegear/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed lead store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create inserts a lead and fills its timestamps from the database clock.

Returns:
  - error: CONFLICT on a duplicate ID, INTERNAL otherwise
*/
func (repository *PostgresRepository) Create(context context.Context, lead *Lead) error {
	table := schema.MarketingLead
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.Email, table.Phone, table.Dealership,
		table.Address, table.Message, table.Status, table.SourceIP,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Dealership,
		lead.Address, lead.Message, string(lead.Status), lead.SourceIP,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Lead")
	}
	return nil
}

// UpdateStatus sets status and relay error on a lead.
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status Status, relayError string) error {
	const query = `
		UPDATE marketing.lead
		SET status = $2, relayerror = $3, updatedat = now()
		WHERE id = $1
	`
	tag, err := repository.db.Exec(context, query, id, string(status), relayError)
	if err != nil {
		return dberr.Wrap(err, "Lead")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Lead")
	}
	return nil
}

/*
List returns a page of leads, newest first.

Description: Uses COUNT(*) OVER() so the total travels with the page.

Returns:
  - []*Lead: Page of leads
  - int: Total lead count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Lead, int, error) {
	columns := strings.Join(schema.MarketingLead.Columns(), ", ")
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		columns, schema.MarketingLead.Table, schema.MarketingLead.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_leads")
	}
	defer rows.Close()

	leads := []*Lead{}
	var total int
	for rows.Next() {
		lead := &Lead{}
		var status string
		err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Dealership, &lead.Address,
			&lead.Message, &status, &lead.RelayError, &lead.SourceIP, &lead.CreatedAt, &lead.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_lead")
		}
		lead.Status = Status(status)
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_leads")
	}

	return leads, total, nil
}
