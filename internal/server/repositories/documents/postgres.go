// Package documents stores schemaless documents in a single Postgres table
// and serves them through docstore.Store.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/stackquery/internal/common"
	"github.com/dmitrijs2005/stackquery/internal/dbx"
	"github.com/dmitrijs2005/stackquery/internal/docstore"
	"github.com/google/uuid"
)

// DefaultLimit applies when a List call carries no limit query.
const DefaultLimit = 25

// MaxLimit caps a single page.
const MaxLimit = 5000

var systemColumns = map[string]string{
	docstore.AttrID:        "id",
	docstore.AttrCreatedAt: "created_at",
	docstore.AttrUpdatedAt: "updated_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

var _ docstore.Store = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a document. An empty id gets a generated one.
func (r *PostgresRepository) Create(ctx context.Context, collection, id string, fields map[string]any) (*docstore.Document, error) {
	if collection == "" {
		return nil, errors.New("collection is required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	if fields == nil {
		fields = map[string]any{}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	doc := &docstore.Document{ID: id, Collection: collection}
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		RETURNING data, created_at, updated_at
	`
	var stored []byte
	if err := r.db.QueryRowContext(ctx, query, collection, id, data).Scan(&stored, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, common.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(stored, &doc.Fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Get fetches one document. Only Select queries are honoured.
func (r *PostgresRepository) Get(ctx context.Context, collection, id string, queries ...docstore.Query) (*docstore.Document, error) {
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}

	query := `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, collection, id), collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s/%s: %w", collection, id, docstore.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.Project(docstore.SelectedFields(queries)), nil
}

// List returns one page of matching documents. Total counts every match
// regardless of offset and limit.
func (r *PostgresRepository) List(ctx context.Context, collection string, queries ...docstore.Query) (*docstore.DocumentList, error) {
	c, err := compile(collection, queries)
	if err != nil {
		return nil, err
	}

	out := &docstore.DocumentList{Documents: []*docstore.Document{}}

	if err := r.db.QueryRowContext(ctx, c.countSQL(), c.args...).Scan(&out.Total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	// count-only call
	if c.limit == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, c.selectSQL(), c.args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	fields := docstore.SelectedFields(queries)
	for rows.Next() {
		doc, err := scanDocument(rows, collection)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out.Documents = append(out.Documents, doc.Project(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner, collection string) (*docstore.Document, error) {
	doc := &docstore.Document{Collection: collection}
	var data []byte
	if err := row.Scan(&doc.ID, &data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.Fields = map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc.Fields); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", doc.ID, err)
		}
	}
	return doc, nil
}

// compiled is a List call translated to SQL.
type compiled struct {
	where  []string
	order  []string
	args   []any
	limit  int
	offset int
}

func compile(collection string, queries []docstore.Query) (*compiled, error) {
	c := &compiled{
		where: []string{"collection = $1"},
		args:  []any{collection},
		limit: DefaultLimit,
	}

	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return nil, err
		}

		switch q.Method {
		case docstore.MethodEqual:
			if q.Attribute == docstore.AttrCreatedAt || q.Attribute == docstore.AttrUpdatedAt {
				return nil, fmt.Errorf("equal on %s is not supported", q.Attribute)
			}
			col := columnFor(q.Attribute)
			placeholders := make([]string, len(q.Values))
			for i, v := range q.Values {
				c.args = append(c.args, docstore.FormatValue(v))
				placeholders[i] = fmt.Sprintf("$%d", len(c.args))
			}
			if len(placeholders) == 1 {
				c.where = append(c.where, col+" = "+placeholders[0])
			} else {
				c.where = append(c.where, col+" IN ("+strings.Join(placeholders, ", ")+")")
			}

		case docstore.MethodOrderAsc:
			c.order = append(c.order, columnFor(q.Attribute)+" ASC")
		case docstore.MethodOrderDesc:
			c.order = append(c.order, columnFor(q.Attribute)+" DESC")

		case docstore.MethodLimit:
			n, _ := q.Int()
			c.limit = min(n, MaxLimit)
		case docstore.MethodOffset:
			c.offset, _ = q.Int()

		case docstore.MethodSelect:
			// applied after scanning
		}
	}

	if len(c.order) == 0 {
		c.order = append(c.order, "created_at ASC")
	}
	// Stable paging between equal sort keys.
	c.order = append(c.order, "id ASC")
	return c, nil
}

// columnFor maps an attribute to a SQL expression. Attribute names are
// validated against a strict pattern before they reach here.
func columnFor(attribute string) string {
	if col, ok := systemColumns[attribute]; ok {
		return col
	}
	return "data->>'" + attribute + "'"
}

func (c *compiled) countSQL() string {
	return "SELECT count(*) FROM documents WHERE " + strings.Join(c.where, " AND ")
}

func (c *compiled) selectSQL() string {
	return fmt.Sprintf("SELECT id, data, created_at, updated_at FROM documents WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		strings.Join(c.where, " AND "), strings.Join(c.order, ", "), c.limit, c.offset)
}
