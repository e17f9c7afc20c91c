package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

// condition is one "column = value" business filter.
type condition struct {
	column string
	value  any
}

func eq(column string, value any) condition {
	return condition{column: column, value: value}
}

// scoped holds the queries every owned table shares. Each of them takes the
// owner as a required argument and puts "user_id = ?" first in the WHERE
// clause, so there is no way to run them unscoped.
type scoped[T any] struct {
	db       sqlx.ExtContext
	table    string
	notFound error
	id       func(*T) int64
}

// where builds the owner predicate followed by the business filters.
func (s scoped[T]) where(owner model.OwnerID, conds []condition) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{int64(owner)}

	for _, c := range conds {
		clauses = append(clauses, c.column+" = ?")
		args = append(args, c.value)
	}

	return strings.Join(clauses, " AND "), args
}

func (s scoped[T]) byID(ctx context.Context, owner model.OwnerID, id int64) (*T, error) {
	row := new(T)
	query := s.db.Rebind(fmt.Sprintf(`SELECT * FROM %s WHERE id = ? AND user_id = ?`, s.table))

	err := sqlx.GetContext(ctx, s.db, row, query, id, int64(owner))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.notFound
	}
	if err != nil {
		return nil, translate(err)
	}

	return row, nil
}

func (s scoped[T]) count(ctx context.Context, owner model.OwnerID, conds []condition) (int, error) {
	where, args := s.where(owner, conds)
	query := s.db.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, s.table, where))

	var total int
	err := sqlx.GetContext(ctx, s.db, &total, query, args...)
	if err != nil {
		return 0, translate(err)
	}

	return total, nil
}

// list returns one cursor page. The total is counted with the same owner and
// business filters but without the cursor boundary or limit.
func (s scoped[T]) list(ctx context.Context, owner model.OwnerID, conds []condition, p pagination.Params) (pagination.Page[*T], error) {
	err := p.Validate()
	if err != nil {
		return pagination.Page[*T]{}, err
	}

	total, err := s.count(ctx, owner, conds)
	if err != nil {
		return pagination.Page[*T]{}, err
	}

	where, args := s.where(owner, conds)
	boundary, boundaryArgs := p.Boundary("id")
	if boundary != "" {
		where += " AND " + boundary
		args = append(args, boundaryArgs...)
	}
	args = append(args, p.Limit())

	query := s.db.Rebind(fmt.Sprintf(`SELECT * FROM %s WHERE %s ORDER BY %s LIMIT ?`, s.table, where, p.OrderBy("id")))

	var rows []*T
	err = sqlx.SelectContext(ctx, s.db, &rows, query, args...)
	if err != nil {
		return pagination.Page[*T]{}, translate(err)
	}

	return pagination.Build(rows, p, total, s.id), nil
}

// exec runs a scoped write and reports notFound when no row was affected.
func (s scoped[T]) exec(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return translate(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translate(err)
	}

	if rows == 0 {
		return s.notFound
	}

	return nil
}

func (s scoped[T]) delete(ctx context.Context, owner model.OwnerID, id int64) error {
	return s.exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, s.table), id, int64(owner))
}

// insert runs an INSERT ... RETURNING id and returns the generated id.
func (s scoped[T]) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, s.db, &id, s.db.Rebind(query), args...)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}
