package flow

import (
	"context"
	"database/sql"
)

// The finishers render the statement and submit it to the backing store.
// Execution is synchronous on the calling goroutine; backend failures come
// back wrapped in an ExecutionError and are never retried here.

func (w *Where[E]) Query() (*sql.Rows, error) {
	return w.QueryContext(context.Background())
}

// QueryContext executes the statement. For a SELECT base it returns the
// row cursor, which the caller owns and must release. For any other base
// the side effect executes against the store, a change event is published
// and no cursor is returned.
func (w *Where[E]) QueryContext(ctx context.Context) (*sql.Rows, error) {
	query, args, err := w.ToSql()
	if err != nil {
		return nil, err
	}
	conn := w.from.schema.getConnection()
	if w.from.base.Kind() == KindSelect {
		rows, err := conn.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, &ExecutionError{Query: query, Err: err}
		}
		return rows, nil
	}
	if _, err := conn.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}
	conn.Changes.Publish(ChangeEvent{Table: w.from.schema.Table, Kind: w.from.base.Kind()})
	return nil, nil
}

func (w *Where[E]) QueryList() ([]E, error) {
	return w.QueryListContext(context.Background())
}

// QueryListContext materializes every row into a decoded entity. Zero
// matching rows yield an empty, non-nil slice; a side-effect statement
// executes and yields the same empty slice.
func (w *Where[E]) QueryListContext(ctx context.Context) ([]E, error) {
	rows, err := w.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]E, 0)
	if rows == nil {
		return out, nil
	}
	defer w.release(rows)

	if err := newBinder(w.from.schema).bind(rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Where[E]) QuerySingle() (E, bool, error) {
	return w.QuerySingleContext(context.Background())
}

// QuerySingleContext fetches the first row under the statement's effective
// ordering, forcing LIMIT 1 for this call regardless of any limit set
// earlier. Zero rows is a success: ok is false and err is nil.
func (w *Where[E]) QuerySingleContext(ctx context.Context) (E, bool, error) {
	var zero E
	w.Limit(1)
	list, err := w.QueryListContext(ctx)
	if err != nil {
		return zero, false, err
	}
	if len(list) == 0 {
		return zero, false, nil
	}
	return list[0], true, nil
}

func (w *Where[E]) Count() (int64, error) {
	return w.CountContext(context.Background())
}

// CountContext renders the counting variant of the statement, keeping all
// accumulated clauses, and returns the matching row count.
func (w *Where[E]) CountContext(ctx context.Context) (int64, error) {
	query, args, err := w.toSql(selectBase{count: true})
	if err != nil {
		return 0, err
	}
	var n int64
	if err := w.from.schema.getSQLDB().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, &ExecutionError{Query: query, Err: err}
	}
	return n, nil
}

func (w *Where[E]) Exists() (bool, error) {
	n, err := w.Count()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// QueryClose executes the statement and unconditionally releases the
// cursor it may have produced. The scoped acquire-release pattern for
// statements run only for their side effect.
func (w *Where[E]) QueryClose() error {
	rows, err := w.Query()
	w.release(rows)
	return err
}

func (w *Where[E]) QueryCursorList() (*CursorList[E], error) {
	c := newCursorList(w)
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

func (w *Where[E]) QueryTableList() (*QueryList[E], error) {
	c, err := w.QueryCursorList()
	if err != nil {
		return nil, err
	}
	return &QueryList[E]{CursorList: c}, nil
}

// release closes a cursor best-effort. A close failure is logged and never
// replaces the primary result.
func (w *Where[E]) release(rows *sql.Rows) {
	if rows == nil {
		return
	}
	if err := rows.Close(); err != nil {
		w.from.schema.getConnection().logger.Errorf("closing cursor: %s", &ResourceError{Err: err})
	}
}
