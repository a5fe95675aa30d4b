package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

type QueryBuilder struct {
	client      *Client
	table       string
	method      string
	columns     string
	filters     []string
	orders      []string
	limitVal    *int
	onConflict  string
	body        []byte
	marshalErr  error
	headers     map[string]string
	accessToken string
}

// Select specifies columns to select.
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.method = http.MethodGet
	q.columns = columns
	return q
}

// Insert inserts one or many records and returns them.
func (q *QueryBuilder) Insert(data interface{}) *QueryBuilder {
	q.method = http.MethodPost
	q.setBody(data)
	q.headers["Prefer"] = "return=representation"
	return q
}

// InsertIgnoringDuplicates inserts records, skipping rows that violate the
// unique key named by onConflict. Only the inserted rows are returned.
func (q *QueryBuilder) InsertIgnoringDuplicates(data interface{}, onConflict string) *QueryBuilder {
	q.method = http.MethodPost
	q.setBody(data)
	q.onConflict = onConflict
	q.headers["Prefer"] = "return=representation,resolution=ignore-duplicates"
	return q
}

func (q *QueryBuilder) Update(data interface{}) *QueryBuilder {
	q.method = http.MethodPatch
	q.setBody(data)
	q.headers["Prefer"] = "return=representation"
	return q
}

func (q *QueryBuilder) Delete() *QueryBuilder {
	q.method = http.MethodDelete
	q.headers["Prefer"] = "return=representation"
	return q
}

func (q *QueryBuilder) setBody(data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		q.marshalErr = err
		return
	}
	q.body = body
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(column string, value interface{}) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%s", column, url.QueryEscape(fmt.Sprint(value))))
	return q
}

// In adds an IN filter.
func (q *QueryBuilder) In(column string, values []string) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=in.(%s)", column, url.QueryEscape(strings.Join(values, ","))))
	return q
}

// NotIn adds a NOT IN filter.
func (q *QueryBuilder) NotIn(column string, values []string) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=not.in.(%s)", column, url.QueryEscape(strings.Join(values, ","))))
	return q
}

// Order adds an order clause; nulls sort last.
func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.orders = append(q.orders, fmt.Sprintf("%s.%s.nullslast", column, dir))
	return q
}

func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limitVal = &n
	return q
}

// WithToken sets the access token for RLS.
func (q *QueryBuilder) WithToken(token string) *QueryBuilder {
	q.accessToken = token
	return q
}

// Execute executes the query and returns raw bytes.
func (q *QueryBuilder) Execute(ctx context.Context) ([]byte, error) {
	resp, err := q.execute(ctx)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// ExecuteInto executes the query and unmarshals into dest.
func (q *QueryBuilder) ExecuteInto(ctx context.Context, dest interface{}) error {
	data, err := q.Execute(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", q.table, err)
	}
	return nil
}

// ExecuteAffected executes a write and returns how many rows came back.
func (q *QueryBuilder) ExecuteAffected(ctx context.Context) (int, error) {
	data, err := q.Execute(ctx)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	return int(gjson.GetBytes(data, "#").Int()), nil
}

// Count returns the exact number of rows matching the filters.
func (q *QueryBuilder) Count(ctx context.Context) (int, error) {
	q.method = http.MethodGet
	q.columns = "id"
	q.Limit(0)
	q.headers["Prefer"] = "count=exact"

	resp, err := q.execute(ctx)
	if err != nil {
		return 0, err
	}
	return parseContentRangeTotal(resp.header.Get("Content-Range"))
}

func (q *QueryBuilder) execute(ctx context.Context) (*response, error) {
	if q.marshalErr != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", q.table, q.marshalErr)
	}
	resp, err := q.client.do(ctx, q.method, q.buildURL(), q.body, q.headers, q.accessToken)
	if err != nil {
		return nil, err
	}
	if resp.statusCode >= 400 {
		return nil, parseError(resp.body, resp.statusCode)
	}
	return resp, nil
}

func (q *QueryBuilder) buildURL() string {
	urlStr := q.client.restURL + "/" + url.PathEscape(q.table)

	params := make([]string, 0, len(q.filters)+4)
	if q.method == http.MethodGet && q.columns != "" {
		params = append(params, "select="+url.QueryEscape(q.columns))
	}
	params = append(params, q.filters...)
	if len(q.orders) > 0 {
		params = append(params, "order="+strings.Join(q.orders, ","))
	}
	if q.limitVal != nil {
		params = append(params, "limit="+strconv.Itoa(*q.limitVal))
	}
	if q.onConflict != "" {
		params = append(params, "on_conflict="+url.QueryEscape(q.onConflict))
	}

	if len(params) > 0 {
		urlStr += "?" + strings.Join(params, "&")
	}
	return urlStr
}

// parseContentRangeTotal extracts the total from "0-24/3573" or "*/0".
func parseContentRangeTotal(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, fmt.Errorf("unexpected Content-Range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("count not returned in Content-Range %q", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("invalid Content-Range total %q: %w", header, err)
	}
	return n, nil
}
