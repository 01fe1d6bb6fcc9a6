package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
)

// Kind describes how filter values for a field are coerced.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	ID
	IDList
	// Document columns are projected but never filtered or sorted.
	Document
)

// Field maps an API field name to its storage column.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Schema describes the filterable, sortable and projectable fields of one table.
type Schema struct {
	Table  string
	fields []Field
	index  map[string]Field
}

// NewSchema builds a schema. The id field is added when not declared.
func NewSchema(table string, fields ...Field) Schema {
	s := Schema{Table: table, index: make(map[string]Field, len(fields)+1)}
	if !containsField(fields, "id") {
		fields = append([]Field{{Name: "id", Column: "id", Kind: ID}}, fields...)
	}
	for _, f := range fields {
		if f.Column == "" {
			f.Column = f.Name
		}
		s.fields = append(s.fields, f)
		s.index[f.Name] = f
	}
	return s
}

func containsField(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Column returns the field stored in column.
func (s Schema) Column(column string) (Field, bool) {
	for _, f := range s.fields {
		if f.Column == column {
			return f, true
		}
	}
	return Field{}, false
}

// Document converts a raw column map into an API-named document, decoding driver values.
func (s Schema) Document(row map[string]interface{}) map[string]interface{} {
	doc := make(map[string]interface{}, len(row))
	for column, v := range row {
		f, ok := s.Column(column)
		if !ok {
			continue
		}
		doc[f.Name] = f.decode(v)
	}
	return doc
}

func (f Field) decode(v interface{}) interface{} {
	b, isBytes := v.([]byte)
	switch {
	case f.Kind == IDList:
		var arr pq.StringArray
		if err := arr.Scan(v); err != nil || arr == nil {
			return []string{}
		}
		return []string(arr)
	case f.Kind == Document && isBytes:
		return json.RawMessage(append([]byte(nil), b...))
	case isBytes:
		return string(b)
	default:
		return v
	}
}

// Lookup returns the field registered under name.
func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s.index[name]
	return f, ok
}

// Fields returns the declared fields in declaration order.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Columns resolves a projection. With an include list only those columns (plus id)
// are returned; otherwise every column except the excluded ones.
func (s Schema) Columns(include, exclude []string) ([]string, error) {
	var details []appErrors.FieldError

	if len(include) > 0 {
		cols := []string{"id"}
		seen := map[string]bool{"id": true}
		for _, name := range include {
			f, ok := s.Lookup(name)
			if !ok {
				details = append(details, appErrors.FieldError{Field: name, Message: "unknown field"})
				continue
			}
			if !seen[f.Column] {
				seen[f.Column] = true
				cols = append(cols, f.Column)
			}
		}
		if len(details) > 0 {
			return nil, appErrors.Validation("invalid fields parameter", details...)
		}
		return cols, nil
	}

	skip := map[string]bool{}
	for _, name := range exclude {
		f, ok := s.Lookup(name)
		if !ok {
			details = append(details, appErrors.FieldError{Field: name, Message: "unknown field"})
			continue
		}
		if f.Name != "id" {
			skip[f.Column] = true
		}
	}
	if len(details) > 0 {
		return nil, appErrors.Validation("invalid fields parameter", details...)
	}

	cols := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		if !skip[f.Column] {
			cols = append(cols, f.Column)
		}
	}
	return cols, nil
}

// OrderBy renders sort keys as ORDER BY clauses.
func (s Schema) OrderBy(keys []SortKey) ([]string, error) {
	var (
		clauses []string
		details []appErrors.FieldError
	)
	for _, key := range keys {
		f, ok := s.Lookup(key.Field)
		if !ok || f.Kind == Document || f.Kind == IDList {
			details = append(details, appErrors.FieldError{Field: key.Field, Message: "unknown sort field"})
			continue
		}
		dir := "ASC"
		if key.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, f.Column+" "+dir)
	}
	if len(details) > 0 {
		return nil, appErrors.Validation("invalid sort parameter", details...)
	}
	return clauses, nil
}

// Where compiles a filter into a squirrel predicate. An empty filter yields nil,
// which squirrel's Where ignores.
func (s Schema) Where(filter Filter) (sq.Sqlizer, error) {
	filter = Translate(filter)
	if len(filter) == 0 {
		return nil, nil
	}

	var (
		conds   sq.And
		details []appErrors.FieldError
	)
	for _, name := range sortedKeys(filter) {
		f, ok := s.Lookup(name)
		if !ok {
			details = append(details, appErrors.FieldError{Field: name, Message: "unknown filter field"})
			continue
		}
		parts, err := f.conditions(filter[name])
		if err != nil {
			details = append(details, appErrors.FieldError{Field: name, Message: err.Error()})
			continue
		}
		conds = append(conds, parts...)
	}
	if len(details) > 0 {
		return nil, appErrors.Validation("invalid filter", details...)
	}
	return conds, nil
}

func (f Field) conditions(value interface{}) ([]sq.Sqlizer, error) {
	var ops map[string]interface{}
	switch t := value.(type) {
	case Filter:
		ops = t
	case map[string]interface{}:
		ops = t
	case []string:
		cond, err := f.condition("$in", t)
		if err != nil {
			return nil, err
		}
		return []sq.Sqlizer{cond}, nil
	default:
		cond, err := f.condition("", value)
		if err != nil {
			return nil, err
		}
		return []sq.Sqlizer{cond}, nil
	}

	out := make([]sq.Sqlizer, 0, len(ops))
	for _, op := range sortedKeys(ops) {
		cond, err := f.condition(op, ops[op])
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}

func (f Field) condition(op string, raw interface{}) (sq.Sqlizer, error) {
	if f.Kind == Document {
		return nil, fmt.Errorf("field is not filterable")
	}
	if f.Kind == IDList {
		return f.listCondition(op, raw)
	}

	switch op {
	case "", "$ne", "$gt", "$gte", "$lt", "$lte", "$regex":
		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		switch op {
		case "":
			return sq.Eq{f.Column: v}, nil
		case "$ne":
			return sq.NotEq{f.Column: v}, nil
		case "$regex":
			if f.Kind != String {
				return nil, fmt.Errorf("regex is only supported on text fields")
			}
			if _, err := regexp.Compile(v.(string)); err != nil {
				return nil, fmt.Errorf("invalid regular expression")
			}
			return sq.Expr(f.Column+" ~ ?", v), nil
		}
		if f.Kind == Bool || f.Kind == ID {
			return nil, fmt.Errorf("operator %s is not supported on this field", strings.TrimPrefix(op, OperatorPrefix))
		}
		switch op {
		case "$gt":
			return sq.Gt{f.Column: v}, nil
		case "$gte":
			return sq.GtOrEq{f.Column: v}, nil
		case "$lt":
			return sq.Lt{f.Column: v}, nil
		default:
			return sq.LtOrEq{f.Column: v}, nil
		}
	case "$in", "$nin":
		vals, err := f.coerceList(raw)
		if err != nil {
			return nil, err
		}
		if op == "$in" {
			return sq.Eq{f.Column: vals}, nil
		}
		return sq.NotEq{f.Column: vals}, nil
	default:
		return nil, fmt.Errorf("unsupported operator %q", op)
	}
}

func (f Field) listCondition(op string, raw interface{}) (sq.Sqlizer, error) {
	switch op {
	case "", "$ne":
		v, err := f.coerce(raw)
		if err != nil {
			return nil, err
		}
		if op == "" {
			return sq.Expr("?::uuid = ANY("+f.Column+")", v), nil
		}
		return sq.Expr("NOT (?::uuid = ANY("+f.Column+"))", v), nil
	case "$in", "$nin":
		vals, err := f.coerceList(raw)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(vals))
		for i, v := range vals {
			ids[i] = v.(string)
		}
		if op == "$in" {
			return sq.Expr(f.Column+" && ?::uuid[]", pq.Array(ids)), nil
		}
		return sq.Expr("NOT ("+f.Column+" && ?::uuid[])", pq.Array(ids)), nil
	default:
		return nil, fmt.Errorf("operator %s is not supported on relation lists", strings.TrimPrefix(op, OperatorPrefix))
	}
}

func (f Field) coerceList(raw interface{}) ([]interface{}, error) {
	var items []interface{}
	switch t := raw.(type) {
	case []string:
		for _, s := range t {
			for _, part := range strings.Split(s, ",") {
				items = append(items, part)
			}
		}
	case []interface{}:
		items = t
	case string:
		for _, part := range strings.Split(t, ",") {
			items = append(items, part)
		}
	default:
		items = []interface{}{raw}
	}

	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		v, err := f.coerce(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("expected at least one value")
	}
	return out, nil
}

func (f Field) coerce(raw interface{}) (interface{}, error) {
	s, isString := raw.(string)
	if !isString {
		switch raw.(type) {
		case map[string]interface{}, Filter, []interface{}, []string:
			return nil, fmt.Errorf("expected a single value")
		}
		return raw, nil
	}
	s = strings.TrimSpace(s)

	switch f.Kind {
	case Int:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return n, nil
	case Float:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return n, nil
	case Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean")
		}
		return b, nil
	case Time:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("expected an RFC3339 timestamp or date")
	case ID, IDList:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid id")
		}
		return id.String(), nil
	default:
		return raw, nil
	}
}
