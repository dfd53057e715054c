package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	errNilModel    = errors.New("model cannot be nil")
	errNotStruct   = errors.New("model must be struct")
	errNoDBColumns = errors.New("model has no db columns")
)

// columnPlan is the db-tagged field layout of one struct type.
type columnPlan struct {
	columns []string
	fields  []int
}

var plans sync.Map // reflect.Type -> columnPlan

func planFor(typ reflect.Type) (columnPlan, error) {
	if cached, ok := plans.Load(typ); ok {
		return cached.(columnPlan), nil
	}

	var plan columnPlan
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		plan.columns = append(plan.columns, col)
		plan.fields = append(plan.fields, i)
	}
	if len(plan.columns) == 0 {
		return columnPlan{}, fmt.Errorf("%s: %w", typ, errNoDBColumns)
	}

	plans.Store(typ, plan)
	return plan, nil
}

func modelValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, errNilModel
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, errNotStruct
	}
	return value, nil
}

func (p columnPlan) values(v reflect.Value) []any {
	out := make([]any, len(p.fields))
	for i, idx := range p.fields {
		out[i] = v.Field(idx).Interface()
	}
	return out
}

// InsertModel renders a single-row INSERT from the `db` tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v, err := modelValue(model)
	if err != nil {
		return "", nil, err
	}
	plan, err := planFor(v.Type())
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(plan.columns...).
		Values(plan.values(v)...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels renders one multi-row INSERT; T fixes the column list.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("insert values are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	var plan columnPlan
	for i := range models {
		v, err := modelValue(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			if plan, err = planFor(v.Type()); err != nil {
				return "", nil, err
			}
			builder.Columns(plan.columns...)
		}
		builder.Values(plan.values(v)...)
	}
	return builder.ToSQL()
}
