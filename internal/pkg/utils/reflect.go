package utils

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type StructField struct {
	tagName string
	reflect.StructField
}

// TagName returns the name from the tag, or the field name if the tag has no name.
func (f *StructField) TagName() string {
	if f.tagName != "" {
		return f.tagName
	}
	return f.Name
}

type fieldsCacheKey struct {
	tag       string
	modelType reflect.Type
}

var fieldsCache sync.Map // nolint: gochecknoglobals

// GetFieldsWithTag returns exported fields of the struct which have the tag, eg. "mapstructure".
// Result is cached per type, the model can be a struct, a pointer to a struct or a reflect.Type.
func GetFieldsWithTag(tag string, model any) []*StructField {
	var modelType reflect.Type
	if v, ok := model.(reflect.Type); ok {
		modelType = v
	} else {
		modelType = reflect.TypeOf(model)
	}
	for modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		panic(fmt.Errorf(`expected struct, found "%s"`, modelType))
	}

	key := fieldsCacheKey{tag: tag, modelType: modelType}
	if v, found := fieldsCache.Load(key); found {
		return v.([]*StructField)
	}

	var fields []*StructField
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}
		if value, found := field.Tag.Lookup(tag); found {
			name := strings.Split(value, ",")[0]
			fields = append(fields, &StructField{tagName: name, StructField: field})
		}
	}

	fieldsCache.Store(key, fields)
	return fields
}

// GetFieldByTagName returns the value of the field with the tag name.
// Found is false if there is no such field or the field has the zero value.
func GetFieldByTagName(tag string, name string, model any) (value any, found bool) {
	reflection := reflect.Indirect(reflect.ValueOf(model))
	for _, field := range GetFieldsWithTag(tag, model) {
		if field.TagName() != name {
			continue
		}

		fieldValue := reflection.FieldByIndex(field.Index)
		if fieldValue.IsZero() {
			return nil, false
		}
		if fieldValue.Kind() == reflect.Ptr {
			fieldValue = fieldValue.Elem()
		}
		return fieldValue.Interface(), true
	}
	return nil, false
}
