// Package validator wraps go-playground/validator, errors use JSON field names and are returned as a MultiError.
package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

const nestedTagName = "__nested__"

type Rule struct {
	Tag  string
	Func validator.FuncCtx
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New(rules ...Rule) *Validator {
	v := &Validator{validate: validator.New()}

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	for _, rule := range rules {
		if err := v.validate.RegisterValidationCtx(rule.Tag, rule.Func); err != nil {
			panic(err)
		}
	}

	// Use JSON field names in error messages, anonymous fields are removed from the namespace
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedTagName
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Validate a struct or a slice of structs.
func (v *Validator) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateCtx validates a value by the tag, the namespace is used as a prefix of the field names.
func (v *Validator) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	var err error
	if isStruct(value) {
		err = v.validate.StructCtx(ctx, value)
	} else {
		err = v.validate.VarCtx(ctx, value, tag)
	}

	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	return v.processErrors(validationErrs, namespace, isStruct(value))
}

func (v *Validator) processErrors(errs validator.ValidationErrors, namespace string, inStruct bool) error {
	result := errors.NewMultiError()
	for _, e := range errs {
		field := fieldPath(e.Namespace(), inStruct)
		if namespace != "" {
			field = strings.Trim(namespace+"."+field, ".")
		}

		msg := strings.TrimPrefix(e.Translate(v.translator), e.Field())
		if field == "" {
			result.Append(errors.New(strings.TrimSpace(msg)))
		} else {
			result.Append(errors.Errorf(`"%s"%s`, field, msg))
		}
	}
	return result.ErrorOrNil()
}

// fieldPath removes the struct name and the anonymous parts from the namespace.
func fieldPath(namespace string, inStruct bool) string {
	namespace = strings.ReplaceAll(namespace, nestedTagName+".", "")
	if inStruct {
		if _, after, found := strings.Cut(namespace, "."); found {
			return after
		}
	}
	return namespace
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
