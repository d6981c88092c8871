package comments

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lealre/comments-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("isstring", validateIsString); err != nil {
		panic(err)
	}
}

func validateIsString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

// Schema maps a field name to a validator rule. Fields it does not name
// are stored as they come.
type Schema map[string]string

var CommentSchema = Schema{
	"body":   "required,isstring,min=1,max=5000",
	"author": "omitempty,isstring,max=100",
}

// Validate checks field names against what MongoDB accepts and values
// against the schema rules. With partial set only the rules of fields
// present in the document apply, as for an update.
func (s Schema) Validate(fields mongodb.Document, partial bool) error {
	if err := checkFieldNames(primitive.D(fields), ""); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	data := fields.Map()
	rules := make(map[string]any, len(s))
	for field, rule := range s {
		if _, ok := data[field]; partial && !ok {
			continue
		}
		rules[field] = rule
	}

	failed := validate.ValidateMap(data, rules)
	if len(failed) == 0 {
		return nil
	}

	names := make([]string, 0, len(failed))
	for field := range failed {
		names = append(names, field)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, field := range names {
		msgs = append(msgs, describe(field, failed[field]))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describe(field string, failure any) string {
	var verrs validator.ValidationErrors
	if err, ok := failure.(error); ok && errors.As(err, &verrs) {
		tags := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			tags = append(tags, fe.Tag())
		}
		return fmt.Sprintf("%s failed on '%s'", field, strings.Join(tags, ","))
	}
	return fmt.Sprintf("%s: %v", field, failure)
}

// checkFieldNames rejects empty names, names starting with '$' and names
// containing '.', at any depth.
func checkFieldNames(value any, path string) error {
	switch v := value.(type) {
	case primitive.D:
		for _, e := range v {
			if err := checkFieldName(e.Key, path); err != nil {
				return err
			}
			if err := checkFieldNames(e.Value, join(path, e.Key)); err != nil {
				return err
			}
		}
	case primitive.M:
		for key, item := range v {
			if err := checkFieldName(key, path); err != nil {
				return err
			}
			if err := checkFieldNames(item, join(path, key)); err != nil {
				return err
			}
		}
	case primitive.A:
		for i, item := range v {
			if err := checkFieldNames(item, join(path, fmt.Sprint(i))); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkFieldName(key, path string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty name in %q", ErrInvalidFieldKey, path)
	case strings.HasPrefix(key, "$"):
		return fmt.Errorf("%w: %q starts with '$'", ErrInvalidFieldKey, join(path, key))
	case strings.Contains(key, "."):
		return fmt.Errorf("%w: %q contains '.'", ErrInvalidFieldKey, join(path, key))
	}
	return nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
