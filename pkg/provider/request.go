package provider

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ritzau/folia-viewer/pkg/model"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid graph request")

// Mention directions accepted by the mentions graph.
const (
	MentionDirectionMentioning  = "Mentioning"
	MentionDirectionMentionedBy = "Mentioned by"
)

// GeneralFilter selects entity types and relationships for a general graph.
type GeneralFilter struct {
	EntityTypes   []string `json:"entity_types" validate:"required,dive,required"`
	Relationships []string `json:"relationships" validate:"required,dive,required"`
}

// MentionsFilter selects entity types and mention directions.
type MentionsFilter struct {
	EntityTypes       []string `json:"entity_types" validate:"required,dive,required"`
	MentionDirections []string `json:"mention_directions" validate:"required,dive,oneof='Mentioning' 'Mentioned by'"`
}

// PersonAuthorshipOwnershipFilter narrows the person-centric graph.
type PersonAuthorshipOwnershipFilter struct {
	PersonNames   []string `json:"person_names,omitempty" validate:"omitempty,dive,required"`
	EntityTypes   []string `json:"entity_types" validate:"required,dive,required"`
	Relationships []string `json:"relationships" validate:"required,dive,required"`
}

// Request is a graph search: the project set, the graph type, and the
// filter block matching that type.
type Request struct {
	Projects  []string        `json:"projects,omitempty" validate:"omitempty,dive,required"`
	GraphType model.GraphType `json:"graph_type" validate:"required,oneof=general mentions person_authorship_ownership"`

	GeneralFilters                   *GeneralFilter                   `json:"general_filters,omitempty" validate:"required_if=GraphType general"`
	MentionsFilters                  *MentionsFilter                  `json:"mentions_filters,omitempty" validate:"required_if=GraphType mentions"`
	PersonAuthorshipOwnershipFilters *PersonAuthorshipOwnershipFilter `json:"person_authorship_ownership_filters,omitempty" validate:"required_if=GraphType person_authorship_ownership"`
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize fills defaults: an unset graph type means general.
func (r *Request) Normalize() {
	if r.GraphType == "" {
		r.GraphType = model.GraphGeneral
	}
}

// Validate checks the request shape. The returned error wraps
// ErrInvalidRequest and names the offending fields.
func (r *Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Request.")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
