package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// ErrUnknownEndpoint is returned by Build for an ID outside the table.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Param is one bound path parameter.
type Param struct {
	Name  string
	Value string
}

// Defaults are the client-wide query values applied to every command.
// An empty field is unset.
type Defaults struct {
	Key       string
	QuotaUser string
}

// Command is a fully bound call, ready for an executor.
type Command struct {
	Descriptor *Descriptor
	Method     string
	PathParams []Param
	Query      url.Values

	// Request is nil when the call carries no body.
	Request       any
	RequestSchema appengine.Schema

	// Response is a pointer to a zero value of ResponseSchema for the
	// executor to decode into.
	Response       any
	ResponseSchema appengine.Schema
}

// Name returns the dotted operation name of the command.
func (c *Command) Name() string {
	return c.Descriptor.Name
}

// Path returns the expanded, relative request path.
func (c *Command) Path() string {
	return Expand(c.Descriptor.Template, c.PathParams)
}

// Build binds ids, options and request to the operation id. ids bind to the
// descriptor's path parameters in order; a missing id binds as "". Defaults
// are applied first and any per-call option with the same name replaces
// them. Options the operation does not accept are dropped.
func Build(id ID, ids []string, request any, opts *appengine.CallOptions, defaults Defaults) (*Command, error) {
	descriptor := Lookup(id)
	if descriptor == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEndpoint, id)
	}

	cmd := &Command{
		Descriptor:     descriptor,
		Method:         descriptor.Method,
		PathParams:     make([]Param, len(descriptor.PathParams)),
		Query:          url.Values{},
		Response:       NewValue(descriptor.ResponseSchema),
		ResponseSchema: descriptor.ResponseSchema,
	}

	for index, name := range descriptor.PathParams {
		cmd.PathParams[index] = Param{Name: name}
		if index < len(ids) {
			cmd.PathParams[index].Value = ids[index]
		}
	}

	if defaults.Key != "" {
		cmd.Query.Set(ParamKey, defaults.Key)
	}

	if defaults.QuotaUser != "" {
		cmd.Query.Set(ParamQuotaUser, defaults.QuotaUser)
	}

	values, err := opts.ToValues()
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", descriptor.Name, err)
	}

	for name, value := range values {
		if descriptor.Accepts(name) {
			cmd.Query[name] = value
		}
	}

	if descriptor.RequestSchema != appengine.SchemaNone && !isNil(request) {
		cmd.Request = request
		cmd.RequestSchema = descriptor.RequestSchema
	}

	return cmd, nil
}

// Expand substitutes each {name} placeholder of template with its
// path-escaped value, in the order of params.
func Expand(template string, params []Param) string {
	path := template
	for _, param := range params {
		path = strings.Replace(path, "{"+param.Name+"}", url.PathEscape(param.Value), 1)
	}

	return path
}

// NewValue returns a pointer to a zero value of the record named by schema,
// or nil for SchemaNone.
func NewValue(schema appengine.Schema) any {
	switch schema {
	case appengine.SchemaApplication:
		return &appengine.Application{}
	case appengine.SchemaService:
		return &appengine.Service{}
	case appengine.SchemaVersion:
		return &appengine.Version{}
	case appengine.SchemaInstance:
		return &appengine.Instance{}
	case appengine.SchemaOperation:
		return &appengine.Operation{}
	case appengine.SchemaLocation:
		return &appengine.Location{}
	case appengine.SchemaRepairApplicationRequest:
		return &appengine.RepairApplicationRequest{}
	case appengine.SchemaDebugInstanceRequest:
		return &appengine.DebugInstanceRequest{}
	case appengine.SchemaListServicesResponse:
		return &appengine.ListServicesResponse{}
	case appengine.SchemaListVersionsResponse:
		return &appengine.ListVersionsResponse{}
	case appengine.SchemaListInstancesResponse:
		return &appengine.ListInstancesResponse{}
	case appengine.SchemaListOperationsResponse:
		return &appengine.ListOperationsResponse{}
	case appengine.SchemaListLocationsResponse:
		return &appengine.ListLocationsResponse{}
	case appengine.SchemaNone:
		return nil
	}

	return nil
}

// isNil treats typed nil pointers, maps and slices as absent.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
