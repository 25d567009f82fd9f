package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"roundtable/internal/llm"
)

// Registry is the operation catalog: an immutable name -> tool lookup
// table built once at startup. Adding a capability means adding an entry
// here; there is no runtime registration.
type Registry struct {
	store Store
	tools map[string]*Tool
}

// NewRegistry builds the catalog over the given data store.
func NewRegistry(s Store) *Registry {
	r := &Registry{
		store: s,
		tools: make(map[string]*Tool),
	}

	r.add(r.viewMembersTool())
	r.add(r.viewMemberBalanceTool())
	r.add(r.viewAnnouncementsTool())
	r.add(r.createAnnouncementTool())
	r.add(r.addPaymentTransactionTool())
	r.add(r.viewPaymentClassesTool())
	r.add(r.createPaymentClassTool())
	r.add(r.viewEventsTool())
	r.add(r.createEventTool())
	r.add(r.viewIncidentReportsTool())
	r.add(r.createIncidentReportTool())
	r.add(r.updateIncidentStatusTool())
	r.add(r.viewRidesTool())
	r.add(r.createRideTool())
	r.add(r.updateRideStatusTool())
	r.add(r.addMemberTool())
	r.add(r.updateMemberRoleTool())
	r.add(r.updateMemberPaymentClassTool())
	r.add(r.viewChariotDriversTool())
	r.add(r.addChariotDriverTool())

	return r
}

func (r *Registry) add(t *Tool) {
	if t.Name == "" || t.Execute == nil {
		panic(fmt.Sprintf("invalid tool registration: %+v", t))
	}
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("duplicate tool registration: %s", t.Name))
	}
	r.tools[t.Name] = t
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Count returns the number of registered operations.
func (r *Registry) Count() int {
	return len(r.tools)
}

// Names returns all operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelTools renders the catalog as tool declarations for the messages
// API, in stable order.
func (r *Registry) ModelTools() []llm.Tool {
	tools := make([]llm.Tool, 0, len(r.tools))
	for _, name := range r.Names() {
		t := r.tools[name]
		tools = append(tools, llm.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Schema.InputSchema(),
		})
	}
	return tools
}

// Execute validates a candidate argument bundle against the catalog and
// runs the matching operation. Unknown names and invalid arguments fail
// before any store access. The returned *ExecError is a structured
// payload for the model, not a request-fatal condition.
func (r *Registry) Execute(ctx context.Context, id Identity, name string, args Args) (any, *ExecError) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, notFoundErr("unknown operation %q", name)
	}

	if execErr := validateArgs(tool.Schema, args); execErr != nil {
		return nil, execErr
	}

	return tool.Execute(ctx, id, args)
}

// validateArgs checks required fields, primitive types, and enum
// constraints. It never touches the store.
func validateArgs(schema Schema, args Args) *ExecError {
	for _, field := range schema.Required {
		if _, present := args[field]; !present {
			return validationErr("missing required field %q", field)
		}
	}

	for field, value := range args {
		prop, known := schema.Properties[field]
		if !known {
			// Unknown extra fields are dropped from consideration rather
			// than rejected; models occasionally volunteer extras.
			continue
		}
		if value == nil {
			if contains(schema.Required, field) {
				return validationErr("required field %q is null", field)
			}
			continue
		}

		switch prop.Type {
		case "string":
			s, ok := value.(string)
			if !ok {
				return validationErr("field %q must be a string", field)
			}
			if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
				return validationErr("field %q must be one of: %s", field, strings.Join(prop.Enum, ", "))
			}
			if s == "" && contains(schema.Required, field) {
				return validationErr("required field %q is empty", field)
			}
		case "number":
			switch value.(type) {
			case float64, int:
			default:
				return validationErr("field %q must be a number", field)
			}
		case "boolean":
			if _, ok := value.(bool); !ok {
				return validationErr("field %q must be a boolean", field)
			}
		}
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
