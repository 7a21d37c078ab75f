// Package stack holds the in-memory object graph of one synthesis pass.
//
// Resources are added in construction order. A resource may only refer to
// resources added before it, so the order of Add calls is always a valid
// creation order:
//
//	s := stack.New("ecsworkshop-frontend", "ecsdemo-frontend service")
//	logs := s.Add("LogGroup", logs.LogGroup{RetentionInDays: 7})
//	s.Add("TaskDefinition", ecs.TaskDefinition{...logs.Ref()...})
//
// The first failure is sticky: later calls are no-ops and Err reports it.
package stack

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/serialize"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
)

var (
	// ErrForwardReference is returned when a resource refers to a logical ID
	// that has not been added yet.
	ErrForwardReference = errors.New("forward reference")

	// ErrDuplicateID is returned when a logical ID is added twice.
	ErrDuplicateID = errors.New("duplicate logical id")

	// ErrInvalidID is returned for logical IDs CloudFormation would reject.
	ErrInvalidID = errors.New("invalid logical id")
)

var logicalID = regexp.MustCompile(`^[A-Za-z0-9]{1,255}$`)

// Entry is one resource of the stack.
type Entry struct {
	LogicalID  string
	Resource   infra.Resource
	Properties map[string]any
	DependsOn  []string
	Path       string
	// References are the logical IDs named by Ref / Fn::GetAtt inside Properties.
	References []string
}

// Output is a stack output, exported when ExportName is set.
type Output struct {
	LogicalID   string
	Description string
	Value       any
	ExportName  string
	References  []string
}

// Stack is a unit of declared infrastructure synthesized together.
type Stack struct {
	Name        string
	Description string

	entries []*Entry
	index   map[string]*Entry
	outputs []Output
	err     error
}

// New creates an empty stack.
func New(name, description string) *Stack {
	return &Stack{
		Name:        name,
		Description: description,
		index:       make(map[string]*Entry),
	}
}

// Handle points at a resource already in the stack.
type Handle struct {
	id string
}

// LogicalID returns the logical ID of the resource.
func (h Handle) LogicalID() string {
	return h.id
}

// Ref returns a Ref to the resource.
func (h Handle) Ref() intrinsics.Ref {
	return intrinsics.Ref{LogicalName: h.id}
}

// GetAtt returns an Fn::GetAtt for one attribute of the resource.
func (h Handle) GetAtt(attr string) infra.AttrRef {
	return infra.AttrRef{Resource: h.id, Attribute: attr}
}

// Option customises an entry as it is added.
type Option func(*Entry)

// DependsOn adds explicit DependsOn edges.
func DependsOn(handles ...Handle) Option {
	return func(e *Entry) {
		for _, h := range handles {
			e.DependsOn = append(e.DependsOn, h.id)
		}
	}
}

// WithPath records the construct path the resource was created under.
func WithPath(path string) Option {
	return func(e *Entry) {
		e.Path = path
	}
}

// Add appends a resource and returns a handle to it.
func (s *Stack) Add(id string, res infra.Resource, opts ...Option) Handle {
	h := Handle{id: id}
	if s.err != nil {
		return h
	}

	if !logicalID.MatchString(id) {
		s.fail(fmt.Errorf("%q: %w", id, ErrInvalidID))
		return h
	}
	if _, exists := s.index[id]; exists {
		s.fail(fmt.Errorf("%s: %w", id, ErrDuplicateID))
		return h
	}

	props, err := serialize.Resource(res)
	if err != nil {
		s.fail(fmt.Errorf("serializing %s: %w", id, err))
		return h
	}

	entry := &Entry{
		LogicalID:  id,
		Resource:   res,
		Properties: props,
		Path:       s.Name + "/" + id,
		References: serialize.References(props),
	}
	for _, opt := range opts {
		opt(entry)
	}

	for _, refs := range [][]string{entry.References, entry.DependsOn} {
		for _, ref := range refs {
			if _, ok := s.index[ref]; !ok {
				s.fail(fmt.Errorf("%s refers to %s: %w", id, ref, ErrForwardReference))
				return h
			}
		}
	}

	s.entries = append(s.entries, entry)
	s.index[id] = entry

	zap.L().Debug("resource added",
		zap.String("stack", s.Name),
		zap.String("id", id),
		zap.String("type", res.ResourceType()),
		zap.Strings("references", entry.References),
	)
	return h
}

// Export declares an output. The output is exported under exportName when it is non-empty.
func (s *Stack) Export(id string, value any, exportName, description string) {
	if s.err != nil {
		return
	}

	for _, o := range s.outputs {
		if o.LogicalID == id {
			s.fail(fmt.Errorf("output %s: %w", id, ErrDuplicateID))
			return
		}
	}

	serialized, err := serialize.Value(value)
	if err != nil {
		s.fail(fmt.Errorf("serializing output %s: %w", id, err))
		return
	}

	refs := serialize.References(serialized)
	for _, ref := range refs {
		if _, ok := s.index[ref]; !ok {
			s.fail(fmt.Errorf("output %s refers to %s: %w", id, ref, ErrForwardReference))
			return
		}
	}

	s.outputs = append(s.outputs, Output{
		LogicalID:   id,
		Description: description,
		Value:       serialized,
		ExportName:  exportName,
		References:  refs,
	})
}

// Fail records err as the stack error unless one is already recorded.
// Builders use it for failures that are not tied to a single Add.
func (s *Stack) Fail(err error) {
	if err != nil {
		s.fail(err)
	}
}

func (s *Stack) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the first failure recorded on the stack.
func (s *Stack) Err() error {
	return s.err
}

// Len returns the number of resources.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Get returns the entry with the given logical ID.
func (s *Stack) Get(id string) (Entry, bool) {
	e, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Resources returns the entries in construction order.
func (s *Stack) Resources() []Entry {
	result := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		result[i] = *e
	}
	return result
}

// Outputs returns the declared outputs in declaration order.
func (s *Stack) Outputs() []Output {
	return append([]Output(nil), s.outputs...)
}

// OfType returns the entries whose CloudFormation type has the given prefix,
// e.g. "AWS::AppMesh::".
func (s *Stack) OfType(prefix string) []Entry {
	var result []Entry
	for _, e := range s.entries {
		if strings.HasPrefix(e.Resource.ResourceType(), prefix) {
			result = append(result, *e)
		}
	}
	return result
}

// Scope groups resources under a construct path. Logical IDs are the
// CamelCase join of the path segments and the resource name.
type Scope struct {
	stack *Stack
	path  []string
}

// Scope opens a construct scope on the stack.
func (s *Stack) Scope(segments ...string) Scope {
	return Scope{stack: s, path: segments}
}

// Scope opens a nested scope.
func (sc Scope) Scope(segments ...string) Scope {
	path := append(append([]string(nil), sc.path...), segments...)
	return Scope{stack: sc.stack, path: path}
}

// ID returns the logical ID a resource called name gets in this scope.
func (sc Scope) ID(name string) string {
	parts := make([]string, 0, len(sc.path)+1)
	for _, p := range append(append([]string(nil), sc.path...), name) {
		parts = append(parts, strcase.ToCamel(p))
	}
	return strings.Join(parts, "")
}

// Add adds a resource named name inside the scope.
func (sc Scope) Add(name string, res infra.Resource, opts ...Option) Handle {
	path := sc.stack.Name + "/" + strings.Join(append(append([]string(nil), sc.path...), name), "/")
	return sc.stack.Add(sc.ID(name), res, append([]Option{WithPath(path)}, opts...)...)
}
