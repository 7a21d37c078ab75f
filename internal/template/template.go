// Package template renders a synthesized stack as a CloudFormation template.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dominikbraun/graph"
	"gopkg.in/yaml.v3"

	infra "github.com/ecsworkshop/frontend-infra"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
)

// FormatVersion is the CloudFormation template format version.
const FormatVersion = "2010-09-09"

// Builder constructs CloudFormation templates from a stack.
type Builder struct {
	description string
	entries     []stack.Entry
	outputs     []stack.Output
	stackErr    error
}

// NewBuilder creates a template builder for s.
func NewBuilder(s *stack.Stack) *Builder {
	return &Builder{
		description: s.Description,
		entries:     s.Resources(),
		outputs:     s.Outputs(),
		stackErr:    s.Err(),
	}
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*infra.Template, error) {
	if b.stackErr != nil {
		return nil, b.stackErr
	}

	// Get resources in dependency order
	order, err := b.Order()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]stack.Entry, len(b.entries))
	for _, e := range b.entries {
		byID[e.LogicalID] = e
	}

	template := &infra.Template{
		AWSTemplateFormatVersion: FormatVersion,
		Description:              b.description,
		Resources:                make(map[string]infra.ResourceDef, len(order)),
	}

	for _, id := range order {
		e := byID[id]

		resourceType := e.Resource.ResourceType()
		if !strings.HasPrefix(resourceType, "AWS::") {
			return nil, fmt.Errorf("unknown resource type for %s: %q", id, resourceType)
		}

		template.Resources[id] = infra.ResourceDef{
			Type:       resourceType,
			Properties: e.Properties,
			DependsOn:  e.DependsOn,
		}
	}

	if len(b.outputs) > 0 {
		template.Outputs = make(map[string]infra.Output, len(b.outputs))
		for _, o := range b.outputs {
			output := infra.Output{
				Description: o.Description,
				Value:       o.Value,
			}
			if o.ExportName != "" {
				output.Export = &infra.OutputExport{Name: o.ExportName}
			}
			template.Outputs[o.LogicalID] = output
		}
	}

	return template, nil
}

// Order returns the logical IDs so that every resource follows the resources
// it references. Ties keep construction order.
func (b *Builder) Order() ([]string, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	position := make(map[string]int, len(b.entries))
	for i, e := range b.entries {
		if err := g.AddVertex(e.LogicalID); err != nil {
			return nil, fmt.Errorf("adding %s: %w", e.LogicalID, err)
		}
		position[e.LogicalID] = i
	}

	for _, e := range b.entries {
		for _, dep := range dependencies(e) {
			err := g.AddEdge(dep, e.LogicalID)
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrVertexNotFound):
				return nil, fmt.Errorf("%s refers to unknown resource %s", e.LogicalID, dep)
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return nil, b.cycleError(g, dep, e.LogicalID)
			default:
				return nil, fmt.Errorf("adding dependency %s -> %s: %w", dep, e.LogicalID, err)
			}
		}
	}

	return graph.StableTopologicalSort(g, func(a, b string) bool {
		return position[a] < position[b]
	})
}

// cycleError reports the cycle closed by the edge dep -> id.
func (b *Builder) cycleError(g graph.Graph[string, string], dep, id string) error {
	path, err := graph.ShortestPath(g, id, dep)
	if err != nil {
		return fmt.Errorf("circular dependency detected between %s and %s", dep, id)
	}

	msg := "circular dependency detected:\n  " + strings.Join(append(path, id), "\n    → ")
	return errors.New(msg)
}

func dependencies(e stack.Entry) []string {
	deps := make([]string, 0, len(e.References)+len(e.DependsOn))
	deps = append(deps, e.References...)
	return append(deps, e.DependsOn...)
}

// ToJSON serializes the template to JSON.
func ToJSON(t *infra.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *infra.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
