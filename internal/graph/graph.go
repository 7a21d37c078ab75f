// Package graph renders the dependency graph of a synthesized stack in DOT or
// Mermaid format.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	"github.com/ecsworkshop/frontend-infra/internal/stack"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from a stack.
type Generator struct {
	// IncludeImports adds a node for every cross-stack export the stack imports.
	IncludeImports bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByType groups resources by AWS service.
	ClusterByType bool
}

// Generate creates a dependency graph and writes it to w.
func (g *Generator) Generate(s *stack.Stack, w io.Writer) error {
	graph := g.buildGraph(s)

	var output string
	if g.Format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(s *stack.Stack) (string, error) {
	var sb strings.Builder
	if err := g.Generate(s, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(s *stack.Stack) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	entries := s.Resources()

	// Resource nodes may live in cluster subgraphs; edges must reuse them
	// rather than let the root graph create unclustered twins.
	var nodes map[string]dot.Node
	if g.ClusterByType {
		nodes = g.addClusteredNodes(graph, entries)
	} else {
		nodes = make(map[string]dot.Node, len(entries))
		for _, e := range entries {
			n := graph.Node(e.LogicalID)
			label(n, e)
			nodes[e.LogicalID] = n
		}
	}

	imports := make(map[string]dot.Node)
	importNode := func(name string) dot.Node {
		if n, ok := imports[name]; ok {
			return n
		}
		n := graph.Node("import:" + name)
		n.Attr("shape", "ellipse")
		n.Attr("style", "dashed")
		n.Label(name)
		imports[name] = n
		return n
	}

	for _, e := range entries {
		from := nodes[e.LogicalID]
		getAtts := getAttTargets(e.Properties)

		for _, ref := range e.References {
			to, ok := nodes[ref]
			if !ok {
				continue
			}
			edge := graph.Edge(from, to)
			if getAtts[ref] {
				edge.Attr("color", "blue")
			}
		}
		for _, dep := range e.DependsOn {
			if to, ok := nodes[dep]; ok {
				graph.Edge(from, to).Attr("style", "dashed")
			}
		}

		if g.IncludeImports {
			for _, name := range importNames(e.Properties) {
				graph.Edge(from, importNode(name))
			}
		}
	}

	return graph
}

func label(n dot.Node, e stack.Entry) {
	n.Label(e.LogicalID + "\\n[" + e.Resource.ResourceType() + "]")
}

// addClusteredNodes adds resource nodes grouped by AWS service and returns
// them by logical ID. Services with a single resource are not clustered.
func (g *Generator) addClusteredNodes(graph *dot.Graph, entries []stack.Entry) map[string]dot.Node {
	byService := make(map[string][]stack.Entry)
	var services []string
	for _, e := range entries {
		service := extractService(e.Resource.ResourceType())
		if _, seen := byService[service]; !seen {
			services = append(services, service)
		}
		byService[service] = append(byService[service], e)
	}

	nodes := make(map[string]dot.Node, len(entries))
	for _, service := range services {
		members := byService[service]
		if len(members) == 1 {
			n := graph.Node(members[0].LogicalID)
			label(n, members[0])
			nodes[members[0].LogicalID] = n
			continue
		}

		cluster := graph.Subgraph(service, dot.ClusterOption{})
		cluster.Attr("label", service)
		cluster.Attr("style", "rounded")
		cluster.Attr("bgcolor", "lightyellow")
		for _, e := range members {
			n := cluster.Node(e.LogicalID)
			label(n, e)
			nodes[e.LogicalID] = n
		}
	}
	return nodes
}

// extractService returns the service part of a CloudFormation type.
// e.g., "AWS::AppMesh::VirtualNode" -> "AppMesh"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}

// getAttTargets returns the logical IDs named by Fn::GetAtt in v.
func getAttTargets(v any) map[string]bool {
	targets := make(map[string]bool)
	walk(v, func(m map[string]any) {
		switch args := m["Fn::GetAtt"].(type) {
		case []any:
			if len(args) > 0 {
				if id, ok := args[0].(string); ok {
					targets[id] = true
				}
			}
		case string:
			targets[strings.SplitN(args, ".", 2)[0]] = true
		}
	})
	return targets
}

// importNames returns the export names imported with Fn::ImportValue in v, sorted.
func importNames(v any) []string {
	seen := make(map[string]bool)
	walk(v, func(m map[string]any) {
		if name, ok := m["Fn::ImportValue"].(string); ok {
			seen[name] = true
		}
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func walk(v any, visit func(map[string]any)) {
	switch val := v.(type) {
	case map[string]any:
		visit(val)
		for _, child := range val {
			walk(child, visit)
		}
	case []any:
		for _, child := range val {
			walk(child, visit)
		}
	}
}
