package graph

import (
	"strings"
	"testing"

	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/appmesh"
	"github.com/ecsworkshop/frontend-infra/resources/iam"
	"github.com/ecsworkshop/frontend-infra/resources/logs"
)

func meshStack(t *testing.T) *stack.Stack {
	t.Helper()

	s := stack.New("ecsworkshop-frontend", "")
	logGroup := s.Add("FrontendLogGroup", logs.LogGroup{RetentionInDays: 7})
	role := s.Add("FrontendTaskRole", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy("ecs-tasks.amazonaws.com"),
	})
	node := s.Add("MeshFrontEndNode", appmesh.VirtualNode{
		MeshName:        intrinsics.Import("MeshArn"),
		VirtualNodeName: "frontend",
	}, stack.DependsOn(logGroup))
	s.Add("MeshVirtualRouter", appmesh.VirtualRouter{
		MeshName:          intrinsics.Import("MeshArn"),
		VirtualRouterName: node.GetAtt("VirtualNodeName"),
	})
	s.Add("FrontendTaskPolicy", iam.Policy{
		PolicyName: "frontend",
		Roles:      intrinsics.Any(role.Ref()),
	})

	if err := s.Err(); err != nil {
		t.Fatalf("building stack: %v", err)
	}
	return s
}

func TestGenerator_Generate(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(meshStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}

	for _, id := range []string{"FrontendLogGroup", "FrontendTaskRole", "MeshFrontEndNode", "MeshVirtualRouter", "FrontendTaskPolicy"} {
		if !strings.Contains(output, id) {
			t.Errorf("expected %s node", id)
		}
	}

	if !strings.Contains(output, "AWS::AppMesh::VirtualNode") {
		t.Error("expected CloudFormation type in node label")
	}
}

func TestGenerator_EdgeStyles(t *testing.T) {
	output, err := (&Generator{}).GenerateString(meshStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// GetAtt edges should be blue
	if !strings.Contains(output, "blue") {
		t.Error("expected blue color for GetAtt edge")
	}

	// DependsOn edges should be dashed
	if !strings.Contains(output, "dashed") {
		t.Error("expected dashed style for DependsOn edge")
	}
}

func TestGenerator_IncludeImports(t *testing.T) {
	without, err := (&Generator{}).GenerateString(meshStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(without, "ellipse") {
		t.Error("imports should be hidden by default")
	}

	with, err := (&Generator{IncludeImports: true}).GenerateString(meshStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(with, "MeshArn") {
		t.Error("expected MeshArn import node")
	}
	if !strings.Contains(with, "ellipse") {
		t.Error("expected ellipse shape for imports")
	}
}

func TestGenerator_ClusterByType(t *testing.T) {
	output, err := (&Generator{ClusterByType: true}).GenerateString(meshStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, `label="AppMesh"`) {
		t.Error("expected AppMesh cluster")
	}
	if !strings.Contains(output, `label="IAM"`) {
		t.Error("expected IAM cluster")
	}
	if strings.Contains(output, `label="Logs"`) {
		t.Error("a single log group should not be clustered")
	}

	// each resource is drawn once, inside its cluster
	for _, id := range []string{"FrontendLogGroup", "FrontendTaskRole", "MeshFrontEndNode", "MeshVirtualRouter", "FrontendTaskPolicy"} {
		if n := strings.Count(output, `label="`+id); n != 1 {
			t.Errorf("%s drawn %d times, want 1", id, n)
		}
	}
	if n := strings.Count(output, "->"); n != 3 {
		t.Errorf("got %d edges, want 3:\n%s", n, output)
	}
}

func TestGenerator_MermaidFormat(t *testing.T) {
	output, err := (&Generator{Format: FormatMermaid}).GenerateString(meshStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, "graph") && !strings.Contains(output, "flowchart") {
		t.Errorf("expected mermaid graph/flowchart, got:\n%s", output)
	}

	if strings.Contains(output, "digraph") {
		t.Error("expected mermaid format, not DOT")
	}
}

func TestExtractService(t *testing.T) {
	tests := []struct {
		cfType string
		want   string
	}{
		{"AWS::AppMesh::VirtualNode", "AppMesh"},
		{"AWS::ECS::Service", "ECS"},
		{"Custom::Thing", "Other"},
	}

	for _, tt := range tests {
		if got := extractService(tt.cfType); got != tt.want {
			t.Errorf("extractService(%q) = %q, want %q", tt.cfType, got, tt.want)
		}
	}
}

func TestImportNames(t *testing.T) {
	props := map[string]any{
		"MeshName": map[string]any{"Fn::ImportValue": "MeshArn"},
		"Spec": map[string]any{
			"Backends": []any{
				map[string]any{"VirtualServiceName": map[string]any{"Fn::ImportValue": "MeshNodeJsVSName"}},
				map[string]any{"VirtualServiceName": map[string]any{"Fn::ImportValue": "MeshCrystalVSName"}},
			},
		},
	}

	got := importNames(props)
	want := []string{"MeshArn", "MeshCrystalVSName", "MeshNodeJsVSName"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("importNames() = %v, want %v", got, want)
	}
}
