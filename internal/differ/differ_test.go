package differ

import (
	"os"
	"path/filepath"
	"testing"

	infra "github.com/ecsworkshop/frontend-infra"
)

func TestCompare(t *testing.T) {
	t1 := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"FrontendLogGroup":  {Type: "AWS::Logs::LogGroup", Properties: map[string]any{"RetentionInDays": 7}},
			"FrontendTaskRole":  {Type: "AWS::IAM::Role", Properties: map[string]any{"Path": "/"}},
			"MeshVirtualRouter": {Type: "AWS::AppMesh::VirtualRouter", Properties: map[string]any{"VirtualRouterName": "FrontEnd"}},
		},
	}

	t2 := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"FrontendLogGroup": {Type: "AWS::Logs::LogGroup", Properties: map[string]any{"RetentionInDays": 14}},
			"FrontendTaskRole": {Type: "AWS::IAM::Role", Properties: map[string]any{"Path": "/"}},
			"MeshGatewayRoute": {Type: "AWS::AppMesh::GatewayRoute", Properties: map[string]any{"GatewayRouteName": "frontend-router"}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Removed) != 1 {
		t.Errorf("Removed = %d, want 1", len(result.Diff.Removed))
	} else if result.Diff.Removed[0].Resource != "MeshVirtualRouter" {
		t.Errorf("Removed[0].Resource = %s, want MeshVirtualRouter", result.Diff.Removed[0].Resource)
	}

	if len(result.Diff.Added) != 1 {
		t.Errorf("Added = %d, want 1", len(result.Diff.Added))
	} else if result.Diff.Added[0].Resource != "MeshGatewayRoute" {
		t.Errorf("Added[0].Resource = %s, want MeshGatewayRoute", result.Diff.Added[0].Resource)
	}

	if len(result.Diff.Modified) != 1 {
		t.Errorf("Modified = %d, want 1", len(result.Diff.Modified))
	} else if result.Diff.Modified[0].Resource != "FrontendLogGroup" {
		t.Errorf("Modified[0].Resource = %s, want FrontendLogGroup", result.Diff.Modified[0].Resource)
	}

	if result.Summary.Total != 3 {
		t.Errorf("Summary.Total = %d, want 3", result.Summary.Total)
	}
}

func TestCompareIdentical(t *testing.T) {
	template := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"FrontendLogGroup": {Type: "AWS::Logs::LogGroup", Properties: map[string]any{"RetentionInDays": 7}},
		},
	}

	result, err := Compare(template, template, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0 for identical templates", result.Summary.Total)
	}
}

// A synthesized template carries int64 values; one read from disk carries float64.
func TestCompareNumericTypes(t *testing.T) {
	synthesized := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"Service": {Type: "AWS::ECS::Service", Properties: map[string]any{"DesiredCount": int64(3)}},
		},
	}
	loaded := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"Service": {Type: "AWS::ECS::Service", Properties: map[string]any{"DesiredCount": float64(3)}},
		},
	}

	result, err := Compare(loaded, synthesized, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0", result.Summary.Total)
	}
}

func TestCompareEmpty(t *testing.T) {
	t1 := &infra.Template{Resources: map[string]infra.ResourceDef{}}
	t2 := &infra.Template{Resources: map[string]infra.ResourceDef{}}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0", result.Summary.Total)
	}
}

func TestCompareTypeChange(t *testing.T) {
	t1 := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"Ingress": {Type: "AWS::EC2::SecurityGroupIngress"},
		},
	}

	t2 := &infra.Template{
		Resources: map[string]infra.ResourceDef{
			"Ingress": {Type: "AWS::EC2::SecurityGroupEgress"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}

	found := false
	for _, change := range result.Diff.Modified[0].Changes {
		if change == "Type changed: AWS::EC2::SecurityGroupIngress → AWS::EC2::SecurityGroupEgress" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected type change to be detected")
	}
}

func TestCompareProperties(t *testing.T) {
	tests := []struct {
		name   string
		props1 map[string]any
		props2 map[string]any
		want   []string
	}{
		{
			name:   "identical",
			props1: map[string]any{"RouteName": "frontend-a"},
			props2: map[string]any{"RouteName": "frontend-a"},
		},
		{
			name:   "added property",
			props1: map[string]any{},
			props2: map[string]any{"RouteName": "frontend-a"},
			want:   []string{"RouteName added"},
		},
		{
			name:   "removed property",
			props1: map[string]any{"RouteName": "frontend-a"},
			props2: map[string]any{},
			want:   []string{"RouteName removed"},
		},
		{
			name:   "nested property",
			props1: map[string]any{"Spec": map[string]any{"Priority": 1.0, "Name": "a"}},
			props2: map[string]any{"Spec": map[string]any{"Priority": 2.0, "Name": "a"}},
			want:   []string{"Spec.Priority modified"},
		},
		{
			name:   "intrinsic compared whole",
			props1: map[string]any{"Cluster": map[string]any{"Fn::ImportValue": "ECSClusterName"}},
			props2: map[string]any{"Cluster": map[string]any{"Fn::ImportValue": "OtherCluster"}},
			want:   []string{"Cluster modified"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := compareProperties("", tt.props1, tt.props2, Options{})
			if len(changes) != len(tt.want) {
				t.Fatalf("compareProperties() = %v, want %v", changes, tt.want)
			}
			for i := range changes {
				if changes[i] != tt.want[i] {
					t.Errorf("change[%d] = %q, want %q", i, changes[i], tt.want[i])
				}
			}
		})
	}
}

func TestCompareIgnoreOrder(t *testing.T) {
	props1 := map[string]any{"Subnets": []any{"subnet-a", "subnet-b"}}
	props2 := map[string]any{"Subnets": []any{"subnet-b", "subnet-a"}}

	if changes := compareProperties("", props1, props2, Options{}); len(changes) != 1 {
		t.Errorf("ordered compare = %v, want one change", changes)
	}
	if changes := compareProperties("", props1, props2, Options{IgnoreOrder: true}); len(changes) != 0 {
		t.Errorf("unordered compare = %v, want no changes", changes)
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "template.yaml")
	content := `AWSTemplateFormatVersion: "2010-09-09"
Resources:
  FrontendLogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      RetentionInDays: 7
`
	if err := os.WriteFile(yamlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	template, err := LoadTemplate(yamlPath)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	if template.Resources["FrontendLogGroup"].Type != "AWS::Logs::LogGroup" {
		t.Errorf("unexpected resources: %v", template.Resources)
	}

	if _, err := LoadTemplate(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEqualStringSlices(t *testing.T) {
	tests := []struct {
		a, b []string
		want bool
	}{
		{nil, nil, true},
		{[]string{}, []string{}, true},
		{[]string{"Listener", "TaskRolePolicy"}, []string{"Listener", "TaskRolePolicy"}, true},
		{[]string{"Listener"}, []string{"TaskRolePolicy"}, false},
		{[]string{"Listener"}, []string{"Listener", "TaskRolePolicy"}, false},
	}

	for _, tt := range tests {
		got := equalStringSlices(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("equalStringSlices(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
