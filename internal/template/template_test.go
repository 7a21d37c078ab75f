package template

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/resources/appmesh"
	"github.com/ecsworkshop/frontend-infra/resources/ecs"
	"github.com/ecsworkshop/frontend-infra/resources/iam"
	"github.com/ecsworkshop/frontend-infra/resources/logs"
)

func buildStack(t *testing.T) *stack.Stack {
	t.Helper()

	s := stack.New("ecsworkshop-frontend", "ecsdemo-frontend")
	logGroup := s.Add("LogGroup", logs.LogGroup{RetentionInDays: logs.RetentionOneWeek})
	role := s.Add("TaskRole", iam.Role{Description: "task role"})
	node := s.Add("MeshFrontEndNode", appmesh.VirtualNode{MeshName: "mesh", VirtualNodeName: "frontend"})
	task := s.Add("TaskDefinition", ecs.TaskDefinition{
		TaskRoleArn: role.GetAtt("Arn"),
		ContainerDefinitions: []ecs.TaskDefinition_ContainerDefinition{{
			Name: "envoy",
			Environment: []ecs.TaskDefinition_KeyValuePair{
				{Name: "APPMESH_RESOURCE_ARN", Value: node.Ref()},
			},
			LogConfiguration: &ecs.TaskDefinition_LogConfiguration{
				LogDriver: ecs.LogDriverAwsLogs,
				Options:   map[string]any{"awslogs-group": logGroup.Ref()},
			},
		}},
	})
	s.Add("Service", ecs.Service{TaskDefinition: task.Ref(), DesiredCount: 3}, stack.DependsOn(role))
	s.Export("MeshFrontendVNARN", node.Ref(), "MeshFrontendVNARN", "")
	require.NoError(t, s.Err())
	return s
}

func TestBuilder_Build(t *testing.T) {
	template, err := NewBuilder(buildStack(t)).Build()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	assert.Equal(t, "ecsdemo-frontend", template.Description)
	assert.Len(t, template.Resources, 5)

	logGroup := template.Resources["LogGroup"]
	assert.Equal(t, "AWS::Logs::LogGroup", logGroup.Type)
	assert.Equal(t, int64(7), logGroup.Properties["RetentionInDays"])

	service := template.Resources["Service"]
	assert.Equal(t, "AWS::ECS::Service", service.Type)
	assert.Equal(t, []string{"TaskRole"}, service.DependsOn)

	output := template.Outputs["MeshFrontendVNARN"]
	require.NotNil(t, output.Export)
	assert.Equal(t, "MeshFrontendVNARN", output.Export.Name)
	assert.Equal(t, map[string]any{"Ref": "MeshFrontEndNode"}, output.Value)
}

func TestBuilder_Build_StackError(t *testing.T) {
	s := stack.New("test", "")
	s.Add("LogGroup", logs.LogGroup{})
	s.Add("LogGroup", logs.LogGroup{})

	_, err := NewBuilder(s).Build()
	assert.ErrorIs(t, err, stack.ErrDuplicateID)
}

func TestBuilder_Order(t *testing.T) {
	order, err := NewBuilder(buildStack(t)).Order()
	require.NoError(t, err)

	assert.Equal(t, []string{"LogGroup", "TaskRole", "MeshFrontEndNode", "TaskDefinition", "Service"}, order)
	assert.Less(t, indexOf(order, "MeshFrontEndNode"), indexOf(order, "TaskDefinition"))
}

func TestBuilder_DetectCycle(t *testing.T) {
	b := &Builder{
		entries: []stack.Entry{
			{LogicalID: "Router", Resource: appmesh.VirtualRouter{}, References: []string{"Route"}},
			{LogicalID: "Route", Resource: appmesh.Route{}, References: []string{"Router"}},
		},
	}

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
	assert.Contains(t, err.Error(), "Router")
	assert.Contains(t, err.Error(), "Route")
}

func TestBuilder_UnknownReference(t *testing.T) {
	b := &Builder{
		entries: []stack.Entry{
			{LogicalID: "Service", Resource: ecs.Service{}, DependsOn: []string{"Listener"}},
		},
	}

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource Listener")
}

type customResource struct{}

func (customResource) ResourceType() string { return "Custom::Thing" }

func TestBuilder_UnknownResourceType(t *testing.T) {
	b := &Builder{entries: []stack.Entry{{LogicalID: "Thing", Resource: customResource{}}}}

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource type")
}

func TestToJSON(t *testing.T) {
	template, err := NewBuilder(buildStack(t)).Build()
	require.NoError(t, err)

	data, err := ToJSON(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	resources := parsed["Resources"].(map[string]any)
	task := resources["TaskDefinition"].(map[string]any)
	props := task["Properties"].(map[string]any)
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"TaskRole", "Arn"}}, props["TaskRoleArn"])
}

func TestToYAML(t *testing.T) {
	template, err := NewBuilder(buildStack(t)).Build()
	require.NoError(t, err)

	data, err := ToYAML(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	assert.Contains(t, string(data), "Type: AWS::AppMesh::VirtualNode")
	assert.Contains(t, string(data), "Name: MeshFrontendVNARN")
}

func indexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}
