// Package ecs contains the Amazon ECS resource types used by the frontend stacks.
//
// Example usage:
//
//	import (
//		"github.com/ecsworkshop/frontend-infra/resources/ecs"
//	)
//
//	var App = ecs.TaskDefinition_ContainerDefinition{
//		Name:      "frontend-app",
//		Image:     "public.ecr.aws/aws-containers/ecsdemo-frontend",
//		Essential: true,
//		PortMappings: []ecs.TaskDefinition_PortMapping{
//			{ContainerPort: 3000, Protocol: ecs.ProtocolTcp},
//		},
//	}
package ecs
