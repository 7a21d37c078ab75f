// Package frontend builds the ecsdemo-frontend stack.
//
// Two strategies provision the same service. The direct strategy puts a
// public Application Load Balancer in front of a Fargate service. The mesh
// strategy runs the service behind an Envoy sidecar and wires it into an
// App Mesh virtual gateway. Both register the service in the base
// platform's Cloud Map namespace.
package frontend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/platform"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/ecs"
	"github.com/ecsworkshop/frontend-infra/resources/servicediscovery"
)

// Synthesize builds the stack for the strategy selected in cfg.
func Synthesize(p *platform.BasePlatform, cfg *config.Config) (*stack.Stack, error) {
	var (
		s   *stack.Stack
		err error
	)

	switch cfg.Strategy {
	case config.StrategyDirect:
		s, err = BuildDirect(p, cfg)
	case config.StrategyMesh:
		s, err = BuildMesh(p, cfg)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("stack synthesized",
		zap.String("stack", s.Name),
		zap.String("strategy", string(cfg.Strategy)),
		zap.Int("resources", s.Len()),
		zap.Int("outputs", len(s.Outputs())),
	)
	return s, nil
}

// region is the value forwarded to containers as REGION. Without a
// configured region it falls back to the region the stack is deployed in.
func region(cfg *config.Config) any {
	if cfg.Region != "" {
		return cfg.Region
	}
	return intrinsics.AWS_REGION
}

func appEnvironment(svc config.ServiceConfig, cfg *config.Config) []ecs.TaskDefinition_KeyValuePair {
	return []ecs.TaskDefinition_KeyValuePair{
		{Name: "CRYSTAL_URL", Value: svc.CrystalURL},
		{Name: "NODEJS_URL", Value: svc.NodeJSURL},
		{Name: "REGION", Value: region(cfg)},
	}
}

func awsLogs(logGroup stack.Handle, streamPrefix string) *ecs.TaskDefinition_LogConfiguration {
	return &ecs.TaskDefinition_LogConfiguration{
		LogDriver: ecs.LogDriverAwsLogs,
		Options: map[string]any{
			"awslogs-group":         logGroup.Ref(),
			"awslogs-stream-prefix": streamPrefix,
			"awslogs-region":        intrinsics.AWS_REGION,
		},
	}
}

// cloudMapService registers name in the platform namespace with one A record
// per task. ECS reports task health to Cloud Map.
func cloudMapService(sc stack.Scope, p *platform.BasePlatform, name string) stack.Handle {
	return sc.Add("cloud-map-service", servicediscovery.Service{
		Name: name,
		DnsConfig: &servicediscovery.Service_DnsConfig{
			DnsRecords: []servicediscovery.Service_DnsRecord{
				{Type: servicediscovery.RecordTypeA, TTL: 60},
			},
			RoutingPolicy: servicediscovery.RoutingPolicyMultivalue,
			NamespaceId:   p.Namespace().ID,
		},
		HealthCheckCustomConfig: &servicediscovery.Service_HealthCheckCustomConfig{
			FailureThreshold: 1,
		},
	})
}

func awsvpc(subnets []any, securityGroups ...any) *ecs.Service_NetworkConfiguration {
	return &ecs.Service_NetworkConfiguration{
		AwsvpcConfiguration: &ecs.Service_AwsVpcConfiguration{
			AssignPublicIp: ecs.AssignPublicIpDisabled,
			SecurityGroups: securityGroups,
			Subnets:        subnets,
		},
	}
}

var rollingDeployment = &ecs.Service_DeploymentConfiguration{
	MaximumPercent:        200,
	MinimumHealthyPercent: 50,
}
