package frontend

import (
	"fmt"
	"strconv"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/platform"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/appmesh"
	"github.com/ecsworkshop/frontend-infra/resources/ec2"
	"github.com/ecsworkshop/frontend-infra/resources/ecs"
	"github.com/ecsworkshop/frontend-infra/resources/logs"
)

// Container names of the mesh task.
const (
	AppContainerName   = "frontend-app"
	EnvoyContainerName = "envoy"
	XRayContainerName  = "xray"
)

// Envoy sidecar contract.
const (
	envoyUID          = "1337"
	envoyIngressPort  = 15000
	envoyEgressPort   = 15001
	envoyAdminPort    = 9901
	envoyFileLimit    = 15000
	envoyMemory       = 128
	appMemory         = 128
	xrayMemory        = 256
	egressIgnoredIPs  = "169.254.170.2,169.254.169.254"
	accessLogPath     = "/dev/stdout"
	routeMatchPrefix  = "/"
	envoyHealthPeriod = 5
	envoyHealthWait   = 10
	envoyHealthTries  = 10
)

var envoyHealthCommand = []string{
	"CMD-SHELL",
	fmt.Sprintf("curl -s http://localhost:%d/server_info | grep state | grep -q LIVE", envoyAdminPort),
}

// mesh holds the App Mesh objects imported from the mesh stack.
type mesh struct {
	name            any
	gatewayName     any
	backendServices []any
}

func importMesh(settings config.MeshSettings) mesh {
	return mesh{
		name:        intrinsics.ImportedMeshName(intrinsics.Import(settings.MeshArnExport)),
		gatewayName: intrinsics.Import(settings.GatewayExport),
		backendServices: []any{
			intrinsics.Import(settings.CrystalServiceExport),
			intrinsics.Import(settings.NodeJSServiceExport),
		},
	}
}

// WeightedTarget is one virtual node behind a route and its share of traffic.
type WeightedTarget struct {
	Node   stack.Handle
	Weight int
}

// BuildMesh builds the mesh strategy: a Fargate service with an Envoy
// sidecar, its virtual node, a router and virtual service in front of it and
// a route from the shared virtual gateway.
//
// The virtual node is added before the task definition so the sidecar can
// name it in APPMESH_RESOURCE_ARN.
func BuildMesh(p *platform.BasePlatform, cfg *config.Config) (*stack.Stack, error) {
	svc := cfg.Mesh
	settings := cfg.MeshSettings
	s := stack.New(cfg.StackName(), fmt.Sprintf("%s service in App Mesh", svc.Name))

	m := importMesh(settings)

	logGroup := s.Add("FrontendLogGroup", logs.LogGroup{RetentionInDays: svc.LogRetentionDays})

	fargate := s.Scope("FrontEndFargateService")
	registry := cloudMapService(fargate, p, svc.Name)

	backends := make([]appmesh.VirtualNode_Backend, 0, len(m.backendServices))
	for _, name := range m.backendServices {
		backends = append(backends, appmesh.VirtualNode_Backend{
			VirtualService: &appmesh.VirtualNode_VirtualServiceBackend{VirtualServiceName: name},
		})
	}

	node := s.Add("MeshFrontEndNode", appmesh.VirtualNode{
		MeshName:        m.name,
		VirtualNodeName: settings.VirtualNodeName,
		Spec: appmesh.VirtualNode_VirtualNodeSpec{
			Listeners: []appmesh.VirtualNode_Listener{{
				PortMapping: appmesh.VirtualNode_PortMapping{Port: svc.ContainerPort, Protocol: appmesh.ProtocolHttp},
			}},
			ServiceDiscovery: &appmesh.VirtualNode_ServiceDiscovery{
				AWSCloudMap: &appmesh.VirtualNode_AwsCloudMapServiceDiscovery{
					NamespaceName: p.Namespace().Name,
					ServiceName:   registry.GetAtt("Name"),
				},
			},
			Backends: backends,
			Logging: &appmesh.VirtualNode_Logging{
				AccessLog: &appmesh.VirtualNode_AccessLog{
					File: &appmesh.VirtualNode_FileAccessLog{Path: accessLogPath},
				},
			},
		},
	})

	taskScope := s.Scope("FrontEndTaskDef")
	taskManaged := []string{"CloudWatchFullAccess", "AWSAppMeshEnvoyAccess"}
	if settings.XRayEnabled {
		taskManaged = append(taskManaged, "AWSXRayDaemonWriteAccess")
	}
	execution, task := taskRoles(taskScope,
		[]string{"AmazonEC2ContainerRegistryReadOnly", "CloudWatchLogsFullAccess"},
		taskManaged,
	)
	logWritePolicy(taskScope, execution, logGroup)

	taskDef := s.Add("FrontEndTaskDef", ecs.TaskDefinition{
		Family:                  s.Name + "-" + svc.Name,
		Cpu:                     strconv.Itoa(svc.CPU),
		Memory:                  strconv.Itoa(svc.Memory),
		NetworkMode:             ecs.NetworkModeAwsVpc,
		RequiresCompatibilities: []string{ecs.CompatibilityEC2, ecs.CompatibilityFargate},
		ExecutionRoleArn:        execution.GetAtt("Arn"),
		TaskRoleArn:             task.GetAtt("Arn"),
		ContainerDefinitions:    meshContainers(svc, settings, cfg, logGroup, node),
		ProxyConfiguration: &ecs.TaskDefinition_ProxyConfiguration{
			Type:          ecs.ProxyTypeAppMesh,
			ContainerName: EnvoyContainerName,
			ProxyConfigurationProperties: []ecs.TaskDefinition_KeyValuePair{
				{Name: "AppPorts", Value: strconv.Itoa(svc.ContainerPort)},
				{Name: "ProxyIngressPort", Value: strconv.Itoa(envoyIngressPort)},
				{Name: "ProxyEgressPort", Value: strconv.Itoa(envoyEgressPort)},
				{Name: "EgressIgnoredIPs", Value: egressIgnoredIPs},
				{Name: "IgnoredUID", Value: envoyUID},
			},
		},
	})

	taskPolicy := describeSubnetsPolicy(taskScope, task)

	service := fargate.Add("service", ecs.Service{
		ServiceName:             svc.Name,
		Cluster:                 p.Cluster().Name,
		TaskDefinition:          taskDef.Ref(),
		DesiredCount:            svc.DesiredCount,
		LaunchType:              ecs.LaunchTypeFargate,
		NetworkConfiguration:    awsvpc(p.PrivateSubnets(), p.ServicesSecurityGroup()),
		ServiceRegistries:       []ecs.Service_ServiceRegistry{{RegistryArn: registry.GetAtt("Arn")}},
		DeploymentConfiguration: rollingDeployment,
	}, stack.DependsOn(taskPolicy))

	// The mesh gateway is meant to be the only way in, but this rule admits
	// any IPv4 origin on the service port.
	fargate.Add("any-ipv4-ingress", ec2.SecurityGroupIngress{
		GroupId:     p.ServicesSecurityGroup(),
		IpProtocol:  ec2.IpProtocolTcp,
		FromPort:    svc.ContainerPort,
		ToPort:      svc.ContainerPort,
		CidrIp:      ec2.AnyIPv4,
		Description: fmt.Sprintf("Allow TCP connections on port %d", svc.ContainerPort),
	})

	router := s.Add("MeshVirtualRouter", appmesh.VirtualRouter{
		MeshName:          m.name,
		VirtualRouterName: settings.RouterName,
		Spec: appmesh.VirtualRouter_VirtualRouterSpec{
			Listeners: []appmesh.VirtualRouter_VirtualRouterListener{{
				PortMapping: appmesh.VirtualRouter_PortMapping{Port: svc.ContainerPort, Protocol: appmesh.ProtocolHttp},
			}},
		},
	})

	weightedRoute(s.Scope("MeshVirtualRouter"), m, router, settings.RouteName, []WeightedTarget{
		{Node: node, Weight: settings.RouteWeight},
	})

	virtualService := s.Add("MeshFrontendVirtualService", appmesh.VirtualService{
		MeshName: m.name,
		VirtualServiceName: intrinsics.Join{
			Delimiter: ".",
			Values:    []any{registry.GetAtt("Name"), p.Namespace().Name},
		},
		Spec: appmesh.VirtualService_VirtualServiceSpec{
			Provider: &appmesh.VirtualService_VirtualServiceProvider{
				VirtualRouter: &appmesh.VirtualService_VirtualRouterServiceProvider{
					VirtualRouterName: router.GetAtt("VirtualRouterName"),
				},
			},
		},
	})

	gatewayRoute := s.Add("MeshGatewayRoute", appmesh.GatewayRoute{
		MeshName:           m.name,
		VirtualGatewayName: m.gatewayName,
		GatewayRouteName:   settings.GatewayRouteName,
		Spec: appmesh.GatewayRoute_GatewayRouteSpec{
			HttpRoute: &appmesh.GatewayRoute_HttpGatewayRoute{
				Match: appmesh.GatewayRoute_HttpGatewayRouteMatch{Prefix: routeMatchPrefix},
				Action: appmesh.GatewayRoute_HttpGatewayRouteAction{
					Target: appmesh.GatewayRoute_GatewayRouteTarget{
						VirtualService: appmesh.GatewayRoute_GatewayRouteVirtualService{
							VirtualServiceName: virtualService.GetAtt("VirtualServiceName"),
						},
					},
				},
			},
		},
	})

	autoscale(fargate, service, p.Cluster().Name, svc.Autoscaling)

	s.Export("MeshFrontendVNARN", node.Ref(), "MeshFrontendVNARN", "ARN of the frontend virtual node")
	s.Export("MeshFrontendVNName", node.GetAtt("VirtualNodeName"), "MeshFrontendVNName", "Name of the frontend virtual node")
	s.Export("MeshFrontendVGRARN", gatewayRoute.Ref(), "MeshFrontendVGRARN", "ARN of the frontend gateway route")

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("building %s: %w", s.Name, err)
	}
	return s, nil
}

// meshContainers returns the application container, the Envoy sidecar and,
// with X-Ray enabled, the X-Ray daemon. The application waits for Envoy to
// report healthy; Envoy waits for the daemon to start.
func meshContainers(svc config.ServiceConfig, settings config.MeshSettings, cfg *config.Config, logGroup, node stack.Handle) []ecs.TaskDefinition_ContainerDefinition {
	app := ecs.TaskDefinition_ContainerDefinition{
		Name:              AppContainerName,
		Image:             svc.Image,
		Essential:         true,
		MemoryReservation: appMemory,
		PortMappings: []ecs.TaskDefinition_PortMapping{
			{ContainerPort: svc.ContainerPort, Protocol: ecs.ProtocolTcp},
		},
		Environment:      appEnvironment(svc, cfg),
		LogConfiguration: awsLogs(logGroup, "/frontend-container"),
		DependsOn: []ecs.TaskDefinition_ContainerDependency{
			{ContainerName: EnvoyContainerName, Condition: ecs.ConditionHealthy},
		},
	}

	envoyEnv := []ecs.TaskDefinition_KeyValuePair{
		{Name: "REGION", Value: region(cfg)},
		{Name: "ENVOY_LOG_LEVEL", Value: "critical"},
		{Name: "ENABLE_ENVOY_STATS_TAGS", Value: "1"},
		{Name: "APPMESH_RESOURCE_ARN", Value: node.Ref()},
	}
	if settings.XRayEnabled {
		envoyEnv = append(envoyEnv, ecs.TaskDefinition_KeyValuePair{Name: "ENABLE_ENVOY_XRAY_TRACING", Value: "1"})
	}

	envoy := ecs.TaskDefinition_ContainerDefinition{
		Name:              EnvoyContainerName,
		Image:             settings.EnvoyImage,
		Essential:         true,
		MemoryReservation: envoyMemory,
		User:              envoyUID,
		Environment:       envoyEnv,
		LogConfiguration:  awsLogs(logGroup, "/mesh-envoy-container"),
		HealthCheck: &ecs.TaskDefinition_HealthCheck{
			Command:  envoyHealthCommand,
			Interval: envoyHealthPeriod,
			Timeout:  envoyHealthWait,
			Retries:  envoyHealthTries,
		},
		Ulimits: []ecs.TaskDefinition_Ulimit{
			{Name: ecs.UlimitNoFile, SoftLimit: envoyFileLimit, HardLimit: envoyFileLimit},
		},
	}

	if !settings.XRayEnabled {
		return []ecs.TaskDefinition_ContainerDefinition{app, envoy}
	}

	envoy.DependsOn = []ecs.TaskDefinition_ContainerDependency{
		{ContainerName: XRayContainerName, Condition: ecs.ConditionStart},
	}
	xray := ecs.TaskDefinition_ContainerDefinition{
		Name:              XRayContainerName,
		Image:             settings.XRayImage,
		Essential:         true,
		MemoryReservation: xrayMemory,
		User:              envoyUID,
		LogConfiguration:  awsLogs(logGroup, "/xray-container"),
	}
	return []ecs.TaskDefinition_ContainerDefinition{app, envoy, xray}
}

// weightedRoute adds an HTTP route on router that splits traffic across targets.
func weightedRoute(sc stack.Scope, m mesh, router stack.Handle, name string, targets []WeightedTarget) stack.Handle {
	weighted := make([]appmesh.Route_WeightedTarget, 0, len(targets))
	for _, t := range targets {
		weighted = append(weighted, appmesh.Route_WeightedTarget{
			VirtualNode: t.Node.GetAtt("VirtualNodeName"),
			Weight:      t.Weight,
		})
	}

	return sc.Add("frontend-route", appmesh.Route{
		MeshName:          m.name,
		VirtualRouterName: router.GetAtt("VirtualRouterName"),
		RouteName:         name,
		Spec: appmesh.Route_RouteSpec{
			HttpRoute: &appmesh.Route_HttpRoute{
				Match:  appmesh.Route_HttpRouteMatch{Prefix: routeMatchPrefix},
				Action: appmesh.Route_HttpRouteAction{WeightedTargets: weighted},
			},
		},
	})
}
