package frontend

import (
	"fmt"
	"strconv"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/platform"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/ec2"
	"github.com/ecsworkshop/frontend-infra/resources/ecs"
	elbv2 "github.com/ecsworkshop/frontend-infra/resources/elasticloadbalancingv2"
	"github.com/ecsworkshop/frontend-infra/resources/logs"
)

const (
	directContainerName = "web"
	listenerPort        = 80
)

// BuildDirect builds the direct strategy: a public load-balanced Fargate
// service registered in Cloud Map. It never creates App Mesh resources.
func BuildDirect(p *platform.BasePlatform, cfg *config.Config) (*stack.Stack, error) {
	svc := cfg.Direct
	s := stack.New(cfg.StackName(), fmt.Sprintf("%s service behind a public load balancer", svc.Name))
	sc := s.Scope("frontend-service")

	vpc := p.VPC()
	if len(vpc.PublicSubnetIDs) == 0 {
		return nil, fmt.Errorf("vpc %s has no public subnets for the load balancer", vpc.ID)
	}

	logGroup := sc.Add("log-group", logs.LogGroup{RetentionInDays: svc.LogRetentionDays})

	execution, task := taskRoles(sc, nil, nil)
	logWritePolicy(sc, execution, logGroup)
	taskPolicy := describeSubnetsPolicy(sc, task)

	taskDef := sc.Add("task-definition", ecs.TaskDefinition{
		Family:                  s.Name + "-" + svc.Name,
		Cpu:                     strconv.Itoa(svc.CPU),
		Memory:                  strconv.Itoa(svc.Memory),
		NetworkMode:             ecs.NetworkModeAwsVpc,
		RequiresCompatibilities: []string{ecs.CompatibilityFargate},
		ExecutionRoleArn:        execution.GetAtt("Arn"),
		TaskRoleArn:             task.GetAtt("Arn"),
		ContainerDefinitions: []ecs.TaskDefinition_ContainerDefinition{{
			Name:      directContainerName,
			Image:     svc.Image,
			Essential: true,
			PortMappings: []ecs.TaskDefinition_PortMapping{
				{ContainerPort: svc.ContainerPort, Protocol: ecs.ProtocolTcp},
			},
			Environment:      appEnvironment(svc, cfg),
			LogConfiguration: awsLogs(logGroup, "FrontendFargateLBService"),
		}},
	})

	lbSecurityGroup := sc.Add("load-balancer-security-group", ec2.SecurityGroup{
		GroupDescription: "Load balancer for " + svc.Name,
		VpcId:            vpc.ID,
		SecurityGroupIngress: []ec2.SecurityGroup_Ingress{{
			IpProtocol:  ec2.IpProtocolTcp,
			FromPort:    listenerPort,
			ToPort:      listenerPort,
			CidrIp:      ec2.AnyIPv4,
			Description: fmt.Sprintf("Allow from anyone on port %d", listenerPort),
		}},
	})

	loadBalancer := sc.Add("load-balancer", elbv2.LoadBalancer{
		Scheme:         elbv2.SchemeInternetFacing,
		Type:           elbv2.TypeApplication,
		Subnets:        p.PublicSubnets(),
		SecurityGroups: intrinsics.Any(lbSecurityGroup.GetAtt("GroupId")),
	})

	targetGroup := sc.Add("target-group", elbv2.TargetGroup{
		Port:       listenerPort,
		Protocol:   elbv2.ProtocolHTTP,
		TargetType: elbv2.TargetTypeIP,
		VpcId:      vpc.ID,
	})

	listener := sc.Add("listener", elbv2.Listener{
		LoadBalancerArn: loadBalancer.Ref(),
		Port:            listenerPort,
		Protocol:        elbv2.ProtocolHTTP,
		DefaultActions: []elbv2.Listener_Action{
			{Type: elbv2.ActionTypeForward, TargetGroupArn: targetGroup.Ref()},
		},
	})

	serviceSecurityGroup := sc.Add("security-group", ec2.SecurityGroup{
		GroupDescription: svc.Name + " tasks",
		VpcId:            vpc.ID,
		SecurityGroupEgress: []ec2.SecurityGroup_Egress{{
			IpProtocol:  "-1",
			CidrIp:      ec2.AnyIPv4,
			Description: "Allow all outbound traffic by default",
		}},
	})

	sc.Add("security-group-from-load-balancer", ec2.SecurityGroupIngress{
		GroupId:               serviceSecurityGroup.GetAtt("GroupId"),
		IpProtocol:            ec2.IpProtocolTcp,
		FromPort:              svc.ContainerPort,
		ToPort:                svc.ContainerPort,
		SourceSecurityGroupId: lbSecurityGroup.GetAtt("GroupId"),
		Description:           "Load balancer to target",
	})
	sc.Add("load-balancer-egress-to-service", ec2.SecurityGroupEgress{
		GroupId:                    lbSecurityGroup.GetAtt("GroupId"),
		IpProtocol:                 ec2.IpProtocolTcp,
		FromPort:                   svc.ContainerPort,
		ToPort:                     svc.ContainerPort,
		DestinationSecurityGroupId: serviceSecurityGroup.GetAtt("GroupId"),
		Description:                "Load balancer to target",
	})

	registry := cloudMapService(sc, p, svc.Name)

	service := sc.Add("service", ecs.Service{
		ServiceName:                   svc.Name,
		Cluster:                       p.Cluster().Name,
		TaskDefinition:                taskDef.Ref(),
		DesiredCount:                  svc.DesiredCount,
		LaunchType:                    ecs.LaunchTypeFargate,
		HealthCheckGracePeriodSeconds: 60,
		NetworkConfiguration:          awsvpc(p.PrivateSubnets(), serviceSecurityGroup.GetAtt("GroupId")),
		LoadBalancers: []ecs.Service_LoadBalancer{{
			ContainerName:  directContainerName,
			ContainerPort:  svc.ContainerPort,
			TargetGroupArn: targetGroup.Ref(),
		}},
		ServiceRegistries:       []ecs.Service_ServiceRegistry{{RegistryArn: registry.GetAtt("Arn")}},
		DeploymentConfiguration: rollingDeployment,
	}, stack.DependsOn(listener, taskPolicy))

	allowToServices(sc, p, serviceSecurityGroup, svc.ContainerPort)

	autoscale(sc, service, p.Cluster().Name, svc.Autoscaling)

	s.Export(sc.ID("load-balancer-dns"), loadBalancer.GetAtt("DNSName"), "", "Public DNS name of the load balancer")
	s.Export(sc.ID("service-url"), intrinsics.Join{
		Delimiter: "",
		Values:    []any{"http://", loadBalancer.GetAtt("DNSName")},
	}, "", "URL of the frontend")

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("building %s: %w", s.Name, err)
	}
	return s, nil
}

// allowToServices opens port on the shared services security group for
// traffic from the frontend's own group, on both sides of the connection.
func allowToServices(sc stack.Scope, p *platform.BasePlatform, from stack.Handle, port int) {
	const description = "frontendtobackend"

	sc.Add("to-services-egress", ec2.SecurityGroupEgress{
		GroupId:                    from.GetAtt("GroupId"),
		IpProtocol:                 ec2.IpProtocolTcp,
		FromPort:                   port,
		ToPort:                     port,
		DestinationSecurityGroupId: p.ServicesSecurityGroup(),
		Description:                description,
	})
	sc.Add("to-services-ingress", ec2.SecurityGroupIngress{
		GroupId:               p.ServicesSecurityGroup(),
		IpProtocol:            ec2.IpProtocolTcp,
		FromPort:              port,
		ToPort:                port,
		SourceSecurityGroupId: from.GetAtt("GroupId"),
		Description:           description,
	})
}
