package ecs

// Launch types.
const (
	LaunchTypeEC2     = "EC2"
	LaunchTypeFargate = "FARGATE"
)

// AssignPublicIp values.
const (
	AssignPublicIpEnabled  = "ENABLED"
	AssignPublicIpDisabled = "DISABLED"
)

// Service represents an AWS::ECS::Service resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ecs-service.html
type Service struct {
	ServiceName                   any                              `json:"ServiceName,omitempty"`
	Cluster                       any                              `json:"Cluster,omitempty"`
	TaskDefinition                any                              `json:"TaskDefinition,omitempty"`
	DesiredCount                  int                              `json:"DesiredCount,omitempty"`
	LaunchType                    string                           `json:"LaunchType,omitempty"`
	EnableECSManagedTags          bool                             `json:"EnableECSManagedTags,omitempty"`
	HealthCheckGracePeriodSeconds int                              `json:"HealthCheckGracePeriodSeconds,omitempty"`
	NetworkConfiguration          *Service_NetworkConfiguration    `json:"NetworkConfiguration,omitempty"`
	LoadBalancers                 []Service_LoadBalancer           `json:"LoadBalancers,omitempty"`
	ServiceRegistries             []Service_ServiceRegistry        `json:"ServiceRegistries,omitempty"`
	DeploymentConfiguration       *Service_DeploymentConfiguration `json:"DeploymentConfiguration,omitempty"`
	Tags                          []any                            `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Service) ResourceType() string {
	return "AWS::ECS::Service"
}

// Service_NetworkConfiguration is the network configuration of an awsvpc service.
type Service_NetworkConfiguration struct {
	AwsvpcConfiguration *Service_AwsVpcConfiguration `json:"AwsvpcConfiguration,omitempty"`
}

// Service_AwsVpcConfiguration places service tasks in subnets and security groups.
type Service_AwsVpcConfiguration struct {
	AssignPublicIp string `json:"AssignPublicIp,omitempty"`
	SecurityGroups []any  `json:"SecurityGroups,omitempty"`
	Subnets        []any  `json:"Subnets,omitempty"`
}

// Service_LoadBalancer registers a container port with a target group.
type Service_LoadBalancer struct {
	ContainerName  string `json:"ContainerName,omitempty"`
	ContainerPort  int    `json:"ContainerPort,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}

// Service_ServiceRegistry registers service tasks in Cloud Map.
type Service_ServiceRegistry struct {
	RegistryArn   any    `json:"RegistryArn,omitempty"`
	ContainerName string `json:"ContainerName,omitempty"`
	ContainerPort int    `json:"ContainerPort,omitempty"`
}

// Service_DeploymentConfiguration bounds task counts during a deployment.
type Service_DeploymentConfiguration struct {
	MaximumPercent        int `json:"MaximumPercent,omitempty"`
	MinimumHealthyPercent int `json:"MinimumHealthyPercent,omitempty"`
}
