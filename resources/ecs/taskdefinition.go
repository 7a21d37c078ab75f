package ecs

// Network modes.
const (
	NetworkModeAwsVpc = "awsvpc"
	NetworkModeBridge = "bridge"
)

// Launch compatibilities.
const (
	CompatibilityEC2     = "EC2"
	CompatibilityFargate = "FARGATE"
)

// Port mapping protocols.
const (
	ProtocolTcp = "tcp"
	ProtocolUdp = "udp"
)

// LogDriverAwsLogs routes container output to CloudWatch Logs.
const LogDriverAwsLogs = "awslogs"

// Container dependency conditions.
const (
	ConditionStart    = "START"
	ConditionComplete = "COMPLETE"
	ConditionSuccess  = "SUCCESS"
	ConditionHealthy  = "HEALTHY"
)

// ProxyTypeAppMesh is the only supported proxy configuration type.
const ProxyTypeAppMesh = "APPMESH"

// UlimitNoFile is the open file descriptor limit.
const UlimitNoFile = "nofile"

// TaskDefinition represents an AWS::ECS::TaskDefinition resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ecs-taskdefinition.html
type TaskDefinition struct {
	Family                  any                                  `json:"Family,omitempty"`
	Cpu                     any                                  `json:"Cpu,omitempty"`
	Memory                  any                                  `json:"Memory,omitempty"`
	NetworkMode             string                               `json:"NetworkMode,omitempty"`
	RequiresCompatibilities []string                             `json:"RequiresCompatibilities,omitempty"`
	ExecutionRoleArn        any                                  `json:"ExecutionRoleArn,omitempty"`
	TaskRoleArn             any                                  `json:"TaskRoleArn,omitempty"`
	ContainerDefinitions    []TaskDefinition_ContainerDefinition `json:"ContainerDefinitions,omitempty"`
	ProxyConfiguration      *TaskDefinition_ProxyConfiguration   `json:"ProxyConfiguration,omitempty"`
	Tags                    []any                                `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r TaskDefinition) ResourceType() string {
	return "AWS::ECS::TaskDefinition"
}

// TaskDefinition_ContainerDefinition is one container of a task.
type TaskDefinition_ContainerDefinition struct {
	Name              string                               `json:"Name,omitempty"`
	Image             any                                  `json:"Image,omitempty"`
	Essential         bool                                 `json:"Essential,omitempty"`
	Cpu               int                                  `json:"Cpu,omitempty"`
	Memory            int                                  `json:"Memory,omitempty"`
	MemoryReservation int                                  `json:"MemoryReservation,omitempty"`
	User              string                               `json:"User,omitempty"`
	PortMappings      []TaskDefinition_PortMapping         `json:"PortMappings,omitempty"`
	Environment       []TaskDefinition_KeyValuePair        `json:"Environment,omitempty"`
	LogConfiguration  *TaskDefinition_LogConfiguration     `json:"LogConfiguration,omitempty"`
	HealthCheck       *TaskDefinition_HealthCheck          `json:"HealthCheck,omitempty"`
	Ulimits           []TaskDefinition_Ulimit              `json:"Ulimits,omitempty"`
	DependsOn         []TaskDefinition_ContainerDependency `json:"DependsOn,omitempty"`
}

// TaskDefinition_PortMapping maps a container port.
type TaskDefinition_PortMapping struct {
	ContainerPort int    `json:"ContainerPort,omitempty"`
	HostPort      int    `json:"HostPort,omitempty"`
	Protocol      string `json:"Protocol,omitempty"`
}

// TaskDefinition_KeyValuePair is a name/value pair used for environment
// variables and proxy configuration properties.
type TaskDefinition_KeyValuePair struct {
	Name  string `json:"Name,omitempty"`
	Value any    `json:"Value,omitempty"`
}

// TaskDefinition_LogConfiguration configures the container log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string         `json:"LogDriver,omitempty"`
	Options   map[string]any `json:"Options,omitempty"`
}

// TaskDefinition_HealthCheck is a container health check. Durations are seconds.
type TaskDefinition_HealthCheck struct {
	Command     []string `json:"Command,omitempty"`
	Interval    int      `json:"Interval,omitempty"`
	Timeout     int      `json:"Timeout,omitempty"`
	Retries     int      `json:"Retries,omitempty"`
	StartPeriod int      `json:"StartPeriod,omitempty"`
}

// TaskDefinition_Ulimit overrides a container resource limit.
type TaskDefinition_Ulimit struct {
	Name      string `json:"Name,omitempty"`
	SoftLimit int    `json:"SoftLimit,omitempty"`
	HardLimit int    `json:"HardLimit,omitempty"`
}

// TaskDefinition_ContainerDependency delays a container's start until
// another container reaches Condition.
type TaskDefinition_ContainerDependency struct {
	ContainerName string `json:"ContainerName,omitempty"`
	Condition     string `json:"Condition,omitempty"`
}

// TaskDefinition_ProxyConfiguration routes task traffic through a proxy container.
type TaskDefinition_ProxyConfiguration struct {
	Type                         string                        `json:"Type,omitempty"`
	ContainerName                string                        `json:"ContainerName,omitempty"`
	ProxyConfigurationProperties []TaskDefinition_KeyValuePair `json:"ProxyConfigurationProperties,omitempty"`
}
