// Package applicationautoscaling contains the Application Auto Scaling
// resource types used to scale ECS services.
package applicationautoscaling

// ECS scaling identifiers.
const (
	ServiceNamespaceECS         = "ecs"
	ScalableDimensionECSDesired = "ecs:service:DesiredCount"
)

// PolicyTypeTargetTracking keeps a metric at a target value.
const PolicyTypeTargetTracking = "TargetTrackingScaling"

// Predefined ECS metrics.
const (
	MetricECSServiceAverageCPUUtilization    = "ECSServiceAverageCPUUtilization"
	MetricECSServiceAverageMemoryUtilization = "ECSServiceAverageMemoryUtilization"
)

// ScalableTarget represents an AWS::ApplicationAutoScaling::ScalableTarget resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-applicationautoscaling-scalabletarget.html
type ScalableTarget struct {
	MinCapacity       int    `json:"MinCapacity"`
	MaxCapacity       int    `json:"MaxCapacity"`
	ResourceId        any    `json:"ResourceId,omitempty"`
	RoleARN           any    `json:"RoleARN,omitempty"`
	ScalableDimension string `json:"ScalableDimension,omitempty"`
	ServiceNamespace  string `json:"ServiceNamespace,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r ScalableTarget) ResourceType() string {
	return "AWS::ApplicationAutoScaling::ScalableTarget"
}

// ScalingPolicy represents an AWS::ApplicationAutoScaling::ScalingPolicy resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-applicationautoscaling-scalingpolicy.html
type ScalingPolicy struct {
	PolicyName                               any                                                     `json:"PolicyName,omitempty"`
	PolicyType                               string                                                  `json:"PolicyType,omitempty"`
	ScalingTargetId                          any                                                     `json:"ScalingTargetId,omitempty"`
	TargetTrackingScalingPolicyConfiguration *ScalingPolicy_TargetTrackingScalingPolicyConfiguration `json:"TargetTrackingScalingPolicyConfiguration,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r ScalingPolicy) ResourceType() string {
	return "AWS::ApplicationAutoScaling::ScalingPolicy"
}

// ScalingPolicy_TargetTrackingScalingPolicyConfiguration tracks TargetValue
// for a predefined metric. Cooldowns are seconds.
type ScalingPolicy_TargetTrackingScalingPolicyConfiguration struct {
	TargetValue                   float64                                      `json:"TargetValue"`
	PredefinedMetricSpecification *ScalingPolicy_PredefinedMetricSpecification `json:"PredefinedMetricSpecification,omitempty"`
	ScaleInCooldown               int                                          `json:"ScaleInCooldown,omitempty"`
	ScaleOutCooldown              int                                          `json:"ScaleOutCooldown,omitempty"`
	DisableScaleIn                bool                                         `json:"DisableScaleIn,omitempty"`
}

// ScalingPolicy_PredefinedMetricSpecification names a predefined metric.
type ScalingPolicy_PredefinedMetricSpecification struct {
	PredefinedMetricType string `json:"PredefinedMetricType,omitempty"`
}
