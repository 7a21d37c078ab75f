// Package elasticloadbalancingv2 contains the Application Load Balancer
// resource types used by the direct frontend stack.
package elasticloadbalancingv2

// Schemes.
const (
	SchemeInternetFacing = "internet-facing"
	SchemeInternal       = "internal"
)

// Load balancer types.
const (
	TypeApplication = "application"
	TypeNetwork     = "network"
)

// Listener and target group protocols.
const (
	ProtocolHTTP  = "HTTP"
	ProtocolHTTPS = "HTTPS"
)

// Target types.
const (
	TargetTypeIP       = "ip"
	TargetTypeInstance = "instance"
)

// ActionTypeForward forwards requests to a target group.
const ActionTypeForward = "forward"

// LoadBalancer represents an AWS::ElasticLoadBalancingV2::LoadBalancer resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-elasticloadbalancingv2-loadbalancer.html
type LoadBalancer struct {
	Name                   any                                  `json:"Name,omitempty"`
	Scheme                 string                               `json:"Scheme,omitempty"`
	Type                   string                               `json:"Type,omitempty"`
	Subnets                []any                                `json:"Subnets,omitempty"`
	SecurityGroups         []any                                `json:"SecurityGroups,omitempty"`
	LoadBalancerAttributes []LoadBalancer_LoadBalancerAttribute `json:"LoadBalancerAttributes,omitempty"`
	Tags                   []any                                `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r LoadBalancer) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

// LoadBalancer_LoadBalancerAttribute is a load balancer attribute.
type LoadBalancer_LoadBalancerAttribute struct {
	Key   string `json:"Key,omitempty"`
	Value string `json:"Value,omitempty"`
}

// TargetGroup represents an AWS::ElasticLoadBalancingV2::TargetGroup resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-elasticloadbalancingv2-targetgroup.html
type TargetGroup struct {
	Name                  any                                `json:"Name,omitempty"`
	Port                  int                                `json:"Port,omitempty"`
	Protocol              string                             `json:"Protocol,omitempty"`
	TargetType            string                             `json:"TargetType,omitempty"`
	VpcId                 any                                `json:"VpcId,omitempty"`
	HealthCheckPath       string                             `json:"HealthCheckPath,omitempty"`
	TargetGroupAttributes []TargetGroup_TargetGroupAttribute `json:"TargetGroupAttributes,omitempty"`
	Tags                  []any                              `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r TargetGroup) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::TargetGroup"
}

// TargetGroup_TargetGroupAttribute is a target group attribute.
type TargetGroup_TargetGroupAttribute struct {
	Key   string `json:"Key,omitempty"`
	Value string `json:"Value,omitempty"`
}

// Listener represents an AWS::ElasticLoadBalancingV2::Listener resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-elasticloadbalancingv2-listener.html
type Listener struct {
	LoadBalancerArn any               `json:"LoadBalancerArn,omitempty"`
	Port            int               `json:"Port,omitempty"`
	Protocol        string            `json:"Protocol,omitempty"`
	DefaultActions  []Listener_Action `json:"DefaultActions,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Listener) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::Listener"
}

// Listener_Action is a listener default action.
type Listener_Action struct {
	Type           string `json:"Type,omitempty"`
	TargetGroupArn any    `json:"TargetGroupArn,omitempty"`
}
