// Package ec2 contains the Amazon EC2 security group resource types.
package ec2

// IpProtocolTcp is the TCP protocol name accepted by security group rules.
const IpProtocolTcp = "tcp"

// AnyIPv4 is the CIDR matching every IPv4 address.
const AnyIPv4 = "0.0.0.0/0"

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-securitygroup.html
type SecurityGroup struct {
	GroupDescription     any                     `json:"GroupDescription,omitempty"`
	GroupName            any                     `json:"GroupName,omitempty"`
	VpcId                any                     `json:"VpcId,omitempty"`
	SecurityGroupIngress []SecurityGroup_Ingress `json:"SecurityGroupIngress,omitempty"`
	SecurityGroupEgress  []SecurityGroup_Egress  `json:"SecurityGroupEgress,omitempty"`
	Tags                 []any                   `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SecurityGroup) ResourceType() string {
	return "AWS::EC2::SecurityGroup"
}

// SecurityGroup_Ingress is an inline inbound rule.
type SecurityGroup_Ingress struct {
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                any    `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	Description           any    `json:"Description,omitempty"`
}

// SecurityGroup_Egress is an inline outbound rule.
type SecurityGroup_Egress struct {
	IpProtocol                 string `json:"IpProtocol,omitempty"`
	FromPort                   int    `json:"FromPort,omitempty"`
	ToPort                     int    `json:"ToPort,omitempty"`
	CidrIp                     any    `json:"CidrIp,omitempty"`
	DestinationSecurityGroupId any    `json:"DestinationSecurityGroupId,omitempty"`
	Description                any    `json:"Description,omitempty"`
}

// SecurityGroupIngress represents an AWS::EC2::SecurityGroupIngress resource,
// an inbound rule attached to a group owned elsewhere.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-securitygroupingress.html
type SecurityGroupIngress struct {
	GroupId               any    `json:"GroupId,omitempty"`
	IpProtocol            string `json:"IpProtocol,omitempty"`
	FromPort              int    `json:"FromPort,omitempty"`
	ToPort                int    `json:"ToPort,omitempty"`
	CidrIp                any    `json:"CidrIp,omitempty"`
	SourceSecurityGroupId any    `json:"SourceSecurityGroupId,omitempty"`
	Description           any    `json:"Description,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SecurityGroupIngress) ResourceType() string {
	return "AWS::EC2::SecurityGroupIngress"
}

// SecurityGroupEgress represents an AWS::EC2::SecurityGroupEgress resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-ec2-securitygroupegress.html
type SecurityGroupEgress struct {
	GroupId                    any    `json:"GroupId,omitempty"`
	IpProtocol                 string `json:"IpProtocol,omitempty"`
	FromPort                   int    `json:"FromPort,omitempty"`
	ToPort                     int    `json:"ToPort,omitempty"`
	CidrIp                     any    `json:"CidrIp,omitempty"`
	DestinationSecurityGroupId any    `json:"DestinationSecurityGroupId,omitempty"`
	Description                any    `json:"Description,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r SecurityGroupEgress) ResourceType() string {
	return "AWS::EC2::SecurityGroupEgress"
}
