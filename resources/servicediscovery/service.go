// Package servicediscovery contains the AWS Cloud Map resource types.
package servicediscovery

// DNS record types.
const (
	RecordTypeA    = "A"
	RecordTypeAAAA = "AAAA"
	RecordTypeSRV  = "SRV"
)

// Routing policies.
const (
	RoutingPolicyMultivalue = "MULTIVALUE"
	RoutingPolicyWeighted   = "WEIGHTED"
)

// Service represents an AWS::ServiceDiscovery::Service resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-servicediscovery-service.html
type Service struct {
	Name                    any                              `json:"Name,omitempty"`
	Description             any                              `json:"Description,omitempty"`
	NamespaceId             any                              `json:"NamespaceId,omitempty"`
	DnsConfig               *Service_DnsConfig               `json:"DnsConfig,omitempty"`
	HealthCheckCustomConfig *Service_HealthCheckCustomConfig `json:"HealthCheckCustomConfig,omitempty"`
	Tags                    []any                            `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Service) ResourceType() string {
	return "AWS::ServiceDiscovery::Service"
}

// Service_DnsConfig is the DNS configuration of a Cloud Map service.
type Service_DnsConfig struct {
	DnsRecords    []Service_DnsRecord `json:"DnsRecords,omitempty"`
	RoutingPolicy string              `json:"RoutingPolicy,omitempty"`
	NamespaceId   any                 `json:"NamespaceId,omitempty"`
}

// Service_DnsRecord is a record Cloud Map creates for each instance.
type Service_DnsRecord struct {
	Type string `json:"Type,omitempty"`
	TTL  int    `json:"TTL,omitempty"`
}

// Service_HealthCheckCustomConfig lets ECS report instance health.
type Service_HealthCheckCustomConfig struct {
	FailureThreshold int `json:"FailureThreshold,omitempty"`
}
