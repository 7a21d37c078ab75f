package appmesh

// VirtualNode represents an AWS::AppMesh::VirtualNode resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-appmesh-virtualnode.html
type VirtualNode struct {
	MeshName        any                         `json:"MeshName,omitempty"`
	MeshOwner       any                         `json:"MeshOwner,omitempty"`
	VirtualNodeName any                         `json:"VirtualNodeName,omitempty"`
	Spec            VirtualNode_VirtualNodeSpec `json:"Spec"`
	Tags            []any                       `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r VirtualNode) ResourceType() string {
	return "AWS::AppMesh::VirtualNode"
}

// VirtualNode_VirtualNodeSpec describes a virtual node.
type VirtualNode_VirtualNodeSpec struct {
	Listeners        []VirtualNode_Listener        `json:"Listeners,omitempty"`
	ServiceDiscovery *VirtualNode_ServiceDiscovery `json:"ServiceDiscovery,omitempty"`
	Backends         []VirtualNode_Backend         `json:"Backends,omitempty"`
	Logging          *VirtualNode_Logging          `json:"Logging,omitempty"`
}

// VirtualNode_Listener is an inbound listener of a virtual node.
type VirtualNode_Listener struct {
	PortMapping VirtualNode_PortMapping  `json:"PortMapping"`
	HealthCheck *VirtualNode_HealthCheck `json:"HealthCheck,omitempty"`
}

// VirtualNode_PortMapping is a listener port and protocol.
type VirtualNode_PortMapping struct {
	Port     int    `json:"Port,omitempty"`
	Protocol string `json:"Protocol,omitempty"`
}

// VirtualNode_HealthCheck is an active listener health check. Times are milliseconds.
type VirtualNode_HealthCheck struct {
	HealthyThreshold   int    `json:"HealthyThreshold,omitempty"`
	IntervalMillis     int    `json:"IntervalMillis,omitempty"`
	Path               string `json:"Path,omitempty"`
	Port               int    `json:"Port,omitempty"`
	Protocol           string `json:"Protocol,omitempty"`
	TimeoutMillis      int    `json:"TimeoutMillis,omitempty"`
	UnhealthyThreshold int    `json:"UnhealthyThreshold,omitempty"`
}

// VirtualNode_ServiceDiscovery tells the mesh how to find node endpoints.
type VirtualNode_ServiceDiscovery struct {
	AWSCloudMap *VirtualNode_AwsCloudMapServiceDiscovery `json:"AWSCloudMap,omitempty"`
	DNS         *VirtualNode_DnsServiceDiscovery         `json:"DNS,omitempty"`
}

// VirtualNode_AwsCloudMapServiceDiscovery discovers endpoints through a Cloud Map service.
type VirtualNode_AwsCloudMapServiceDiscovery struct {
	NamespaceName any `json:"NamespaceName,omitempty"`
	ServiceName   any `json:"ServiceName,omitempty"`
}

// VirtualNode_DnsServiceDiscovery discovers endpoints through a DNS hostname.
type VirtualNode_DnsServiceDiscovery struct {
	Hostname any `json:"Hostname,omitempty"`
}

// VirtualNode_Backend is an upstream the node is allowed to call.
type VirtualNode_Backend struct {
	VirtualService *VirtualNode_VirtualServiceBackend `json:"VirtualService,omitempty"`
}

// VirtualNode_VirtualServiceBackend names a backend virtual service.
type VirtualNode_VirtualServiceBackend struct {
	VirtualServiceName any `json:"VirtualServiceName,omitempty"`
}

// VirtualNode_Logging configures envoy access logs.
type VirtualNode_Logging struct {
	AccessLog *VirtualNode_AccessLog `json:"AccessLog,omitempty"`
}

// VirtualNode_AccessLog is the access log destination.
type VirtualNode_AccessLog struct {
	File *VirtualNode_FileAccessLog `json:"File,omitempty"`
}

// VirtualNode_FileAccessLog writes access logs to a path inside the envoy container.
type VirtualNode_FileAccessLog struct {
	Path string `json:"Path,omitempty"`
}
