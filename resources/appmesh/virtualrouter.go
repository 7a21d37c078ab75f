package appmesh

// VirtualRouter represents an AWS::AppMesh::VirtualRouter resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-appmesh-virtualrouter.html
type VirtualRouter struct {
	MeshName          any                             `json:"MeshName,omitempty"`
	MeshOwner         any                             `json:"MeshOwner,omitempty"`
	VirtualRouterName any                             `json:"VirtualRouterName,omitempty"`
	Spec              VirtualRouter_VirtualRouterSpec `json:"Spec"`
	Tags              []any                           `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r VirtualRouter) ResourceType() string {
	return "AWS::AppMesh::VirtualRouter"
}

// VirtualRouter_VirtualRouterSpec describes a virtual router.
type VirtualRouter_VirtualRouterSpec struct {
	Listeners []VirtualRouter_VirtualRouterListener `json:"Listeners,omitempty"`
}

// VirtualRouter_VirtualRouterListener is a router listener.
type VirtualRouter_VirtualRouterListener struct {
	PortMapping VirtualRouter_PortMapping `json:"PortMapping"`
}

// VirtualRouter_PortMapping is a listener port and protocol.
type VirtualRouter_PortMapping struct {
	Port     int    `json:"Port,omitempty"`
	Protocol string `json:"Protocol,omitempty"`
}
