package appmesh

// VirtualService represents an AWS::AppMesh::VirtualService resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-appmesh-virtualservice.html
type VirtualService struct {
	MeshName           any                               `json:"MeshName,omitempty"`
	MeshOwner          any                               `json:"MeshOwner,omitempty"`
	VirtualServiceName any                               `json:"VirtualServiceName,omitempty"`
	Spec               VirtualService_VirtualServiceSpec `json:"Spec"`
	Tags               []any                             `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r VirtualService) ResourceType() string {
	return "AWS::AppMesh::VirtualService"
}

// VirtualService_VirtualServiceSpec describes a virtual service.
type VirtualService_VirtualServiceSpec struct {
	Provider *VirtualService_VirtualServiceProvider `json:"Provider,omitempty"`
}

// VirtualService_VirtualServiceProvider is either a router or a node.
type VirtualService_VirtualServiceProvider struct {
	VirtualRouter *VirtualService_VirtualRouterServiceProvider `json:"VirtualRouter,omitempty"`
	VirtualNode   *VirtualService_VirtualNodeServiceProvider   `json:"VirtualNode,omitempty"`
}

// VirtualService_VirtualRouterServiceProvider provides a service through a router.
type VirtualService_VirtualRouterServiceProvider struct {
	VirtualRouterName any `json:"VirtualRouterName,omitempty"`
}

// VirtualService_VirtualNodeServiceProvider provides a service through a single node.
type VirtualService_VirtualNodeServiceProvider struct {
	VirtualNodeName any `json:"VirtualNodeName,omitempty"`
}
