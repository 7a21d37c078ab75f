package appmesh

// GatewayRoute represents an AWS::AppMesh::GatewayRoute resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-appmesh-gatewayroute.html
type GatewayRoute struct {
	MeshName           any                           `json:"MeshName,omitempty"`
	MeshOwner          any                           `json:"MeshOwner,omitempty"`
	VirtualGatewayName any                           `json:"VirtualGatewayName,omitempty"`
	GatewayRouteName   any                           `json:"GatewayRouteName,omitempty"`
	Spec               GatewayRoute_GatewayRouteSpec `json:"Spec"`
	Tags               []any                         `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r GatewayRoute) ResourceType() string {
	return "AWS::AppMesh::GatewayRoute"
}

// GatewayRoute_GatewayRouteSpec describes a gateway route.
type GatewayRoute_GatewayRouteSpec struct {
	HttpRoute *GatewayRoute_HttpGatewayRoute `json:"HttpRoute,omitempty"`
}

// GatewayRoute_HttpGatewayRoute forwards matching HTTP requests to a virtual service.
type GatewayRoute_HttpGatewayRoute struct {
	Match  GatewayRoute_HttpGatewayRouteMatch  `json:"Match"`
	Action GatewayRoute_HttpGatewayRouteAction `json:"Action"`
}

// GatewayRoute_HttpGatewayRouteMatch selects requests by path prefix.
type GatewayRoute_HttpGatewayRouteMatch struct {
	Prefix string `json:"Prefix,omitempty"`
}

// GatewayRoute_HttpGatewayRouteAction is the route target.
type GatewayRoute_HttpGatewayRouteAction struct {
	Target GatewayRoute_GatewayRouteTarget `json:"Target"`
}

// GatewayRoute_GatewayRouteTarget wraps the target virtual service.
type GatewayRoute_GatewayRouteTarget struct {
	VirtualService GatewayRoute_GatewayRouteVirtualService `json:"VirtualService"`
}

// GatewayRoute_GatewayRouteVirtualService names the target virtual service.
type GatewayRoute_GatewayRouteVirtualService struct {
	VirtualServiceName any `json:"VirtualServiceName,omitempty"`
}
