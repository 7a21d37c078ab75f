package appmesh

// Route represents an AWS::AppMesh::Route resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-appmesh-route.html
type Route struct {
	MeshName          any             `json:"MeshName,omitempty"`
	MeshOwner         any             `json:"MeshOwner,omitempty"`
	VirtualRouterName any             `json:"VirtualRouterName,omitempty"`
	RouteName         any             `json:"RouteName,omitempty"`
	Spec              Route_RouteSpec `json:"Spec"`
	Tags              []any           `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r Route) ResourceType() string {
	return "AWS::AppMesh::Route"
}

// Route_RouteSpec describes a route. Only HTTP routes are modelled.
type Route_RouteSpec struct {
	Priority  int              `json:"Priority,omitempty"`
	HttpRoute *Route_HttpRoute `json:"HttpRoute,omitempty"`
}

// Route_HttpRoute matches HTTP requests and splits them across targets.
type Route_HttpRoute struct {
	Match  Route_HttpRouteMatch  `json:"Match"`
	Action Route_HttpRouteAction `json:"Action"`
}

// Route_HttpRouteMatch selects requests by path prefix.
type Route_HttpRouteMatch struct {
	Prefix string `json:"Prefix,omitempty"`
}

// Route_HttpRouteAction lists the weighted targets of a route.
type Route_HttpRouteAction struct {
	WeightedTargets []Route_WeightedTarget `json:"WeightedTargets,omitempty"`
}

// Route_WeightedTarget sends Weight shares of traffic to VirtualNode.
type Route_WeightedTarget struct {
	VirtualNode any `json:"VirtualNode,omitempty"`
	Weight      int `json:"Weight,omitempty"`
}
