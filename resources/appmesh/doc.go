// Package appmesh contains the AWS App Mesh resource types used by the
// mesh-enabled frontend stack.
//
// Example usage:
//
//	import (
//		"github.com/ecsworkshop/frontend-infra/resources/appmesh"
//	)
//
//	var Router = appmesh.VirtualRouter{
//		MeshName:          meshName,
//		VirtualRouterName: "FrontEnd",
//		Spec: appmesh.VirtualRouter_VirtualRouterSpec{
//			Listeners: []appmesh.VirtualRouter_VirtualRouterListener{
//				{PortMapping: appmesh.VirtualRouter_PortMapping{Port: 3000, Protocol: appmesh.ProtocolHttp}},
//			},
//		},
//	}
package appmesh

// Listener protocols.
const (
	ProtocolHttp  = "http"
	ProtocolHttp2 = "http2"
	ProtocolGrpc  = "grpc"
	ProtocolTcp   = "tcp"
)
