// Package platform resolves the shared base platform the frontend runs on.
//
// The VPC is looked up by name; the Cloud Map namespace, the ECS cluster and
// the services security group are imported from the base platform stack's
// exports. The resulting BasePlatform is read-only.
package platform

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/lookup"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
)

// ErrLookupFailed is returned when a base platform resource cannot be resolved.
var ErrLookupFailed = errors.New("base platform lookup failed")

// VPCLookupName returns the Name tag the base platform VPC carries.
func VPCLookupName(environment string) string {
	return environment + "-base/BaseVPC"
}

// Namespace is the imported Cloud Map private DNS namespace.
type Namespace struct {
	Name intrinsics.ImportValue
	Arn  intrinsics.ImportValue
	ID   intrinsics.ImportValue
}

// Cluster is the imported ECS cluster together with the network and namespace it uses.
type Cluster struct {
	Name      intrinsics.ImportValue
	VPCID     string
	Namespace Namespace
}

// BasePlatform is the immutable bundle of base platform references.
type BasePlatform struct {
	environment           string
	vpc                   lookup.VPC
	namespace             Namespace
	cluster               Cluster
	servicesSecurityGroup intrinsics.ImportValue
}

// Lookup resolves the base platform for cfg. Failures are not retried.
func Lookup(ctx context.Context, provider lookup.Provider, cfg *config.Config) (*BasePlatform, error) {
	imports := cfg.Imports
	exports := []struct{ name, value string }{
		{"namespace name", imports.NamespaceName},
		{"namespace arn", imports.NamespaceArn},
		{"namespace id", imports.NamespaceID},
		{"cluster name", imports.ClusterName},
		{"services security group", imports.ServicesSecurityGroup},
	}
	for _, e := range exports {
		if e.value == "" {
			return nil, fmt.Errorf("%w: no export name for %s", ErrLookupFailed, e.name)
		}
	}

	name := VPCLookupName(cfg.Environment)
	vpc, err := provider.LookupVPC(ctx, lookup.Query{
		Account: cfg.Account,
		Region:  cfg.Region,
		Name:    name,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: vpc %s: %w", ErrLookupFailed, name, err)
	}
	if len(vpc.PrivateSubnetIDs) == 0 {
		return nil, fmt.Errorf("%w: vpc %s (%s) has no private subnets", ErrLookupFailed, name, vpc.ID)
	}

	zap.L().Info("base platform resolved",
		zap.String("environment", cfg.Environment),
		zap.String("vpc", vpc.ID),
		zap.String("cluster_export", imports.ClusterName),
	)

	return Static(cfg.Environment, vpc, imports), nil
}

// Environment returns the environment name the platform was resolved for.
func (p *BasePlatform) Environment() string {
	return p.environment
}

// VPC returns a copy of the looked-up VPC.
func (p *BasePlatform) VPC() lookup.VPC {
	v := p.vpc
	v.AvailabilityZones = append([]string(nil), v.AvailabilityZones...)
	v.PublicSubnetIDs = append([]string(nil), v.PublicSubnetIDs...)
	v.PrivateSubnetIDs = append([]string(nil), v.PrivateSubnetIDs...)
	return v
}

// Namespace returns the imported Cloud Map namespace.
func (p *BasePlatform) Namespace() Namespace {
	return p.namespace
}

// Cluster returns the imported ECS cluster.
func (p *BasePlatform) Cluster() Cluster {
	return p.cluster
}

// ServicesSecurityGroup returns the imported ID of the security group shared
// by the backend services.
func (p *BasePlatform) ServicesSecurityGroup() intrinsics.ImportValue {
	return p.servicesSecurityGroup
}

// PublicSubnets returns the public subnet IDs as template values.
func (p *BasePlatform) PublicSubnets() []any {
	return toAny(p.vpc.PublicSubnetIDs)
}

// PrivateSubnets returns the private subnet IDs as template values.
func (p *BasePlatform) PrivateSubnets() []any {
	return toAny(p.vpc.PrivateSubnetIDs)
}

func toAny(ids []string) []any {
	result := make([]any, len(ids))
	for i, id := range ids {
		result[i] = id
	}
	return result
}

// Static returns a platform built from known values without a lookup.
func Static(environment string, vpc lookup.VPC, imports config.ImportsConfig) *BasePlatform {
	namespace := Namespace{
		Name: intrinsics.Import(imports.NamespaceName),
		Arn:  intrinsics.Import(imports.NamespaceArn),
		ID:   intrinsics.Import(imports.NamespaceID),
	}
	return &BasePlatform{
		environment: environment,
		vpc:         vpc,
		namespace:   namespace,
		cluster: Cluster{
			Name:      intrinsics.Import(imports.ClusterName),
			VPCID:     vpc.ID,
			Namespace: namespace,
		},
		servicesSecurityGroup: intrinsics.Import(imports.ServicesSecurityGroup),
	}
}
