package lookup

import (
	"context"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EC2API is the subset of the EC2 client used for VPC lookups.
type EC2API interface {
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
}

// EC2Provider looks up VPCs with the EC2 API.
type EC2Provider struct {
	client EC2API
}

// NewEC2Provider creates a provider backed by client.
func NewEC2Provider(client EC2API) *EC2Provider {
	return &EC2Provider{client: client}
}

// LookupVPC finds the VPC tagged Name=q.Name and classifies its subnets.
// A subnet is public when its route table, explicit or main, routes to an
// internet gateway.
func (p *EC2Provider) LookupVPC(ctx context.Context, q Query) (VPC, error) {
	vpcs, err := p.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{{Name: aws.String("tag:Name"), Values: []string{q.Name}}},
	})
	if err != nil {
		return VPC{}, errors.Wrapf(err, "describing vpc %s", q.Name)
	}

	switch len(vpcs.Vpcs) {
	case 0:
		return VPC{}, errors.Wrapf(ErrVPCNotFound, "tag:Name=%s in %s", q.Name, q.Region)
	case 1:
	default:
		return VPC{}, errors.Wrapf(ErrAmbiguousVPC, "tag:Name=%s (%d vpcs)", q.Name, len(vpcs.Vpcs))
	}

	v := vpcs.Vpcs[0]
	vpcID := aws.ToString(v.VpcId)
	byVPC := []types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}}

	var subnets []types.Subnet
	subnetPages := ec2.NewDescribeSubnetsPaginator(p.client, &ec2.DescribeSubnetsInput{Filters: byVPC})
	for subnetPages.HasMorePages() {
		page, err := subnetPages.NextPage(ctx)
		if err != nil {
			return VPC{}, errors.Wrapf(err, "describing subnets of %s", vpcID)
		}
		subnets = append(subnets, page.Subnets...)
	}

	var tables []types.RouteTable
	tablePages := ec2.NewDescribeRouteTablesPaginator(p.client, &ec2.DescribeRouteTablesInput{Filters: byVPC})
	for tablePages.HasMorePages() {
		page, err := tablePages.NextPage(ctx)
		if err != nil {
			return VPC{}, errors.Wrapf(err, "describing route tables of %s", vpcID)
		}
		tables = append(tables, page.RouteTables...)
	}

	result := classify(vpcID, aws.ToString(v.CidrBlock), subnets, tables)
	zap.L().Debug("vpc looked up",
		zap.String("name", q.Name),
		zap.String("vpc", result.ID),
		zap.Int("public_subnets", len(result.PublicSubnetIDs)),
		zap.Int("private_subnets", len(result.PrivateSubnetIDs)),
	)
	return result, nil
}

func classify(vpcID, cidr string, subnets []types.Subnet, tables []types.RouteTable) VPC {
	explicit := make(map[string]bool)
	mainPublic := false
	for _, table := range tables {
		public := routesToInternetGateway(table)
		for _, assoc := range table.Associations {
			if aws.ToBool(assoc.Main) {
				mainPublic = public
				continue
			}
			if id := aws.ToString(assoc.SubnetId); id != "" {
				explicit[id] = public
			}
		}
	}

	sort.Slice(subnets, func(i, j int) bool {
		ai, aj := aws.ToString(subnets[i].AvailabilityZone), aws.ToString(subnets[j].AvailabilityZone)
		if ai != aj {
			return ai < aj
		}
		return aws.ToString(subnets[i].SubnetId) < aws.ToString(subnets[j].SubnetId)
	})

	vpc := VPC{ID: vpcID, CIDR: cidr}
	zones := make(map[string]bool)
	for _, s := range subnets {
		id := aws.ToString(s.SubnetId)
		public, ok := explicit[id]
		if !ok {
			public = mainPublic
		}
		if public {
			vpc.PublicSubnetIDs = append(vpc.PublicSubnetIDs, id)
		} else {
			vpc.PrivateSubnetIDs = append(vpc.PrivateSubnetIDs, id)
		}

		if az := aws.ToString(s.AvailabilityZone); az != "" && !zones[az] {
			zones[az] = true
			vpc.AvailabilityZones = append(vpc.AvailabilityZones, az)
		}
	}
	return vpc
}

func routesToInternetGateway(table types.RouteTable) bool {
	for _, route := range table.Routes {
		if strings.HasPrefix(aws.ToString(route.GatewayId), "igw-") {
			return true
		}
	}
	return false
}
