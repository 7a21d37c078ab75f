package platform

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/lookup"
)

type fakeProvider struct {
	vpc   lookup.VPC
	err   error
	query lookup.Query
}

func (f *fakeProvider) LookupVPC(_ context.Context, q lookup.Query) (lookup.VPC, error) {
	f.query = q
	return f.vpc, f.err
}

func testVPC() lookup.VPC {
	return lookup.VPC{
		ID:               "vpc-1",
		PublicSubnetIDs:  []string{"subnet-pub-a"},
		PrivateSubnetIDs: []string{"subnet-priv-a", "subnet-priv-b"},
	}
}

func TestVPCLookupName(t *testing.T) {
	tests := []struct {
		environment string
		expected    string
	}{
		{"ecsworkshop", "ecsworkshop-base/BaseVPC"},
		{"staging", "staging-base/BaseVPC"},
		{"Team_A-1", "Team_A-1-base/BaseVPC"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			assert.Equal(t, tt.expected, VPCLookupName(tt.environment))
		})
	}
}

func TestLookup(t *testing.T) {
	cfg := config.Default()
	cfg.Account = "123456789012"
	cfg.Region = "us-west-2"

	provider := &fakeProvider{vpc: testVPC()}
	p, err := Lookup(context.Background(), provider, cfg)
	require.NoError(t, err)

	assert.Equal(t, lookup.Query{Account: "123456789012", Region: "us-west-2", Name: "ecsworkshop-base/BaseVPC"}, provider.query)
	assert.Equal(t, "ecsworkshop", p.Environment())
	assert.Equal(t, "vpc-1", p.VPC().ID)
	assert.Equal(t, "vpc-1", p.Cluster().VPCID)
	assert.Equal(t, []any{"subnet-priv-a", "subnet-priv-b"}, p.PrivateSubnets())
	assert.Equal(t, []any{"subnet-pub-a"}, p.PublicSubnets())

	data, err := json.Marshal(p.Namespace().Name)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::ImportValue":"NSNAME"}`, string(data))

	data, err = json.Marshal(p.Cluster().Name)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::ImportValue":"ECSClusterName"}`, string(data))

	data, err = json.Marshal(p.ServicesSecurityGroup())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::ImportValue":"ServicesSecGrp"}`, string(data))
}

func TestLookup_ReadOnly(t *testing.T) {
	p, err := Lookup(context.Background(), &fakeProvider{vpc: testVPC()}, config.Default())
	require.NoError(t, err)

	vpc := p.VPC()
	vpc.PrivateSubnetIDs[0] = "subnet-changed"
	assert.Equal(t, "subnet-priv-a", p.VPC().PrivateSubnetIDs[0])
}

func TestLookup_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		modify   func(*config.Config)
		contains string
	}{
		{
			name:     "vpc not found",
			provider: &fakeProvider{err: lookup.ErrVPCNotFound},
			contains: "ecsworkshop-base/BaseVPC",
		},
		{
			name:     "no private subnets",
			provider: &fakeProvider{vpc: lookup.VPC{ID: "vpc-1"}},
			contains: "no private subnets",
		},
		{
			name:     "missing export",
			provider: &fakeProvider{vpc: testVPC()},
			modify:   func(c *config.Config) { c.Imports.NamespaceID = "" },
			contains: "namespace id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.modify != nil {
				tt.modify(cfg)
			}

			p, err := Lookup(context.Background(), tt.provider, cfg)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrLookupFailed))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLookup_KeepsCause(t *testing.T) {
	_, err := Lookup(context.Background(), &fakeProvider{err: lookup.ErrAmbiguousVPC}, config.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.ErrorIs(t, err, lookup.ErrAmbiguousVPC)
}
