package elasticloadbalancingv2

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infra "github.com/ecsworkshop/frontend-infra"
)

func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource infra.Resource
		expected string
	}{
		{"LoadBalancer", LoadBalancer{}, "AWS::ElasticLoadBalancingV2::LoadBalancer"},
		{"TargetGroup", TargetGroup{}, "AWS::ElasticLoadBalancingV2::TargetGroup"},
		{"Listener", Listener{}, "AWS::ElasticLoadBalancingV2::Listener"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestListenerSerialization(t *testing.T) {
	listener := Listener{
		LoadBalancerArn: "arn:lb",
		Port:            80,
		Protocol:        ProtocolHTTP,
		DefaultActions:  []Listener_Action{{Type: ActionTypeForward, TargetGroupArn: "arn:tg"}},
	}

	data, err := json.Marshal(listener)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"LoadBalancerArn": "arn:lb",
		"Port": 80,
		"Protocol": "HTTP",
		"DefaultActions": [{"Type": "forward", "TargetGroupArn": "arn:tg"}]
	}`, string(data))
}
