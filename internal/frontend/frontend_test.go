package frontend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/lookup"
	"github.com/ecsworkshop/frontend-infra/internal/platform"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/internal/template"
)

func testPlatform() *platform.BasePlatform {
	return platform.Static("ecsworkshop", lookup.VPC{
		ID:                "vpc-1",
		CIDR:              "10.0.0.0/16",
		AvailabilityZones: []string{"us-west-2a", "us-west-2b"},
		PublicSubnetIDs:   []string{"subnet-pub-a", "subnet-pub-b"},
		PrivateSubnetIDs:  []string{"subnet-priv-a", "subnet-priv-b"},
	}, config.Default().Imports)
}

func testConfig(strategy config.Strategy) *config.Config {
	cfg := config.Default()
	cfg.Strategy = strategy
	cfg.Region = "us-west-2"
	return cfg
}

// synth builds the stack and returns the template as parsed JSON.
func synth(t *testing.T, cfg *config.Config) (*stack.Stack, map[string]any) {
	t.Helper()

	s, err := Synthesize(testPlatform(), cfg)
	require.NoError(t, err)

	tmpl, err := template.NewBuilder(s).Build()
	require.NoError(t, err)

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	return s, parsed
}

// ofType returns the properties of every resource of the given type, by logical ID.
func ofType(tmpl map[string]any, typ string) map[string]map[string]any {
	result := make(map[string]map[string]any)
	for id, r := range tmpl["Resources"].(map[string]any) {
		res := r.(map[string]any)
		if res["Type"] != typ {
			continue
		}
		props, _ := res["Properties"].(map[string]any)
		result[id] = props
	}
	return result
}

// only returns the properties of the single resource of the given type.
func only(t *testing.T, tmpl map[string]any, typ string) map[string]any {
	t.Helper()
	found := ofType(tmpl, typ)
	require.Len(t, found, 1, "expected exactly one %s", typ)
	for _, props := range found {
		return props
	}
	return nil
}

func containers(t *testing.T, tmpl map[string]any) map[string]map[string]any {
	t.Helper()
	taskDef := only(t, tmpl, "AWS::ECS::TaskDefinition")
	result := make(map[string]map[string]any)
	for _, c := range taskDef["ContainerDefinitions"].([]any) {
		def := c.(map[string]any)
		result[def["Name"].(string)] = def
	}
	return result
}

func env(container map[string]any) map[string]any {
	result := make(map[string]any)
	items, _ := container["Environment"].([]any)
	for _, kv := range items {
		pair := kv.(map[string]any)
		result[pair["Name"].(string)] = pair["Value"]
	}
	return result
}

func TestSynthesize_PortAndRegion(t *testing.T) {
	tests := []struct {
		strategy  config.Strategy
		container string
	}{
		{config.StrategyDirect, directContainerName},
		{config.StrategyMesh, AppContainerName},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			_, tmpl := synth(t, testConfig(tt.strategy))

			app := containers(t, tmpl)[tt.container]
			require.NotNil(t, app)

			ports := app["PortMappings"].([]any)
			require.Len(t, ports, 1)
			assert.Equal(t, float64(3000), ports[0].(map[string]any)["ContainerPort"])

			vars := env(app)
			assert.Equal(t, "us-west-2", vars["REGION"])
			assert.Equal(t, "http://ecsdemo-crystal.service.local:3000/crystal", vars["CRYSTAL_URL"])
			assert.Equal(t, "http://ecsdemo-nodejs.service.local:3000", vars["NODEJS_URL"])
		})
	}
}

func TestSynthesize_RegionFallback(t *testing.T) {
	for _, strategy := range []config.Strategy{config.StrategyDirect, config.StrategyMesh} {
		t.Run(string(strategy), func(t *testing.T) {
			cfg := testConfig(strategy)
			cfg.Region = ""
			_, tmpl := synth(t, cfg)

			for name, c := range containers(t, tmpl) {
				vars := env(c)
				if _, ok := vars["REGION"]; !ok {
					continue
				}
				assert.Equal(t, map[string]any{"Ref": "AWS::Region"}, vars["REGION"], name)
			}
		})
	}
}

func TestSynthesize_TaskRoleDescribesSubnets(t *testing.T) {
	for _, strategy := range []config.Strategy{config.StrategyDirect, config.StrategyMesh} {
		t.Run(string(strategy), func(t *testing.T) {
			_, tmpl := synth(t, testConfig(strategy))

			found := false
			for _, policy := range ofType(tmpl, "AWS::IAM::Policy") {
				doc := policy["PolicyDocument"].(map[string]any)
				for _, st := range doc["Statement"].([]any) {
					stmt := st.(map[string]any)
					if assert.ObjectsAreEqual([]any{"ec2:DescribeSubnets"}, stmt["Action"]) {
						found = true
						assert.Equal(t, "*", stmt["Resource"])
					}
				}
			}
			assert.True(t, found, "no ec2:DescribeSubnets statement")
		})
	}
}

func TestSynthesize_CloudMapRegistration(t *testing.T) {
	for _, strategy := range []config.Strategy{config.StrategyDirect, config.StrategyMesh} {
		t.Run(string(strategy), func(t *testing.T) {
			_, tmpl := synth(t, testConfig(strategy))

			registry := only(t, tmpl, "AWS::ServiceDiscovery::Service")
			assert.Equal(t, "ecsdemo-frontend", registry["Name"])

			dns := registry["DnsConfig"].(map[string]any)
			assert.Equal(t, "MULTIVALUE", dns["RoutingPolicy"])
			assert.Equal(t, map[string]any{"Fn::ImportValue": "NSID"}, dns["NamespaceId"])
			assert.Equal(t, []any{map[string]any{"Type": "A", "TTL": float64(60)}}, dns["DnsRecords"])

			service := only(t, tmpl, "AWS::ECS::Service")
			assert.Equal(t, "ecsdemo-frontend", service["ServiceName"])
			assert.Equal(t, map[string]any{"Fn::ImportValue": "ECSClusterName"}, service["Cluster"])
			assert.Len(t, service["ServiceRegistries"], 1)
		})
	}
}

func TestSynthesize_UnknownStrategy(t *testing.T) {
	cfg := testConfig("canary")
	_, err := Synthesize(testPlatform(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canary")
}
