package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ecsworkshop", cfg.Environment)
	assert.Equal(t, StrategyDirect, cfg.Strategy)
	assert.Equal(t, "ecsworkshop-frontend", cfg.StackName())

	assert.Equal(t, 3000, cfg.Direct.ContainerPort)
	assert.Equal(t, 1, cfg.Direct.DesiredCount)
	assert.False(t, cfg.Direct.Autoscaling.Enabled)

	assert.Equal(t, 3, cfg.Mesh.DesiredCount)
	assert.True(t, cfg.Mesh.Autoscaling.Enabled)
	assert.Equal(t, 3, cfg.Mesh.Autoscaling.MinCapacity)
	assert.Equal(t, 10, cfg.Mesh.Autoscaling.MaxCapacity)
	assert.Equal(t, float64(50), cfg.Mesh.Autoscaling.TargetCPUPercent)
	assert.Equal(t, 30*time.Second, cfg.Mesh.Autoscaling.ScaleInCooldown)
	assert.Equal(t, 30*time.Second, cfg.Mesh.Autoscaling.ScaleOutCooldown)

	assert.Equal(t, 1, cfg.MeshSettings.RouteWeight)
	assert.False(t, cfg.MeshSettings.XRayEnabled)

	cfg.Region = "us-west-2"
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontend.yaml")
	content := `
environment: staging
strategy: mesh
region: eu-west-1
mesh:
  desired_count: 4
  autoscaling:
    min_capacity: 4
    scale_in_cooldown: 45s
mesh_settings:
  xray_enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, StrategyMesh, cfg.Strategy)
	assert.Equal(t, "staging-frontend", cfg.StackName())
	assert.Equal(t, 4, cfg.Mesh.DesiredCount)
	assert.Equal(t, 4, cfg.Mesh.Autoscaling.MinCapacity)
	assert.Equal(t, 45*time.Second, cfg.Mesh.Autoscaling.ScaleInCooldown)
	assert.True(t, cfg.MeshSettings.XRayEnabled)

	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.Mesh.Autoscaling.MaxCapacity)
	assert.Equal(t, "ecsdemo-frontend", cfg.Mesh.Name)
	assert.Equal(t, "NSNAME", cfg.Imports.NamespaceName)
	assert.Equal(t, cfg.Mesh, cfg.Service())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: staging\n"), 0644))

	t.Setenv("ENVIRONMENT_NAME", "prod")
	t.Setenv("AWS_ACCOUNT_ID", "123456789012")
	t.Setenv("AWS_DEFAULT_REGION", "us-east-2")
	t.Setenv("FRONTEND_STRATEGY", "mesh")
	t.Setenv("IMPORT_NSNAME", "ProdNamespaceName")
	t.Setenv("DIRECT_AUTOSCALING_ENABLED", "true")
	t.Setenv("MESH_DESIRED_COUNT", "5")
	t.Setenv("MESH_XRAY_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "123456789012", cfg.Account)
	assert.Equal(t, "us-east-2", cfg.Region)
	assert.Equal(t, StrategyMesh, cfg.Strategy)
	assert.Equal(t, "ProdNamespaceName", cfg.Imports.NamespaceName)
	assert.True(t, cfg.Direct.Autoscaling.Enabled)
	assert.Equal(t, 5, cfg.Mesh.DesiredCount)
	assert.True(t, cfg.MeshSettings.XRayEnabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mesh: [not, a, map]"), 0644))
	_, err = Load(path)
	assert.Error(t, err)

	t.Setenv("MESH_DESIRED_COUNT", "three")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty environment", func(c *Config) { c.Environment = "" }, "ENVIRONMENT_NAME"},
		{"unknown strategy", func(c *Config) { c.Strategy = "canary" }, "unknown strategy"},
		{"missing import", func(c *Config) { c.Imports.ClusterName = "" }, "cluster name"},
		{"zero port", func(c *Config) { c.Direct.ContainerPort = 0 }, "container port"},
		{"zero desired count", func(c *Config) { c.Mesh.DesiredCount = 0 }, "desired count"},
		{"bad retention", func(c *Config) { c.Mesh.LogRetentionDays = 8 }, "log retention"},
		{"min above max", func(c *Config) { c.Mesh.Autoscaling.MinCapacity = 11 }, "exceeds max"},
		{"target out of range", func(c *Config) { c.Mesh.Autoscaling.TargetCPUPercent = 0 }, "target"},
		{
			"zero route weight",
			func(c *Config) { c.Strategy = StrategyMesh; c.MeshSettings.RouteWeight = 0 },
			"route weight",
		},
		{
			"missing mesh export",
			func(c *Config) { c.Strategy = StrategyMesh; c.MeshSettings.GatewayExport = "" },
			"virtual gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_DisabledAutoscalingIsNotChecked(t *testing.T) {
	cfg := Default()
	cfg.Direct.Autoscaling.MinCapacity = 20
	assert.NoError(t, cfg.Validate())

	cfg.Direct.Autoscaling.Enabled = true
	assert.Error(t, cfg.Validate())
}
