// Package config loads the synthesis configuration.
//
// Values come from built-in defaults, then an optional YAML file, then the
// process environment. Nothing below this package reads the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"

	"github.com/ecsworkshop/frontend-infra/resources/logs"
)

// Strategy selects how the frontend service is provisioned.
type Strategy string

const (
	// StrategyDirect provisions a public load-balanced Fargate service.
	StrategyDirect Strategy = "direct"
	// StrategyMesh provisions the service behind an App Mesh sidecar.
	StrategyMesh Strategy = "mesh"
)

// Config holds all configuration for one synthesis.
type Config struct {
	Account     string   `yaml:"account" env:"AWS_ACCOUNT_ID"`
	Region      string   `yaml:"region" env:"AWS_DEFAULT_REGION"`
	Environment string   `yaml:"environment" env:"ENVIRONMENT_NAME"`
	Strategy    Strategy `yaml:"strategy" env:"FRONTEND_STRATEGY"`
	ContextFile string   `yaml:"context_file" env:"LOOKUP_CONTEXT_FILE"`

	Imports      ImportsConfig `yaml:"imports" envPrefix:"IMPORT_"`
	Direct       ServiceConfig `yaml:"direct" envPrefix:"DIRECT_"`
	Mesh         ServiceConfig `yaml:"mesh" envPrefix:"MESH_"`
	MeshSettings MeshSettings  `yaml:"mesh_settings" envPrefix:"MESH_"`
}

// ImportsConfig names the base platform exports.
type ImportsConfig struct {
	NamespaceName         string `yaml:"namespace_name" env:"NSNAME"`
	NamespaceArn          string `yaml:"namespace_arn" env:"NSARN"`
	NamespaceID           string `yaml:"namespace_id" env:"NSID"`
	ClusterName           string `yaml:"cluster_name" env:"ECS_CLUSTER_NAME"`
	ServicesSecurityGroup string `yaml:"services_security_group" env:"SERVICES_SEC_GRP"`
}

// ServiceConfig describes the frontend service for one strategy.
type ServiceConfig struct {
	Name             string            `yaml:"name" env:"SERVICE_NAME"`
	Image            string            `yaml:"image" env:"IMAGE"`
	ContainerPort    int               `yaml:"container_port" env:"CONTAINER_PORT"`
	CPU              int               `yaml:"cpu" env:"CPU"`
	Memory           int               `yaml:"memory" env:"MEMORY"`
	DesiredCount     int               `yaml:"desired_count" env:"DESIRED_COUNT"`
	CrystalURL       string            `yaml:"crystal_url" env:"CRYSTAL_URL"`
	NodeJSURL        string            `yaml:"nodejs_url" env:"NODEJS_URL"`
	LogRetentionDays int               `yaml:"log_retention_days" env:"LOG_RETENTION_DAYS"`
	Autoscaling      AutoscalingConfig `yaml:"autoscaling" envPrefix:"AUTOSCALING_"`
}

// AutoscalingConfig is CPU target-tracking autoscaling for a service.
type AutoscalingConfig struct {
	Enabled          bool          `yaml:"enabled" env:"ENABLED"`
	MinCapacity      int           `yaml:"min_capacity" env:"MIN_CAPACITY"`
	MaxCapacity      int           `yaml:"max_capacity" env:"MAX_CAPACITY"`
	TargetCPUPercent float64       `yaml:"target_cpu_percent" env:"TARGET_CPU_PERCENT"`
	ScaleInCooldown  time.Duration `yaml:"scale_in_cooldown" env:"SCALE_IN_COOLDOWN"`
	ScaleOutCooldown time.Duration `yaml:"scale_out_cooldown" env:"SCALE_OUT_COOLDOWN"`
}

// MeshSettings holds the App Mesh side of the mesh strategy.
type MeshSettings struct {
	MeshArnExport        string `yaml:"mesh_arn_export" env:"ARN_EXPORT"`
	GatewayExport        string `yaml:"gateway_export" env:"GATEWAY_EXPORT"`
	CrystalServiceExport string `yaml:"crystal_service_export" env:"CRYSTAL_VS_EXPORT"`
	NodeJSServiceExport  string `yaml:"nodejs_service_export" env:"NODEJS_VS_EXPORT"`

	EnvoyImage  string `yaml:"envoy_image" env:"ENVOY_IMAGE"`
	XRayEnabled bool   `yaml:"xray_enabled" env:"XRAY_ENABLED"`
	XRayImage   string `yaml:"xray_image" env:"XRAY_IMAGE"`

	VirtualNodeName  string `yaml:"virtual_node_name" env:"VIRTUAL_NODE_NAME"`
	RouterName       string `yaml:"router_name" env:"ROUTER_NAME"`
	RouteName        string `yaml:"route_name" env:"ROUTE_NAME"`
	GatewayRouteName string `yaml:"gateway_route_name" env:"GATEWAY_ROUTE_NAME"`
	RouteWeight      int    `yaml:"route_weight" env:"ROUTE_WEIGHT"`
}

// Default returns the configuration of the ecsworkshop frontend.
func Default() *Config {
	return &Config{
		Environment: "ecsworkshop",
		Strategy:    StrategyDirect,
		ContextFile: "lookup.context.json",
		Imports: ImportsConfig{
			NamespaceName:         "NSNAME",
			NamespaceArn:          "NSARN",
			NamespaceID:           "NSID",
			ClusterName:           "ECSClusterName",
			ServicesSecurityGroup: "ServicesSecGrp",
		},
		Direct: ServiceConfig{
			Name:             "ecsdemo-frontend",
			Image:            "public.ecr.aws/aws-containers/ecsdemo-frontend",
			ContainerPort:    3000,
			CPU:              256,
			Memory:           512,
			DesiredCount:     1,
			CrystalURL:       "http://ecsdemo-crystal.service.local:3000/crystal",
			NodeJSURL:        "http://ecsdemo-nodejs.service.local:3000",
			LogRetentionDays: logs.RetentionOneWeek,
			Autoscaling: AutoscalingConfig{
				Enabled:          false,
				MinCapacity:      1,
				MaxCapacity:      10,
				TargetCPUPercent: 50,
				ScaleInCooldown:  30 * time.Second,
				ScaleOutCooldown: 30 * time.Second,
			},
		},
		Mesh: ServiceConfig{
			Name:             "ecsdemo-frontend",
			Image:            "public.ecr.aws/aws-containers/ecsdemo-frontend",
			ContainerPort:    3000,
			CPU:              256,
			Memory:           512,
			DesiredCount:     3,
			CrystalURL:       "http://ecsdemo-crystal.service.local:3000/crystal",
			NodeJSURL:        "http://ecsdemo-nodejs.service.local:3000",
			LogRetentionDays: logs.RetentionOneWeek,
			Autoscaling: AutoscalingConfig{
				Enabled:          true,
				MinCapacity:      3,
				MaxCapacity:      10,
				TargetCPUPercent: 50,
				ScaleInCooldown:  30 * time.Second,
				ScaleOutCooldown: 30 * time.Second,
			},
		},
		MeshSettings: MeshSettings{
			MeshArnExport:        "MeshArn",
			GatewayExport:        "MeshVGWName",
			CrystalServiceExport: "MeshCrystalVSName",
			NodeJSServiceExport:  "MeshNodeJsVSName",
			EnvoyImage:           "public.ecr.aws/appmesh/aws-appmesh-envoy:v1.18.3.0-prod",
			XRayImage:            "amazon/aws-xray-daemon",
			VirtualNodeName:      "frontend",
			RouterName:           "FrontEnd",
			RouteName:            "frontend-a",
			GatewayRouteName:     "frontend-router",
			RouteWeight:          1,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is non-empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// StackName returns the name of the frontend stack.
func (c *Config) StackName() string {
	return c.Environment + "-frontend"
}

// Service returns the service section of the selected strategy.
func (c *Config) Service() ServiceConfig {
	if c.Strategy == StrategyMesh {
		return c.Mesh
	}
	return c.Direct
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("ENVIRONMENT_NAME is required")
	}

	switch c.Strategy {
	case StrategyDirect, StrategyMesh:
	default:
		return fmt.Errorf("unknown strategy %q (want %q or %q)", c.Strategy, StrategyDirect, StrategyMesh)
	}

	imports := map[string]string{
		"namespace name":          c.Imports.NamespaceName,
		"namespace arn":           c.Imports.NamespaceArn,
		"namespace id":            c.Imports.NamespaceID,
		"cluster name":            c.Imports.ClusterName,
		"services security group": c.Imports.ServicesSecurityGroup,
	}
	for name, export := range imports {
		if export == "" {
			return fmt.Errorf("export name for %s is required", name)
		}
	}

	if err := c.Direct.validate("direct"); err != nil {
		return err
	}
	if err := c.Mesh.validate("mesh"); err != nil {
		return err
	}

	if c.Strategy == StrategyMesh {
		if err := c.MeshSettings.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (s ServiceConfig) validate(section string) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%s: service name is required", section)
	case s.Image == "":
		return fmt.Errorf("%s: image is required", section)
	case s.ContainerPort <= 0 || s.ContainerPort > 65535:
		return fmt.Errorf("%s: container port %d out of range", section, s.ContainerPort)
	case s.CPU <= 0 || s.Memory <= 0:
		return fmt.Errorf("%s: cpu and memory must be positive", section)
	case s.DesiredCount <= 0:
		return fmt.Errorf("%s: desired count must be positive", section)
	case !logs.ValidRetention(s.LogRetentionDays):
		return fmt.Errorf("%s: %d is not a valid log retention", section, s.LogRetentionDays)
	}

	if s.Autoscaling.Enabled {
		a := s.Autoscaling
		switch {
		case a.MinCapacity <= 0:
			return fmt.Errorf("%s: autoscaling min capacity must be positive", section)
		case a.MinCapacity > a.MaxCapacity:
			return fmt.Errorf("%s: autoscaling min capacity %d exceeds max %d", section, a.MinCapacity, a.MaxCapacity)
		case a.TargetCPUPercent <= 0 || a.TargetCPUPercent > 100:
			return fmt.Errorf("%s: autoscaling target %.0f%% out of range", section, a.TargetCPUPercent)
		case a.ScaleInCooldown < 0 || a.ScaleOutCooldown < 0:
			return fmt.Errorf("%s: autoscaling cooldowns must not be negative", section)
		}
	}

	return nil
}

func (m MeshSettings) validate() error {
	exports := []struct{ name, value string }{
		{"mesh arn", m.MeshArnExport},
		{"virtual gateway", m.GatewayExport},
		{"crystal virtual service", m.CrystalServiceExport},
		{"nodejs virtual service", m.NodeJSServiceExport},
	}
	for _, e := range exports {
		if e.value == "" {
			return fmt.Errorf("mesh: export name for %s is required", e.name)
		}
	}

	switch {
	case m.EnvoyImage == "":
		return fmt.Errorf("mesh: envoy image is required")
	case m.XRayEnabled && m.XRayImage == "":
		return fmt.Errorf("mesh: xray image is required when xray is enabled")
	case m.VirtualNodeName == "" || m.RouterName == "" || m.RouteName == "" || m.GatewayRouteName == "":
		return fmt.Errorf("mesh: virtual node, router, route and gateway route names are required")
	case m.RouteWeight <= 0:
		return fmt.Errorf("mesh: route weight must be positive")
	}

	return nil
}
