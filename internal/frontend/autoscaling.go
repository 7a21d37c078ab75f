package frontend

import (
	"github.com/ecsworkshop/frontend-infra/internal/config"
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/applicationautoscaling"
)

// ecsScalingRole is the service-linked role Application Auto Scaling uses for ECS.
var ecsScalingRole = intrinsics.Join{
	Delimiter: "",
	Values: []any{
		"arn:", intrinsics.AWS_PARTITION, ":iam::", intrinsics.AWS_ACCOUNT_ID,
		":role/aws-service-role/ecs.application-autoscaling.amazonaws.com/AWSServiceRoleForApplicationAutoScaling_ECSService",
	},
}

// autoscale adds CPU target tracking to service. Nothing is added when a is disabled.
func autoscale(sc stack.Scope, service stack.Handle, cluster any, a config.AutoscalingConfig) {
	if !a.Enabled {
		return
	}

	target := sc.Add("scalable-target", applicationautoscaling.ScalableTarget{
		MinCapacity: a.MinCapacity,
		MaxCapacity: a.MaxCapacity,
		ResourceId: intrinsics.Join{
			Delimiter: "/",
			Values:    []any{"service", cluster, service.GetAtt("Name")},
		},
		RoleARN:           ecsScalingRole,
		ScalableDimension: applicationautoscaling.ScalableDimensionECSDesired,
		ServiceNamespace:  applicationautoscaling.ServiceNamespaceECS,
	})

	sc.Add("cpu-autoscaling", applicationautoscaling.ScalingPolicy{
		PolicyName:      sc.ID("cpu-autoscaling"),
		PolicyType:      applicationautoscaling.PolicyTypeTargetTracking,
		ScalingTargetId: target.Ref(),
		TargetTrackingScalingPolicyConfiguration: &applicationautoscaling.ScalingPolicy_TargetTrackingScalingPolicyConfiguration{
			TargetValue: a.TargetCPUPercent,
			PredefinedMetricSpecification: &applicationautoscaling.ScalingPolicy_PredefinedMetricSpecification{
				PredefinedMetricType: applicationautoscaling.MetricECSServiceAverageCPUUtilization,
			},
			ScaleInCooldown:  int(a.ScaleInCooldown.Seconds()),
			ScaleOutCooldown: int(a.ScaleOutCooldown.Seconds()),
		},
	})
}
