package frontend

import (
	"github.com/ecsworkshop/frontend-infra/internal/stack"
	"github.com/ecsworkshop/frontend-infra/intrinsics"
	"github.com/ecsworkshop/frontend-infra/resources/iam"
)

const ecsTasksPrincipal = "ecs-tasks.amazonaws.com"

// taskRoles creates the execution role ECS uses to start the task and the
// role the task's containers run as.
func taskRoles(sc stack.Scope, executionPolicies, taskPolicies []string) (execution, task stack.Handle) {
	execution = sc.Add("execution-role", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy(ecsTasksPrincipal),
		ManagedPolicyArns:        managedPolicies(executionPolicies),
	})
	task = sc.Add("task-role", iam.Role{
		AssumeRolePolicyDocument: intrinsics.AssumeRolePolicy(ecsTasksPrincipal),
		ManagedPolicyArns:        managedPolicies(taskPolicies),
	})
	return execution, task
}

func managedPolicies(names []string) []any {
	var arns []any
	for _, name := range names {
		arns = append(arns, intrinsics.ManagedPolicyArn(name))
	}
	return arns
}

// logWritePolicy lets the execution role ship container output to logGroup.
func logWritePolicy(sc stack.Scope, execution, logGroup stack.Handle) stack.Handle {
	return sc.Add("execution-role-policy", iam.Policy{
		PolicyName: sc.ID("execution-role-policy"),
		PolicyDocument: intrinsics.NewPolicyDocument(
			intrinsics.Allow(
				intrinsics.Any("logs:CreateLogStream", "logs:PutLogEvents"),
				logGroup.GetAtt("Arn"),
			),
		),
		Roles: intrinsics.Any(execution.Ref()),
	})
}

// describeSubnetsPolicy grants the task role ec2:DescribeSubnets, which the
// frontend needs to resolve its own subnet.
func describeSubnetsPolicy(sc stack.Scope, task stack.Handle) stack.Handle {
	return sc.Add("task-role-policy", iam.Policy{
		PolicyName: sc.ID("task-role-policy"),
		PolicyDocument: intrinsics.NewPolicyDocument(
			intrinsics.Allow(intrinsics.Any("ec2:DescribeSubnets"), "*"),
		),
		Roles: intrinsics.Any(task.Ref()),
	})
}
