// Package intrinsics provides CloudFormation intrinsic functions.
//
// The core intrinsic types are re-exported from cloudformation-schema-go;
// this package adds the helpers the frontend stacks need on top of them.
//
//	Ref{LogicalName: "TaskRole"}      → {"Ref": "TaskRole"}
//	ImportValue{ExportName: "NSNAME"} → {"Fn::ImportValue": "NSNAME"}
//	Join{".", []any{"a", "b"}}        → {"Fn::Join": [".", ["a", "b"]]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_PARTITION, AWS_STACK_NAME, etc.
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// Split represents a CloudFormation Fn::Split intrinsic function.
	Split = intrinsics.Split

	// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
	ImportValue = intrinsics.ImportValue

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Import returns an Fn::ImportValue for a cross-stack export.
func Import(exportName string) ImportValue {
	return ImportValue{ExportName: exportName}
}

// ManagedPolicyArn returns the partition-aware ARN of an AWS managed policy.
//
//	ManagedPolicyArn("CloudWatchFullAccess")
//	→ {"Fn::Join": ["", ["arn:", {"Ref": "AWS::Partition"}, ":iam::aws:policy/CloudWatchFullAccess"]]}
func ManagedPolicyArn(name string) Join {
	return Join{
		Delimiter: "",
		Values:    []any{"arn:", AWS_PARTITION, ":iam::aws:policy/" + name},
	}
}

// ImportedMeshName derives the mesh name from an imported mesh ARN.
// Mesh ARNs have the form arn:aws:appmesh:<region>:<account>:mesh/<name>, so the
// name is the second "/" field of the sixth ":" field.
func ImportedMeshName(meshArn any) Select {
	return Select{
		Index: 1,
		List: Split{
			Delimiter: "/",
			Source: Select{
				Index: 5,
				List:  Split{Delimiter: ":", Source: meshArn},
			},
		},
	}
}
