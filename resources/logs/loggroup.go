// Package logs contains the Amazon CloudWatch Logs resource types.
package logs

// Retention periods accepted by RetentionInDays.
const (
	RetentionOneDay    = 1
	RetentionThreeDays = 3
	RetentionFiveDays  = 5
	RetentionOneWeek   = 7
	RetentionTwoWeeks  = 14
	RetentionOneMonth  = 30
)

// LogGroup represents an AWS::Logs::LogGroup resource.
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-logs-loggroup.html
type LogGroup struct {
	LogGroupName    any   `json:"LogGroupName,omitempty"`
	RetentionInDays int   `json:"RetentionInDays,omitempty"`
	Tags            []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation resource type.
func (r LogGroup) ResourceType() string {
	return "AWS::Logs::LogGroup"
}

// ValidRetention reports whether days is a retention CloudWatch Logs accepts.
func ValidRetention(days int) bool {
	switch days {
	case 1, 3, 5, 7, 14, 30, 60, 90, 120, 150, 180, 365, 400, 545, 731, 1096, 1827, 2192, 2557, 2922, 3288, 3653:
		return true
	}
	return false
}
