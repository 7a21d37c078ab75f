package lookup

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// STSAPI is the subset of the STS client used to resolve the account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// LoadAWSConfig loads the default credential chain, pinned to region when set.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "loading aws config")
	}
	return cfg, nil
}

// ResolveAccount returns account, or the caller's account ID when account is empty.
func ResolveAccount(ctx context.Context, client STSAPI, account string) (string, error) {
	if account != "" {
		return account, nil
	}

	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", errors.Wrap(err, "resolving account id")
	}

	resolved := aws.ToString(identity.Account)
	if resolved == "" {
		return "", errors.New("caller identity has no account id")
	}

	zap.S().Debugf("resolved account %s from caller identity", resolved)
	return resolved, nil
}
