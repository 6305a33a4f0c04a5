// Package awsconfig provides a service for loading AWS configuration.
package awsconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
)

// ErrNoRegion is returned when neither a flag nor the SDK defaults supply a region.
var ErrNoRegion = errors.New("no AWS region configured; use --region, AWS_REGION or the profile's region")

// loadDefaultConfig is a variable to allow mocking in tests.
var loadDefaultConfig = config.LoadDefaultConfig

// NewService creates a new AWS configuration service.
func NewService() Service {
	return &service{}
}

// GetAWSCfg resolves credentials and region through the SDK default chain.
// Credentials are retrieved eagerly so MFA prompts and credential errors
// surface before any finding is requested.
func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	cfg, err := loadDefaultConfig(ctx, loadOptions(region, profile)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		return aws.Config{}, ErrNoRegion
	}

	if cfg.Credentials != nil {
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			return aws.Config{}, fmt.Errorf("failed to retrieve credentials: %w", err)
		}
	}

	return cfg, nil
}

func loadOptions(region, profile string) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error

	// Empty region/profile fall through to AWS_REGION, AWS_PROFILE and ~/.aws/config.
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	// Prompt on stdin for profiles that assume a role with MFA.
	opts = append(opts, config.WithAssumeRoleCredentialOptions(func(options *stscreds.AssumeRoleOptions) {
		options.TokenProvider = stscreds.StdinTokenProvider
	}))

	return opts
}
