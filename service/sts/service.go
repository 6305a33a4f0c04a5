// Package awssts provides a service for interacting with AWS STS.
package awssts

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return &service{
		client: sts.NewFromConfig(awsconfig),
	}
}

// GetAccountID returns the account of the calling identity.
func (s *service) GetAccountID(ctx context.Context) (string, error) {
	out, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	if aws.ToString(out.Account) == "" {
		return "", errors.New("unable to resolve account ID")
	}
	return aws.ToString(out.Account), nil
}
