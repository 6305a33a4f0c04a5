package awsconfig

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLoader(t *testing.T, cfg aws.Config, err error, gotOpts *int) {
	t.Helper()
	old := loadDefaultConfig
	loadDefaultConfig = func(_ context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		*gotOpts = len(optFns)
		return cfg, err
	}
	t.Cleanup(func() { loadDefaultConfig = old })
}

func TestGetAWSCfg(t *testing.T) {
	var n int
	stubLoader(t, aws.Config{Region: "us-east-1", Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")}, nil, &n)

	cfg, err := NewService().GetAWSCfg(context.Background(), "us-east-1", "prod")
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, 3, n)
}

func TestGetAWSCfgDefaultsOnlyAddMFAOption(t *testing.T) {
	var n int
	stubLoader(t, aws.Config{Region: "eu-west-1"}, nil, &n)

	_, err := NewService().GetAWSCfg(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetAWSCfgRequiresRegion(t *testing.T) {
	var n int
	stubLoader(t, aws.Config{}, nil, &n)

	_, err := NewService().GetAWSCfg(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoRegion)
}

func TestGetAWSCfgLoadError(t *testing.T) {
	var n int
	boom := errors.New("shared config profile not found")
	stubLoader(t, aws.Config{}, boom, &n)

	_, err := NewService().GetAWSCfg(context.Background(), "", "missing")
	assert.ErrorIs(t, err, boom)
}
