package awssts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type mockSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (m *mockSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return m.out, m.err
}

func TestGetAccountID(t *testing.T) {
	svc := &service{client: &mockSTS{out: &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}}}
	id, err := svc.GetAccountID(context.Background())
	if err != nil || id != "123456789012" {
		t.Fatalf("unexpected result: %q, %v", id, err)
	}
}

func TestGetAccountIDErrors(t *testing.T) {
	svc := &service{client: &mockSTS{err: errors.New("expired token")}}
	if _, err := svc.GetAccountID(context.Background()); err == nil {
		t.Fatalf("expected error from STS")
	}

	svc = &service{client: &mockSTS{out: &sts.GetCallerIdentityOutput{}}}
	if _, err := svc.GetAccountID(context.Background()); err == nil {
		t.Fatalf("expected error for empty account")
	}
}
