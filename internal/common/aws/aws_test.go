// internal/common/aws/aws_test.go
package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	input *ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

type mockSNS struct {
	input *sns.PublishInput
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.input = params
	return &sns.PublishOutput{MessageId: aws.String("sns-456")}, nil
}

func TestSESClient_SendEmail(t *testing.T) {
	api := &mockSES{}
	client := NewSESClientWithAPI(api, "results@bizpath.example")

	id, err := client.SendEmail(context.Background(), EmailMessage{
		To:       "maya@example.com",
		Subject:  "Your top business paths",
		TextBody: "1. SaaS Development (87)",
	})
	require.NoError(t, err)
	assert.Equal(t, "ses-123", id)

	require.NotNil(t, api.input)
	assert.Equal(t, "results@bizpath.example", aws.ToString(api.input.Source))
	assert.Equal(t, []string{"maya@example.com"}, api.input.Destination.ToAddresses)
	assert.Nil(t, api.input.Message.Body.Html)
}

func TestSESClient_SendEmailError(t *testing.T) {
	client := NewSESClientWithAPI(&mockSES{err: errors.New("throttled")}, "from@example.com")

	_, err := client.SendEmail(context.Background(), EmailMessage{To: "x@example.com"})
	assert.EqualError(t, err, "throttled")
}

func TestSNSClient_SendSMS(t *testing.T) {
	api := &mockSNS{}
	client := NewSNSClientWithAPI(api, "BIZPATH")

	id, err := client.SendSMS(context.Background(), "+15550100", "Your top match: SaaS Development")
	require.NoError(t, err)
	assert.Equal(t, "sns-456", id)
	assert.Equal(t, "+15550100", aws.ToString(api.input.PhoneNumber))
	assert.Equal(t, "BIZPATH", aws.ToString(api.input.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}
