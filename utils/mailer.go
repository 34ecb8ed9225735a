package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESSendEmailAPI is the slice of the SES client the mailer needs.
type SESSendEmailAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESMailer struct {
	client SESSendEmailAPI
	from   string
}

func NewSESMailer(client SESSendEmailAPI, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func InitSES(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config for SES: %w", err)
	}
	return NewSESMailer(ses.NewFromConfig(cfg), from), nil
}

func (m *SESMailer) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

func (m *SESMailer) SendWelcomeEmail(ctx context.Context, to, username string) error {
	subject := "Welcome to your workout planner"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log in to start building workout plans and tracking your progress.", username)
	return m.sendEmail(ctx, to, subject, body)
}

// NopMailer drops every message. Used when SES is not configured.
type NopMailer struct{}

func (NopMailer) SendWelcomeEmail(context.Context, string, string) error { return nil }
