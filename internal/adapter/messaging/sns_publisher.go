package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// SNS rejects subjects of 100 characters or more and any control character.
const maxSubjectRunes = 99

// SNSAPI is the subset of the SNS client used by SNSPublisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSPublisher struct {
	client   SNSAPI
	topicARN string
}

func NewSNSPublisher(client SNSAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN}
}

func (s *SNSPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(subject(notification)),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"software_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(notification.ID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", s.topicARN, err)
	}
	return nil
}

func subject(n domain.Notification) string {
	name := n.Name
	if name == "" {
		name = n.ID
	}
	s := fmt.Sprintf("New version of %s: %s", name, n.Version)

	var b strings.Builder
	count := 0
	for _, r := range s {
		if count == maxSubjectRunes {
			break
		}
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			r = ' '
		case r == unicode.ReplacementChar, unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		count++
	}
	return strings.TrimSpace(b.String())
}
