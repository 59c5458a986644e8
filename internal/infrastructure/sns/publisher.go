package sns

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/thread-heaven/storefront-api/internal/config"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

// OrderEventPublisher announces new orders to the back-office topic.
// Publishing is best-effort; callers log failures and carry on.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *domain.Order) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (OrderEventPublisher, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("no order topic configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

type orderCreatedEvent struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	Total         float64 `json:"total"`
	ItemCount     int     `json:"item_count"`
}

func (p *publisher) PublishOrderCreated(ctx context.Context, o *domain.Order) error {
	msg, err := json.Marshal(orderCreatedEvent{
		OrderID:       o.OrderID,
		CustomerEmail: o.CustomerEmail,
		Total:         o.Total,
		ItemCount:     len(o.Items),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	body := string(msg)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Message:  &body,
	})
	return err
}
