package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/infrastructure/awscfg"
	"golang.org/x/sync/errgroup"
)

const defaultPublishConcurrency = 16

// Publisher is the subset of the SNS client used by Gateway.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Gateway delivers push notifications through SNS mobile push. Each token is a
// platform endpoint ARN; one Publish is issued per endpoint.
type Gateway struct {
	client      Publisher
	concurrency int
	logger      *slog.Logger
}

func NewGateway(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	awsCfg, err := awscfg.Load(context.Background(), cfg, cfg.SNSRegion)
	if err != nil {
		return nil, err
	}
	var opts []func(*sns.Options)
	if cfg.AWSEndpointURL != "" {
		opts = append(opts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return NewGatewayWithClient(sns.NewFromConfig(awsCfg, opts...), logger), nil
}

func NewGatewayWithClient(client Publisher, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{client: client, concurrency: defaultPublishConcurrency, logger: logger}
}

// SendEachForMulticast publishes msg to every token. Per-endpoint failures
// (disabled endpoints, invalid ARNs) are counted, not returned.
func (g *Gateway) SendEachForMulticast(ctx context.Context, msg *domain.MulticastMessage) (*domain.BatchResponse, error) {
	if len(msg.Tokens) > domain.MaxMulticastTokens {
		return nil, fmt.Errorf("multicast of %d tokens exceeds %d: %w", len(msg.Tokens), domain.MaxMulticastTokens, domain.ErrBadRequest)
	}
	body, err := buildMessage(msg)
	if err != nil {
		return nil, err
	}

	var success, failure atomic.Int64
	var eg errgroup.Group
	eg.SetLimit(g.concurrency)
	for _, token := range msg.Tokens {
		token := token
		eg.Go(func() error {
			_, err := g.client.Publish(ctx, &sns.PublishInput{
				TargetArn:        aws.String(token),
				Message:          aws.String(body),
				MessageStructure: aws.String("json"),
			})
			if err != nil {
				failure.Add(1)
				g.logger.Debug("sns publish failed", "endpoint", token, "err", err)
				return nil
			}
			success.Add(1)
			return nil
		})
	}
	_ = eg.Wait()

	return &domain.BatchResponse{
		SuccessCount: int(success.Load()),
		FailureCount: int(failure.Load()),
	}, nil
}

type fcmPayload struct {
	Notification domain.PushNotification `json:"notification"`
	Data         map[string]string       `json:"data,omitempty"`
}

type apnsAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type apnsAps struct {
	Alert apnsAlert `json:"alert"`
	Sound string    `json:"sound"`
}

// buildMessage renders the per-platform JSON envelope SNS expects when
// MessageStructure is "json".
func buildMessage(msg *domain.MulticastMessage) (string, error) {
	fcm, err := json.Marshal(fcmPayload{Notification: msg.Notification, Data: msg.Data})
	if err != nil {
		return "", fmt.Errorf("marshal fcm payload: %w", err)
	}

	apnsBody := map[string]any{
		"aps": apnsAps{
			Alert: apnsAlert{Title: msg.Notification.Title, Body: msg.Notification.Body},
			Sound: "default",
		},
	}
	for k, v := range msg.Data {
		apnsBody[k] = v
	}
	apns, err := json.Marshal(apnsBody)
	if err != nil {
		return "", fmt.Errorf("marshal apns payload: %w", err)
	}

	envelope, err := json.Marshal(map[string]string{
		"default":      msg.Notification.Body,
		"GCM":          string(fcm),
		"APNS":         string(apns),
		"APNS_SANDBOX": string(apns),
	})
	if err != nil {
		return "", fmt.Errorf("marshal sns envelope: %w", err)
	}
	return string(envelope), nil
}
