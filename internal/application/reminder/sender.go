package reminder

import (
	"context"
	"log/slog"

	"github.com/go-med-reminder/internal/domain"
)

// PushGateway delivers one multicast batch. Invalid tokens are reported as
// failures in the response rather than as an error.
type PushGateway interface {
	SendEachForMulticast(ctx context.Context, msg *domain.MulticastMessage) (*domain.BatchResponse, error)
}

// SendResult aggregates delivery counts across chunks.
type SendResult struct {
	SuccessCount int
	FailureCount int
}

// SendMulticast splits tokens into gateway-sized chunks and sends the same
// notification and data to each. A chunk that errors is counted as failed and
// the remaining chunks are still sent.
func SendMulticast(ctx context.Context, gw PushGateway, logger *slog.Logger, chunkSize int, tokens []string, n domain.PushNotification, data map[string]string) SendResult {
	if chunkSize <= 0 || chunkSize > domain.MaxMulticastTokens {
		chunkSize = domain.MaxMulticastTokens
	}
	var res SendResult
	for start := 0; start < len(tokens); start += chunkSize {
		end := min(start+chunkSize, len(tokens))
		chunk := tokens[start:end]
		resp, err := gw.SendEachForMulticast(ctx, &domain.MulticastMessage{
			Tokens:       chunk,
			Notification: n,
			Data:         data,
		})
		if err != nil {
			logger.Warn("multicast chunk failed", "tokens", len(chunk), "err", err)
			res.FailureCount += len(chunk)
			continue
		}
		res.SuccessCount += resp.SuccessCount
		res.FailureCount += resp.FailureCount
	}
	return res
}
