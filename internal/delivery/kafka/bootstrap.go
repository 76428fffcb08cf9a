package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/azizikri/startup-deals/internal/config"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Topics lists every topic the service produces to or consumes from on this
// instance.
func Topics(instanceID string) []string {
	return []string{
		TopicClaimRequest,
		TopicCreateRequest,
		TopicClaimRetry,
		TopicCreateRetry,
		TopicClaimRequest + TopicDLQSuffix,
		TopicCreateRequest + TopicDLQSuffix,
		ReplyTopic(instanceID),
	}
}

func ReplyTopic(instanceID string) string {
	return TopicReplyPrefix + instanceID
}

func EnsureTopics(ctx context.Context, client *kgo.Client, cfg *config.Config) error {
	adm := kadm.NewClient(client)

	partitions := cfg.TopicPartitions()
	retryPartitions := cfg.RetryPartitions()
	replicationFactor := cfg.ReplicationFactor()

	for _, topic := range Topics(cfg.KafkaInstanceID) {
		p := partitions
		if strings.HasSuffix(topic, TopicRetrySuffix) || strings.HasSuffix(topic, TopicDLQSuffix) {
			p = retryPartitions
		}

		resp, err := adm.CreateTopics(ctx, int32(p), replicationFactor, nil, topic)
		if err != nil {
			return fmt.Errorf("failed to create topic %s: %w", topic, err)
		}
		for _, detail := range resp {
			if detail.Err != nil && !errors.Is(detail.Err, kerr.TopicAlreadyExists) {
				return fmt.Errorf("failed to create topic %s: %w", detail.Topic, detail.Err)
			}
		}
	}

	log.Println("All topics ensured")
	return nil
}
