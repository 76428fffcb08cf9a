package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/azizikri/startup-deals/internal/config"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/azizikri/startup-deals/internal/usecase"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Consumer executes claim and deal-creation requests against the in-process
// services and answers on the requester's reply topic.
type Consumer struct {
	client  *kgo.Client
	cfg     *config.Config
	service usecase.MarketplaceGateway
	ready   chan struct{}
}

func NewConsumer(cfg *config.Config, client *kgo.Client, service usecase.MarketplaceGateway) *Consumer {
	return &Consumer{
		client:  client,
		cfg:     cfg,
		service: service,
		ready:   make(chan struct{}),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	close(c.ready)
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			log.Printf("Consumer poll errors: %v", errs)
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			c.processRecord(ctx, record)
		}

		if err := c.client.CommitRecords(ctx, fetches.Records()...); err != nil {
			log.Printf("Failed to commit records: %v", err)
		}
	}
}

// StartRetry moves records from the retry topics back onto their request
// topics once their x-next-at time has passed.
func (c *Consumer) StartRetry(ctx context.Context) {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return
		}
		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()

			if nextAt, ok := retryNextAt(record); ok && time.Now().Before(nextAt) {
				select {
				case <-time.After(time.Until(nextAt)):
				case <-ctx.Done():
					return
				}
			}

			newRecord := &kgo.Record{
				Topic:   requestTopicFor(record.Topic),
				Key:     record.Key,
				Value:   record.Value,
				Headers: record.Headers,
			}
			if err := c.client.ProduceSync(ctx, newRecord).FirstErr(); err != nil {
				log.Printf("Failed to requeue retry record: %v", err)
			}
		}
		if err := c.client.CommitRecords(ctx, fetches.Records()...); err != nil {
			log.Printf("Failed to commit retry records: %v", err)
		}
	}
}

func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) processRecord(ctx context.Context, record *kgo.Record) {
	switch record.Topic {
	case TopicClaimRequest:
		c.handleClaim(ctx, record)
	case TopicCreateRequest:
		c.handleCreate(ctx, record)
	}
}

func (c *Consumer) handleClaim(ctx context.Context, record *kgo.Record) {
	var req RequestPayload
	if err := json.Unmarshal(record.Value, &req); err != nil {
		c.sendToDLQ(ctx, record, ErrCodeInvalidInput, "invalid request payload")
		return
	}

	claim, err := c.service.ClaimDeal(ctx, req.UserID, req.DealID)
	if err != nil {
		c.fail(ctx, record, req, err)
		return
	}
	resp := successResponse(req.CorrelationID)
	resp.Claim = claim
	c.sendResponse(ctx, req.ReplyTo, resp)
}

func (c *Consumer) handleCreate(ctx context.Context, record *kgo.Record) {
	var req RequestPayload
	if err := json.Unmarshal(record.Value, &req); err != nil || req.Deal == nil {
		c.sendToDLQ(ctx, record, ErrCodeInvalidInput, "invalid request payload")
		return
	}

	deal, err := c.service.CreateDeal(ctx, *req.Deal)
	if err != nil {
		c.fail(ctx, record, req, err)
		return
	}
	resp := successResponse(req.CorrelationID)
	resp.Deal = deal
	c.sendResponse(ctx, req.ReplyTo, resp)
}

// fail answers domain errors straight away. Internal errors are retried
// until the attempt budget is spent, then dead-lettered.
func (c *Consumer) fail(ctx context.Context, record *kgo.Record, req RequestPayload, err error) {
	code, message := errorCode(err)
	if code != ErrCodeInternalError {
		c.sendResponse(ctx, req.ReplyTo, errorResponse(req.CorrelationID, code, message))
		return
	}

	log.Printf("Request %s on %s failed: %v", req.CorrelationID, record.Topic, err)
	attempt := recordAttempt(record)
	if attempt < c.cfg.MaxAttempts() {
		rerr := c.scheduleRetry(ctx, record, attempt+1)
		if rerr == nil {
			return
		}
		log.Printf("Failed to schedule retry: %v", rerr)
	}
	c.sendToDLQ(ctx, record, code, message)
}

func (c *Consumer) scheduleRetry(ctx context.Context, record *kgo.Record, attempt int) error {
	nextAt := time.Now().Add(time.Duration(attempt) * RetryBackoff)
	retryRecord := &kgo.Record{
		Topic:   retryTopicFor(record.Topic),
		Key:     record.Key,
		Value:   record.Value,
		Headers: withRetryHeaders(record.Headers, nextAt, attempt),
	}
	return c.client.ProduceSync(ctx, retryRecord).FirstErr()
}

func (c *Consumer) sendResponse(ctx context.Context, topic string, resp *ResponsePayload) {
	if topic == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		return
	}
	record := &kgo.Record{
		Topic: topic,
		Value: payload,
	}
	if err := c.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		log.Printf("Failed to send response to %s: %v", topic, err)
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, record *kgo.Record, code, message string) {
	var req RequestPayload
	_ = json.Unmarshal(record.Value, &req)

	c.sendResponse(ctx, req.ReplyTo, errorResponse(req.CorrelationID, code, message))

	dlqRecord := &kgo.Record{
		Topic: record.Topic + TopicDLQSuffix,
		Key:   record.Key,
		Value: record.Value,
		Headers: []kgo.RecordHeader{
			{Key: ErrorHeaderKey, Value: []byte(message)},
		},
	}
	if err := c.client.ProduceSync(ctx, dlqRecord).FirstErr(); err != nil {
		log.Printf("Failed to dead-letter record from %s: %v", record.Topic, err)
	}
}

func retryTopicFor(requestTopic string) string {
	return strings.TrimSuffix(requestTopic, TopicRequestSuffix) + TopicRetrySuffix
}

func requestTopicFor(retryTopic string) string {
	return strings.TrimSuffix(retryTopic, TopicRetrySuffix) + TopicRequestSuffix
}

func headerValue(record *kgo.Record, key string) (string, bool) {
	for _, header := range record.Headers {
		if header.Key == key {
			return string(header.Value), true
		}
	}
	return "", false
}

func retryNextAt(record *kgo.Record) (time.Time, bool) {
	raw, ok := headerValue(record, RetryHeaderNextAt)
	if !ok {
		return time.Time{}, false
	}
	nextAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return nextAt, true
}

// recordAttempt is 1 for a record that has never been retried.
func recordAttempt(record *kgo.Record) int {
	raw, ok := headerValue(record, RetryHeaderAttempt)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func withRetryHeaders(headers []kgo.RecordHeader, nextAt time.Time, attempt int) []kgo.RecordHeader {
	out := make([]kgo.RecordHeader, 0, len(headers)+2)
	for _, h := range headers {
		if h.Key == RetryHeaderNextAt || h.Key == RetryHeaderAttempt {
			continue
		}
		out = append(out, h)
	}
	return append(out,
		kgo.RecordHeader{Key: RetryHeaderNextAt, Value: []byte(nextAt.UTC().Format(time.RFC3339Nano))},
		kgo.RecordHeader{Key: RetryHeaderAttempt, Value: []byte(strconv.Itoa(attempt))},
	)
}

func successResponse(correlationID string) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: 1,
		CorrelationID: correlationID,
		Status:        StatusSuccess,
	}
}

func errorResponse(correlationID, code, message string) *ResponsePayload {
	return &ResponsePayload{
		SchemaVersion: 1,
		CorrelationID: correlationID,
		Status:        StatusError,
		ErrorCode:     code,
		ErrorMessage:  message,
	}
}

// errorCode classifies err into a wire code. Internal errors never carry
// their detail across the wire.
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return ErrCodeInvalidInput, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return ErrCodeUnauthenticated, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return ErrCodeForbidden, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return ErrCodeNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return ErrCodeAlreadyClaimed, err.Error()
	default:
		return ErrCodeInternalError, "internal error"
	}
}
