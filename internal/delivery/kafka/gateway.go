package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/azizikri/startup-deals/internal/config"
	"github.com/azizikri/startup-deals/internal/domain"
	"github.com/azizikri/startup-deals/internal/usecase"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrReplyTimeout = errors.New("timeout waiting for response")

// Gateway sends claims and deal creation through Kafka request/reply. Reads
// are served by the local gateway.
type Gateway struct {
	client      *kgo.Client
	cfg         *config.Config
	local       usecase.MarketplaceGateway
	pendingResp sync.Map
}

func NewGateway(cfg *config.Config, client *kgo.Client, local usecase.MarketplaceGateway) *Gateway {
	return &Gateway{
		client: client,
		cfg:    cfg,
		local:  local,
	}
}

func (g *Gateway) ClaimDeal(ctx context.Context, userID, dealID string) (*domain.Claim, error) {
	req := g.newRequest()
	req.UserID = userID
	req.DealID = dealID

	resp, err := g.requestReply(ctx, TopicClaimRequest, []byte(dealID+":"+userID), req)
	if err != nil {
		return nil, err
	}
	if resp.Status == StatusError {
		return nil, errorFromCode(resp.ErrorCode, resp.ErrorMessage)
	}
	if resp.Claim == nil {
		return nil, errors.New("empty claim in response")
	}
	return resp.Claim, nil
}

func (g *Gateway) CreateDeal(ctx context.Context, deal domain.NewDeal) (*domain.Deal, error) {
	req := g.newRequest()
	req.Deal = &deal

	resp, err := g.requestReply(ctx, TopicCreateRequest, []byte(deal.PartnerName), req)
	if err != nil {
		return nil, err
	}
	if resp.Status == StatusError {
		return nil, errorFromCode(resp.ErrorCode, resp.ErrorMessage)
	}
	if resp.Deal == nil {
		return nil, errors.New("empty deal in response")
	}
	return resp.Deal, nil
}

func (g *Gateway) ListMyClaims(ctx context.Context, userID string) ([]domain.ClaimDetails, error) {
	return g.local.ListMyClaims(ctx, userID)
}

func (g *Gateway) ListAllClaims(ctx context.Context) ([]domain.ClaimDetails, error) {
	return g.local.ListAllClaims(ctx)
}

func (g *Gateway) ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error) {
	return g.local.ListDeals(ctx, filter)
}

func (g *Gateway) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	return g.local.GetDeal(ctx, id)
}

func (g *Gateway) newRequest() RequestPayload {
	return RequestPayload{
		SchemaVersion: 1,
		CorrelationID: uuid.New().String(),
		ReplyTo:       ReplyTopic(g.cfg.KafkaInstanceID),
	}
}

func (g *Gateway) requestReply(ctx context.Context, topic string, key []byte, req RequestPayload) (*ResponsePayload, error) {
	respChan := make(chan *ResponsePayload, 1)
	g.pendingResp.Store(req.CorrelationID, respChan)
	defer g.pendingResp.Delete(req.CorrelationID)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	record := &kgo.Record{
		Topic: topic,
		Key:   key,
		Value: payload,
	}

	if err := g.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(RequestTimeout)
	defer timer.Stop()

	select {
	case resp := <-respChan:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrReplyTimeout
	}
}

// HandleResponse hands a reply to the request waiting on its correlation id.
func (g *Gateway) HandleResponse(payload []byte) {
	var resp ResponsePayload
	if err := json.Unmarshal(payload, &resp); err != nil {
		log.Printf("Failed to decode response payload: %v", err)
		return
	}

	if ch, ok := g.pendingResp.Load(resp.CorrelationID); ok {
		select {
		case ch.(chan *ResponsePayload) <- &resp:
		default:
			log.Printf("Duplicate response for correlation ID %s", resp.CorrelationID)
		}
		return
	}

	log.Printf("No pending response for correlation ID %s", resp.CorrelationID)
}

// remoteError keeps the consumer's message while matching the domain
// sentinel under errors.Is.
type remoteError struct {
	kind    error
	message string
}

func (e *remoteError) Error() string { return e.message }
func (e *remoteError) Unwrap() error { return e.kind }

func errorFromCode(code, message string) error {
	var kind error
	switch code {
	case ErrCodeInvalidInput:
		kind = domain.ErrInvalidInput
	case ErrCodeUnauthenticated:
		kind = domain.ErrUnauthenticated
	case ErrCodeForbidden:
		kind = domain.ErrForbidden
	case ErrCodeNotFound:
		kind = domain.ErrNotFound
	case ErrCodeAlreadyClaimed:
		kind = domain.ErrAlreadyClaimed
	default:
		return errors.New(message)
	}
	if message == "" {
		return kind
	}
	return &remoteError{kind: kind, message: message}
}

var _ usecase.MarketplaceGateway = (*Gateway)(nil)
