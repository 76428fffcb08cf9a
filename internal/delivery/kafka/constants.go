package kafka

import "time"

const (
	TopicClaimRequest  = "deal.claim.req"
	TopicCreateRequest = "deal.create.req"
	TopicClaimRetry    = "deal.claim.retry"
	TopicCreateRetry   = "deal.create.retry"
	TopicReplyPrefix   = "deal.reply."
	TopicRequestSuffix = ".req"
	TopicRetrySuffix   = ".retry"
	TopicDLQSuffix     = ".dlq"

	RequestTimeout = 3 * time.Second
	RetryBackoff   = 250 * time.Millisecond

	RetryHeaderNextAt  = "x-next-at"
	RetryHeaderAttempt = "x-attempt"
	ErrorHeaderKey     = "x-error"
)
