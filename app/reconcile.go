package app

import (
	"context"
	"encoding/json"

	appconfig "github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
)

// reconcileAlert surfaces a payment event the ledger could not apply. The
// alert always hits the log; when RECONCILE_QUEUE_URL is set it is also
// published to SQS for the operator workflow.
func reconcileAlert(ctx context.Context, alert models.ReconcileAlert) {
	log.Warn().
		Str("event_id", alert.EventID).
		Str("consultation_id", alert.ConsultationID).
		Str("payment_intent", alert.PaymentIntent).
		Str("reason", alert.Reason).
		Msg("payment reconciliation required")

	cfg, err := appconfig.LoadConfig()
	if err != nil || cfg.QueueURL == "" {
		return
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("failed to load AWS config for reconcile queue: %v", err)
		return
	}

	body, err := json.Marshal(alert)
	if err != nil {
		log.Printf("failed to marshal reconcile alert event=%s: %v", alert.EventID, err)
		return
	}

	sqsClient := sqs.NewFromConfig(awsCfg)
	_, err = sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    &cfg.QueueURL,
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		log.Printf("failed to send reconcile alert event=%s: %v", alert.EventID, err)
	}
}
