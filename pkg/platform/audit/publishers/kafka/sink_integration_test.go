//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "ocdm/pkg/platform/audit"
	"ocdm/pkg/testutil/containers"
)

type SinkIntegrationSuite struct {
	suite.Suite
	broker string
}

func TestSinkIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SinkIntegrationSuite))
}

func (s *SinkIntegrationSuite) SetupSuite() {
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker
}

func (s *SinkIntegrationSuite) TestPublishIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "ocdm.audit.it"

	producer, err := kgo.NewClient(kgo.SeedBrokers(s.broker), kgo.AllowAutoTopicCreation())
	s.Require().NoError(err)
	defer producer.Close()

	sink := NewSink(producer, topic)
	s.Require().NoError(sink.Publish(ctx, audit.Event{
		ID:        "evt-it",
		Action:    string(audit.EventSessionRegistered),
		SessionID: "session-it",
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal("evt-it", got.ID)
	s.Equal("session-it", string(records[0].Key))
}
