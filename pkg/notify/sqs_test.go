package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/notify/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSQSPublisher(t *testing.T) {
	event := notify.Event{Type: notify.EventPlayerJoined, MatchID: "m1", UserIDs: []string{"user1"}}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var got notify.Event
			if err := json.Unmarshal([]byte(*in.MessageBody), &got); err != nil {
				return false
			}
			return *in.QueueUrl == "queue-url" &&
				got.Type == notify.EventPlayerJoined &&
				*in.MessageAttributes["event_type"].StringValue == string(notify.EventPlayerJoined)
		})).Return(&sqs.SendMessageOutput{}, nil)

		publisher := notify.NewSQSPublisher(mockClient, "queue-url")
		err := publisher.Publish(context.Background(), event)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Send Fails", func(t *testing.T) {
		mockClient := new(mocks.SQSAPI)
		mockClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("queue unavailable"))

		publisher := notify.NewSQSPublisher(mockClient, "queue-url")
		err := publisher.Publish(context.Background(), event)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
		mockClient.AssertExpectations(t)
	})
}
