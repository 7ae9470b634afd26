package consumers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageReader struct {
	mock.Mock
}

func (m *MockMessageReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *MockMessageReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageReader) Close() error {
	return m.Called().Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestConsumer(reader MessageReader) *KafkaConsumer {
	return &KafkaConsumer{
		reader:     reader,
		logger:     newTestLogger(),
		topic:      "provenance_events",
		groupID:    "notification-worker-group",
		retryDelay: time.Millisecond,
		done:       make(chan struct{}),
	}
}

func TestNewKafkaConsumer(t *testing.T) {
	cfg := &config.KafkaConfig{
		Brokers:         "localhost:9092",
		ProvenanceTopic: "provenance_events",
		ConsumerGroup:   "test-group",
		MinBytes:        1024,
		MaxBytes:        10240,
		MaxWait:         time.Second,
	}

	consumer := NewKafkaConsumer(context.Background(), newTestLogger(), cfg)
	require.NotNil(t, consumer)
	require.NotNil(t, consumer.reader)
	assert.Equal(t, "provenance_events", consumer.topic)
	assert.Equal(t, "test-group", consumer.groupID)
	require.NoError(t, consumer.Close())
}

func TestKafkaConsumer_Consume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := kafka.Message{Topic: "provenance_events", Key: []byte("DOC-1"), Value: []byte(`{"action":"created"}`), Offset: 1}
	bad := kafka.Message{Topic: "provenance_events", Key: []byte("DOC-2"), Value: []byte(`oops`), Offset: 2}

	reader := new(MockMessageReader)
	reader.On("FetchMessage", mock.Anything).Return(kafka.Message{}, errors.New("broker not available")).Once()
	reader.On("FetchMessage", mock.Anything).Return(good, nil).Once()
	reader.On("FetchMessage", mock.Anything).Return(bad, nil).Once()
	reader.On("FetchMessage", mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled)
	reader.On("CommitMessages", mock.Anything, []kafka.Message{good}).Return(nil).Once()

	var handled []string
	handler := func(_ context.Context, key, value []byte) error {
		handled = append(handled, string(key))
		if string(value) == "oops" {
			return errors.New("cannot decode")
		}
		return nil
	}

	consumer := newTestConsumer(reader)
	require.NoError(t, consumer.Subscribe(ctx, handler))

	select {
	case <-consumer.Done():
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}

	assert.Equal(t, []string{"DOC-1", "DOC-2"}, handled)
	reader.AssertExpectations(t)
	reader.AssertNumberOfCalls(t, "CommitMessages", 1)
}

func TestKafkaConsumer_Close(t *testing.T) {
	t.Run("CloseWithNilReader", func(t *testing.T) {
		consumer := &KafkaConsumer{logger: newTestLogger()}
		require.NoError(t, consumer.Close())
	})

	t.Run("CloseDelegates", func(t *testing.T) {
		reader := new(MockMessageReader)
		reader.On("Close").Return(errors.New("close failed")).Once()
		consumer := newTestConsumer(reader)
		assert.EqualError(t, consumer.Close(), "close failed")
	})
}
