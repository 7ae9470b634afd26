package redis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommander struct {
	mock.Mock
}

func (m *MockCommander) Get(ctx context.Context, key string) *goredis.StringCmd {
	args := m.Called(ctx, key)
	cmd := goredis.NewStringCmd(ctx, "get", key)
	if err := args.Error(1); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}

func (m *MockCommander) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := goredis.NewStatusCmd(ctx, "set", key, value)
	if err := args.Error(0); err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLedgerStore_Read(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMocks    func(m *MockCommander)
		expectedValue string
		expectedFound bool
		expectErr     bool
	}{
		{
			name: "Found",
			setupMocks: func(m *MockCommander) {
				m.On("Get", ctx, "ledger").Return("[]", nil)
			},
			expectedValue: "[]",
			expectedFound: true,
		},
		{
			name: "Missing",
			setupMocks: func(m *MockCommander) {
				m.On("Get", ctx, "ledger").Return("", goredis.Nil)
			},
		},
		{
			name: "ConnectionError",
			setupMocks: func(m *MockCommander) {
				m.On("Get", ctx, "ledger").Return("", errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := new(MockCommander)
			tc.setupMocks(client)
			store := NewLedgerStore(newTestLogger(), client)

			value, found, err := store.Read(ctx, "ledger")
			if tc.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to read ledger snapshot")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectedValue, value)
			assert.Equal(t, tc.expectedFound, found)
			client.AssertExpectations(t)
		})
	}
}

func TestLedgerStore_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(MockCommander)
		client.On("Set", ctx, "ledger", "[]", time.Duration(0)).Return(nil)

		err := NewLedgerStore(newTestLogger(), client).Write(ctx, "ledger", "[]")
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		client := new(MockCommander)
		client.On("Set", ctx, "ledger", "[]", time.Duration(0)).Return(errors.New("READONLY"))

		err := NewLedgerStore(newTestLogger(), client).Write(ctx, "ledger", "[]")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "READONLY")
		client.AssertExpectations(t)
	})
}
