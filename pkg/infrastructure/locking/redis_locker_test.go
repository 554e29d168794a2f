package locking

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })

	logger, _ := logtest.NewNullLogger()
	locker := NewRedisLocker(client, time.Second, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	unlock, err := locker.Lock(ctx, ProductKey("BOLT_M12"))
	require.Error(t, err)
	assert.Nil(t, unlock)
	assert.Contains(t, err.Error(), "acquire redis lock poengine:lock:product:BOLT_M12")
}
