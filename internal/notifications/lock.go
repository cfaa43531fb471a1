package notifications

import (
	"context"
	"sync"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// LocalLock serializes passes within one process.
type LocalLock struct {
	mu sync.Mutex
}

func (l *LocalLock) TryLock(_ context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, model.ErrPassInProgress
	}
	return l.mu.Unlock, nil
}
