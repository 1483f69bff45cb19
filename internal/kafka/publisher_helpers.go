package kafka

import (
	"context"
	"time"
)

// sleepWithBackoff ждет backoff или останавливается по контексту.
func sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (p *Publisher) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > p.retryMax {
		return p.retryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайная.
func (p *Publisher) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	p.randMu.Lock()
	jitter := time.Duration(p.jitterRand.Int63n(int64(d-half) + 1))
	p.randMu.Unlock()
	return half + jitter
}
