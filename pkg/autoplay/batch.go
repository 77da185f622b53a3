package autoplay

import (
	"context"
	"sync"

	"github.com/play/guandan/pkg/guandan"
)

// SimulateBatch 并发自对弈
// 每局种子为 baseSeed+局序号，整批结果可以逐局重放复查
// concurrency 控制同时进行的局数，令牌用完的提交会阻塞等待
func (r *Runner) SimulateBatch(ctx context.Context, playerOrder []string, levelRank guandan.Rank, baseSeed uint64, games, concurrency int) ([]*Result, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*Result, games)
	errs := make([]error, games)
	tickets := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < games; i++ {
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case tickets <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-tickets }()
			results[idx], errs[idx] = r.Simulate(ctx, playerOrder, levelRank, baseSeed+uint64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
