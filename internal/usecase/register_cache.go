package usecase

import (
	"context"
	"encoding/json"

	"github.com/dnoor/kasir/internal/domain"
)

// cacheSnapshot mirrors the latest daily snapshot into the cache so read
// paths (reports, CLI status) can avoid a database round trip. Best
// effort only; the database row is the persisted source.
func (uc *RegisterUseCase) cacheSnapshot(ctx context.Context, data *domain.DailyData) {
	if uc.cache == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, dailyCacheKey(data.Date), payload, dailyCacheTTL); err != nil {
		uc.logger.Debug().Err(err).Str("date", data.Date).Msg("snapshot cache write failed")
	}
}

// CachedDay returns the cached snapshot for a date, falling back to the
// repository on a miss.
func (uc *RegisterUseCase) CachedDay(ctx context.Context, date string) (*domain.DailyData, error) {
	if uc.cache != nil {
		if payload, err := uc.cache.Get(ctx, dailyCacheKey(date)); err == nil && len(payload) > 0 {
			var data domain.DailyData
			if err := json.Unmarshal(payload, &data); err == nil {
				return &data, nil
			}
		}
	}
	return uc.dailyRepo.Get(ctx, date)
}
