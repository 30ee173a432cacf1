package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/amirda88/gas-cylinder-tracker/internal/dto"
	"github.com/amirda88/gas-cylinder-tracker/internal/model"
	"github.com/amirda88/gas-cylinder-tracker/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardService aggregates inventory counts for the overview page.
// Results are cached briefly in Redis; the dashboard tolerates 60s staleness.
type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo repository.CylinderRepository
	rdb  *redis.Client // nil disables caching
}

func NewDashboardService(repo repository.CylinderRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{repo: repo, rdb: rdb}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byGasType, err := s.repo.CountByGasType(ctx)
	if err != nil {
		return nil, err
	}
	registrations, err := s.repo.RegistrationsPerDay(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.repo.CountWithStatus(ctx, model.StatusReturned, true)
	if err != nil {
		return nil, err
	}
	returned, err := s.repo.CountWithStatus(ctx, model.StatusReturned, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalCount:     total,
		AvailableCount: available,
		ReturnedCount:  returned,
		ByStatus:       byStatus,
		ByGasType:      byGasType,
		Registrations:  registrations,
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}
	return resp, nil
}
