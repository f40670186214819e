package services

import (
	"context"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/domain/dto"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type StatsService struct {
	ctx       context.Context
	mylog     mylogger.Logger
	statsRepo ports.IStatsRepo
}

func NewStatsService(ctx context.Context, mylog mylogger.Logger, statsRepo ports.IStatsRepo) ports.IStatsService {
	return &StatsService{
		ctx:       ctx,
		mylog:     mylog,
		statsRepo: statsRepo,
	}
}

func (ss *StatsService) Dashboard(userID, role string) (dto.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ss.ctx, time.Second*15)
	defer cancel()

	stats, err := ss.statsRepo.Dashboard(ctx, userID, role)
	if err != nil {
		ss.mylog.Action("Dashboard").Error("cannot build dashboard", err, "user_id", userID)
		return dto.DashboardStats{}, err
	}
	return stats, nil
}
