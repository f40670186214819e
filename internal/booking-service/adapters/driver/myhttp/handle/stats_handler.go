package handle

import (
	"net/http"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
)

type StatsHandler struct {
	statsService ports.IStatsService
	log          mylogger.Logger
}

func NewStatsHandler(ss ports.IStatsService, log mylogger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: ss,
		log:          log,
	}
}

func (sh *StatsHandler) Dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := sh.statsService.Dashboard(userID(r), userRole(r))
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
