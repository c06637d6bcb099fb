package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"redacao_service/internal/service"
)

type RankingHandler struct {
	ranking *service.RankingService
}

func NewRankingHandler(ranking *service.RankingService) *RankingHandler {
	return &RankingHandler{ranking: ranking}
}

func (h *RankingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Leaderboard)
}

type leaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	StudentName string `json:"student_name"`
	Total       int    `json:"total"`
}

func (h *RankingHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSubmissionFilter(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	board, err := h.ranking.Leaderboard(r.Context(), filter)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]leaderboardEntryResponse, 0, len(board))
	for _, entry := range board {
		resp = append(resp, leaderboardEntryResponse{
			Rank:        entry.Rank,
			StudentName: entry.StudentName,
			Total:       entry.Total,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": resp})
}
