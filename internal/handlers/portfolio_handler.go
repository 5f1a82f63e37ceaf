package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/middleware"
	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/service"
)

type PortfolioHandler struct {
	portfolios *service.PortfolioService
	log        *logger.Logger
}

func NewPortfolioHandler(portfolios *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolios: portfolios,
		log:        logger.New("portfolio-handler"),
	}
}

func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := middleware.GetUserID(r.Context())

	portfolio, err := h.portfolios.Create(r.Context(), userID, &req)
	if err != nil {
		var ve service.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("Portfolio creation failed: %v", err)
		http.Error(w, "Error creating portfolio", http.StatusInternalServerError)
		return
	}

	h.log.Info("Portfolio created for user %s", userID)
	respondJSON(w, http.StatusCreated, portfolio)
}

func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	portfolio, err := h.portfolios.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPortfolioNotFound) {
			http.Error(w, "Portfolio not found", http.StatusNotFound)
			return
		}
		h.log.Error("Portfolio fetch failed: %v", err)
		http.Error(w, "Error fetching portfolio", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, portfolio)
}
