package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/services"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type ClientHandler struct {
	log           *logger.Logger
	clientService services.ClientService
}

func NewClientHandler(log *logger.Logger, clientService services.ClientService) *ClientHandler {
	return &ClientHandler{
		log:           log.With("handler", "ClientHandler"),
		clientService: clientService,
	}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req struct {
		Name             string         `json:"name"`
		Industry         string         `json:"industry"`
		RiskScore        float64        `json:"risk_score"`
		ReadinessPercent float64        `json:"readiness_percent"`
		Gaps             []string       `json:"gaps"`
		Metadata         map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), nil, &types.Client{
		Name:             req.Name,
		Industry:         req.Industry,
		RiskScore:        req.RiskScore,
		ReadinessPercent: req.ReadinessPercent,
		Gaps:             datatypes.NewJSONSlice(req.Gaps),
		Metadata:         datatypes.JSONMap(req.Metadata),
	})
	if err != nil {
		h.log.Error("CreateClient failed", "error", err)
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"client": client})
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_client_id", err)
		return
	}
	overview, err := h.clientService.GetClientOverview(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, overview)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListClients failed", "error", err)
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"clients": clients})
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_client_id", err)
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	fields := map[string]interface{}{}
	for _, key := range []string{"name", "industry", "risk_score", "readiness_percent"} {
		if v, ok := req[key]; ok {
			fields[key] = v
		}
	}
	if len(fields) == 0 {
		RespondError(c, http.StatusBadRequest, "no_updatable_fields", nil)
		return
	}
	client, err := h.clientService.UpdateClient(c.Request.Context(), nil, id, fields)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"client": client})
}
