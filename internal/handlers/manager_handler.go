package handlers

import (
	"net/http"

	"ehandout_backend/internal/services"
	"ehandout_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ManagerHandler struct {
	*BaseHandler
	managerService services.ManagerService
}

func NewManagerHandler(base *BaseHandler, managerService services.ManagerService) *ManagerHandler {
	return &ManagerHandler{
		BaseHandler:    base,
		managerService: managerService,
	}
}

func (h *ManagerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manager := rg.Group("/manager")
	{
		manager.POST("/verifyActivationCode", h.VerifyActivationCode)
	}
}

func (h *ManagerHandler) VerifyActivationCode(c *gin.Context) {
	var req dto.VerifyActivationCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.managerService.VerifyActivationCode(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Activation code verified.",
		"manager": resp,
	})
}
