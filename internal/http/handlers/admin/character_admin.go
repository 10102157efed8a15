package admin

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// CharacterUpsertRequest 角色创建/更新请求
type CharacterUpsertRequest struct {
	Name        string `json:"name" binding:"required"`
	Avatar      string `json:"avatar" binding:"required"`
	Personality string `json:"personality"`
	Description string `json:"description" binding:"required"`
	Background  string `json:"background"`
}

func (r CharacterUpsertRequest) toInput() service.CharacterInput {
	return service.CharacterInput{
		Name:        r.Name,
		Avatar:      r.Avatar,
		Personality: r.Personality,
		Description: r.Description,
		Background:  r.Background,
	}
}

// GetAdminCharacters 获取后台角色列表
func (h *Handler) GetAdminCharacters(c *gin.Context) {
	characters, err := h.CharacterService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "角色列表获取失败", err)
		return
	}
	response.Success(c, characters)
}

// CreateCharacter 创建角色
func (h *Handler) CreateCharacter(c *gin.Context) {
	var req CharacterUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	character, err := h.CharacterService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err, "角色创建失败")
		return
	}
	response.Success(c, character)
}

// UpdateCharacter 更新角色
func (h *Handler) UpdateCharacter(c *gin.Context) {
	var req CharacterUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	character, err := h.CharacterService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "角色更新失败")
		return
	}
	response.Success(c, character)
}

// DeleteCharacter 删除角色
func (h *Handler) DeleteCharacter(c *gin.Context) {
	if err := h.CharacterService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "角色删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
