package admin

import (
	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传图片，scene 决定存放目录（carousel/characters/screenshots 等）
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "请选择要上传的文件", nil)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondError(c, response.CodeInternal, "文件上传失败: "+err.Error(), err)
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
