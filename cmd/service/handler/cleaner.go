package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/purekb/purekb/app/logic/v1"
	"github.com/purekb/purekb/app/response"
	"github.com/purekb/purekb/pkg/errors"
	"github.com/purekb/purekb/pkg/i18n"
	"github.com/purekb/purekb/pkg/types"
	"github.com/purekb/purekb/pkg/utils"
)

func (s *HttpSrv) GetDefaultPrompt(c *gin.Context) {
	result := v1.NewCleanerLogic(c.Request.Context(), s.Core).DefaultPrompt(c.Query("language"), c.Query("type"))
	response.APISuccess(c, result)
}

type CleanDataRequest struct {
	Text         string `json:"text" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
}

func (s *HttpSrv) CleanData(c *gin.Context) {
	var req CleanDataRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		s.apiError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.Core.RequestTimeout())
	defer cancel()

	result, err := v1.NewCleanerLogic(ctx, s.Core).Clean(req.Text, req.SystemPrompt)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type CleanImageRequest struct {
	Image        string `json:"image" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
}

func (s *HttpSrv) CleanImage(c *gin.Context) {
	var req CleanImageRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		s.apiError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.Core.RequestTimeout())
	defer cancel()

	result, err := v1.NewCleanerLogic(ctx, s.Core).CleanImage(req.Image, req.SystemPrompt)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type SaveDataRequest struct {
	OriginalText string         `json:"original_text" binding:"required"`
	CleanedData  types.ChunkSet `json:"cleaned_data"`
}

func (s *HttpSrv) SaveData(c *gin.Context) {
	var req SaveDataRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		s.apiError(c, err)
		return
	}

	result, err := v1.NewCleanerLogic(c.Request.Context(), s.Core).Save(req.OriginalText, req.CleanedData)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) DataList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := v1.NewCleanerLogic(c.Request.Context(), s.Core).List(limit, offset)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func recordID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(fmt.Sprintf("Handler.RecordID.%s", c.Request.URL.Path), i18n.ERROR_INVALIDARGUMENT, fmt.Errorf("invalid record id %q", c.Param("id"))).Code(http.StatusBadRequest)
	}
	return id, nil
}

func (s *HttpSrv) GetData(c *gin.Context) {
	id, err := recordID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}

	result, err := v1.NewCleanerLogic(c.Request.Context(), s.Core).Get(id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type UpdateDataRequest struct {
	CleanedData types.ChunkSet `json:"cleaned_data"`
}

func (s *HttpSrv) UpdateData(c *gin.Context) {
	id, err := recordID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}

	var req UpdateDataRequest
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		s.apiError(c, err)
		return
	}

	result, err := v1.NewCleanerLogic(c.Request.Context(), s.Core).Update(id, req.CleanedData)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) DeleteData(c *gin.Context) {
	id, err := recordID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}

	result, err := v1.NewCleanerLogic(c.Request.Context(), s.Core).Delete(id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, result)
}
