package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	v1 "github.com/purekb/purekb/app/logic/v1"
	"github.com/purekb/purekb/app/response"
	"github.com/purekb/purekb/pkg/utils"
)

type AskRequest struct {
	Question     string `json:"question" binding:"required"`
	SystemPrompt string `json:"system_prompt"`
	Language     string `json:"language"`
}

func (s *HttpSrv) Ask(c *gin.Context) {
	var req AskRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		s.apiError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.Core.RequestTimeout())
	defer cancel()

	resp, err := v1.NewChatLogic(ctx, s.Core).Ask(v1.AskArgs{
		Question:     req.Question,
		SystemPrompt: req.SystemPrompt,
		Language:     req.Language,
	})
	if err != nil {
		s.apiError(c, err)
		return
	}
	response.APISuccess(c, resp)
}
