package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/purekb/purekb/pkg/errors"
	"github.com/purekb/purekb/pkg/i18n"
	"github.com/purekb/purekb/pkg/utils"
)

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("i18n", l)
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	return c.MustGet("i18n").(i18n.Localizer)
}

const RequestIDKey = "request_id"

// ErrorBody 对外的统一失败结构
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func GetLangFromRequestOrDefault(c *gin.Context) string {
	lang := c.Request.Header.Get("Accept-Language")
	if lang == "zh" {
		lang = "zh-CN"
	}
	if i18n.ALLOW_LANG[lang] {
		return lang
	}
	return i18n.DEFAULT_LANG
}

// APIError api响应失败
func APIError(c *gin.Context, err error) {
	c.Abort()
	l := InjectResponseLocalizer(c)

	var (
		httpStatus int
		message    string
	)
	if cerrptr, ok := err.(*errors.CustomizedError); !ok {
		httpStatus = http.StatusInternalServerError
		message = err.Error()
	} else {
		httpStatus = cerrptr.GetCode()
		message = l.Get(GetLangFromRequestOrDefault(c), cerrptr.Message())
	}

	c.JSON(httpStatus, ErrorBody{
		Success: false,
		Error:   message,
	})
	printErrorLog(c, httpStatus, err)
}

func printErrorLog(c *gin.Context, status int, err error) {
	slog.Error("response error",
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("request_uri", c.Request.URL.Path),
		slog.Int64("end_time", time.Now().Unix()),
		slog.Int("code", status),
		slog.String("error", err.Error()))
}

func printSuccessLog(c *gin.Context) {
	slog.Info("request success",
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("request_uri", c.Request.URL.Path),
		slog.Int64("end_time", time.Now().Unix()),
		slog.String("params", c.Request.URL.Query().Encode()))
}

// APISuccess api响应成功，body 由各接口自带 success 字段
func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	c.JSON(http.StatusOK, response)
	printSuccessLog(c)
}

// NewRequestID 为每个请求生成日志关联ID
func NewRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RequestIDKey, utils.GenRandomID())
	}
}
