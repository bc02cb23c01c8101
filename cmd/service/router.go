package service

import (
	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/response"
	"github.com/purekb/purekb/cmd/service/handler"
	"github.com/purekb/purekb/cmd/service/middleware"
	"github.com/purekb/purekb/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.I18n(), response.NewRequestID())
	s.Engine.Use(middleware.Cors)

	s.Engine.GET("/health", s.Health)
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	chat := s.Engine.Group("/chat")
	{
		chat.POST("/ask", s.Ask)
	}

	cleaner := s.Engine.Group("/data_cleaner")
	{
		cleaner.GET("/get_default_prompt", s.GetDefaultPrompt)
		cleaner.POST("/clean_data", s.CleanData)
		cleaner.POST("/clean_image", s.CleanImage)
		cleaner.POST("/save_data", s.SaveData)
		cleaner.GET("/data_list", s.DataList)

		data := cleaner.Group("/data")
		{
			data.GET("/:id", s.GetData)
			data.PUT("/:id", s.UpdateData)
			data.DELETE("/:id", s.DeleteData)
		}
	}
}
