package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unohub/unohub/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Pages     *PageHandler
	Finance   *FinanceHandler
	Todos     *TodoHandler
	Events    *EventHandler
	Habits    *HabitHandler
	Diet      *DietHandler
	Export    *ExportHandler
	Files     *FileHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authLimit := middleware.RateLimit(time.Second)
	api.POST("/auth/register", authLimit, deps.Auth.Register)
	api.POST("/auth/login", authLimit, deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.GET("/auth/me", deps.Auth.Me)

	authGroup.GET("/pages", deps.Pages.List)
	authGroup.GET("/pages/tree", deps.Pages.Tree)
	authGroup.POST("/pages", deps.Pages.Create)
	authGroup.GET("/pages/:id", deps.Pages.Get)
	authGroup.GET("/pages/:id/resolve", deps.Pages.Resolve)
	authGroup.PUT("/pages/:id/title", deps.Pages.Rename)
	authGroup.PUT("/pages/:id/content", deps.Pages.UpdateContent)
	authGroup.PUT("/pages/:id/icon", deps.Pages.UpdateIcon)
	authGroup.PUT("/pages/:id/move", deps.Pages.Move)
	authGroup.POST("/pages/:id/archive", deps.Pages.Archive)
	authGroup.POST("/pages/:id/restore", deps.Pages.Restore)
	authGroup.DELETE("/pages/:id", deps.Pages.Delete)

	authGroup.GET("/finance/transactions", deps.Finance.ListTransactions)
	authGroup.POST("/finance/transactions", deps.Finance.CreateTransaction)
	authGroup.DELETE("/finance/transactions/:id", deps.Finance.DeleteTransaction)
	authGroup.GET("/finance/recurring", deps.Finance.ListRecurring)
	authGroup.POST("/finance/recurring", deps.Finance.CreateRecurring)
	authGroup.DELETE("/finance/recurring/:id", deps.Finance.DeleteRecurring)
	authGroup.GET("/finance/processed", deps.Finance.ProcessedMonths)
	authGroup.POST("/finance/recurring/process", deps.Finance.ProcessMonth)
	authGroup.GET("/finance/summary", deps.Finance.Summary)

	authGroup.GET("/todos", deps.Todos.List)
	authGroup.POST("/todos", deps.Todos.Create)
	authGroup.PUT("/todos/:id", deps.Todos.Update)
	authGroup.PUT("/todos/:id/complete", deps.Todos.SetCompleted)
	authGroup.DELETE("/todos/:id", deps.Todos.Delete)

	authGroup.GET("/events", deps.Events.List)
	authGroup.POST("/events", deps.Events.Create)
	authGroup.PUT("/events/:id", deps.Events.Update)
	authGroup.DELETE("/events/:id", deps.Events.Delete)

	authGroup.GET("/habits", deps.Habits.List)
	authGroup.POST("/habits", deps.Habits.Create)
	authGroup.PUT("/habits/:id", deps.Habits.Update)
	authGroup.DELETE("/habits/:id", deps.Habits.Delete)
	authGroup.GET("/habits/logs", deps.Habits.Logs)
	authGroup.POST("/habits/:id/toggle", deps.Habits.Toggle)

	authGroup.GET("/diet/profile", deps.Diet.Profile)
	authGroup.PUT("/diet/profile", deps.Diet.PutProfile)
	authGroup.GET("/diet/day", deps.Diet.Day)
	authGroup.POST("/diet/meals", deps.Diet.AddMeal)
	authGroup.DELETE("/diet/meals/:id", deps.Diet.DeleteMeal)
	authGroup.POST("/diet/water", deps.Diet.AddWater)
	authGroup.GET("/diet/foods", deps.Diet.SearchFoods)
	authGroup.POST("/diet/foods", deps.Diet.AddFood)

	authGroup.GET("/export", deps.Export.Export)
	authGroup.GET("/export/notes", deps.Export.ExportNotes)
	authGroup.POST("/files/upload", deps.Files.Upload)

	api.GET("/files/:key", deps.Files.Get)
}
