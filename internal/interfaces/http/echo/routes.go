package echo

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles everything RegisterRoutes wires onto the server.
type Handlers struct {
	Faithful   *FaithfulHandler
	Households *HouseholdHandler
	Mosques    *MosqueHandler
	Imams      *ImamHandler
	Auth       *AuthHandler
	Imports    *ImportHandler
	Files      *FilesHandler
	Guard      echo.MiddlewareFunc
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api/v1")

	api.POST("/faithful", h.Faithful.Register)
	api.GET("/faithful", h.Faithful.List)
	api.GET("/faithful/:id", h.Faithful.Get)
	api.PUT("/faithful/:id", h.Faithful.Update)
	api.DELETE("/faithful", h.Faithful.Delete)

	api.POST("/households", h.Households.Register)
	api.GET("/households", h.Households.List)
	api.GET("/households/:id", h.Households.Get)
	api.PUT("/households/:id", h.Households.Update)
	api.DELETE("/households/:id", h.Households.Delete)

	api.POST("/mosques", h.Mosques.Register)
	api.GET("/mosques", h.Mosques.List)
	api.GET("/mosques/:id", h.Mosques.Get)
	api.PUT("/mosques/:id", h.Mosques.Update)
	api.DELETE("/mosques/:id", h.Mosques.Delete)

	api.POST("/imams", h.Imams.Register)
	api.GET("/imams", h.Imams.List)
	api.GET("/imams/:id", h.Imams.Get)
	api.PUT("/imams/:id", h.Imams.Update)
	api.DELETE("/imams/:id", h.Imams.Delete)
	api.POST("/imams/:id/reassign", h.Imams.Reassign)

	api.POST("/auth/send-otp", h.Auth.SendOTP)
	api.POST("/auth/verify-otp", h.Auth.VerifyOTP)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
	api.POST("/auth/reset-password", h.Auth.ResetPassword)

	api.POST("/import/:entity", h.Imports.Import)

	e.GET("/private/files/:name", h.Files.Download, h.Guard)
}
