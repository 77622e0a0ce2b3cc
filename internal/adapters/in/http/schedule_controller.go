package http

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joseluisinigo/logonhours/internal/config"
	"github.com/joseluisinigo/logonhours/internal/core/domain"
	"github.com/joseluisinigo/logonhours/internal/core/ports/in"
)

type ScheduleController struct {
	useCase in.ScheduleUseCase
	cfg     *config.Config
}

func NewScheduleController(useCase in.ScheduleUseCase, cfg *config.Config) *ScheduleController {
	return &ScheduleController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *ScheduleController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/directory/ous", c.listOrganizationalUnits)
		api.GET("/directory/accounts", c.listAccounts)
		api.POST("/schedule/encode", c.encodeSchedule)
		api.POST("/schedule/apply", c.applySchedule)
	}
}

type EncodeScheduleRequest struct {
	Ranges []in.RangeSpec `json:"ranges" binding:"required"`
}

type ApplyScheduleRequest struct {
	Accounts []string       `json:"accounts" binding:"required,min=1"`
	Ranges   []in.RangeSpec `json:"ranges" binding:"required"`
}

func (c *ScheduleController) listOrganizationalUnits(ctx *gin.Context) {
	ous, err := c.useCase.ListOrganizationalUnits(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"organizationalUnits": ous})
}

func (c *ScheduleController) listAccounts(ctx *gin.Context) {
	ouDN := ctx.Query("ou")
	if ouDN == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing ou query parameter"})
		return
	}

	accounts, err := c.useCase.ListAccounts(ctx.Request.Context(), ouDN)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ou": ouDN, "accounts": accounts})
}

func (c *ScheduleController) encodeSchedule(ctx *gin.Context) {
	var req EncodeScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, advisories, err := c.useCase.EncodeRanges(req.Ranges)
	if err != nil {
		ctx.JSON(statusForScheduleError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logonHours": base64.StdEncoding.EncodeToString(hours.Bytes()),
		"hex":        hex.EncodeToString(hours.Bytes()),
		"allDeny":    hours.IsZero(),
		"advisories": advisories,
	})
}

func (c *ScheduleController) applySchedule(ctx *gin.Context) {
	var req ApplyScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hours, advisories, err := c.useCase.EncodeRanges(req.Ranges)
	if err != nil {
		ctx.JSON(statusForScheduleError(err), gin.H{"error": err.Error()})
		return
	}

	results := c.useCase.Apply(ctx.Request.Context(), req.Accounts, hours)

	applied := 0
	outcomes := make([]gin.H, 0, len(results))
	for _, result := range results {
		outcome := gin.H{"account": result.AccountDN, "ok": result.Err == nil}
		if result.Err != nil {
			outcome["error"] = result.Err.Error()
		} else {
			applied++
		}
		outcomes = append(outcomes, outcome)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"logonHours": base64.StdEncoding.EncodeToString(hours.Bytes()),
		"allDeny":    hours.IsZero(),
		"advisories": advisories,
		"applied":    applied,
		"failed":     len(results) - applied,
		"results":    outcomes,
	})
}

// statusForScheduleError maps the recoverable input errors to 400; anything
// else is a server fault.
func statusForScheduleError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrInvalidDayToken),
		errors.Is(err, domain.ErrInvalidTimeOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (c *ScheduleController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
