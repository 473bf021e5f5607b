package api

import (
	"github.com/gin-gonic/gin"

	"spendbot/config"
	"spendbot/database"
	"spendbot/middleware"
	"spendbot/models"
	"spendbot/tokens"
)

// TokenHandler 令牌处理器：发放访问令牌、校验 PIN、签发会话令牌
type TokenHandler struct {
	store tokens.Store
}

// NewTokenHandler 创建令牌处理器
func NewTokenHandler(store tokens.Store) *TokenHandler {
	return &TokenHandler{store: store}
}

// CreateAccessTokenRequest 发放访问令牌请求，由机器人进程调用
type CreateAccessTokenRequest struct {
	OwnerID     string `json:"owner_id" binding:"required" example:"6591234567"`
	DisplayName string `json:"display_name" example:"Alice"`
	Secret      string `json:"secret" binding:"required"`
}

// VerifyPinRequest PIN 校验请求
type VerifyPinRequest struct {
	Token string `json:"token" binding:"required"`
	Pin   string `json:"pin" binding:"required,len=4"`
}

// CreateAccessToken 发放仪表盘访问令牌
// @Summary 发放访问令牌
// @Description 机器人进程凭共享密钥为用户签发短时访问令牌
// @Tags 令牌
// @Accept json
// @Produce json
// @Param request body CreateAccessTokenRequest true "令牌请求"
// @Success 200 {object} map[string]interface{} "发放成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "密钥错误"
// @Router /api/create-access-token [post]
func (h *TokenHandler) CreateAccessToken(c *gin.Context) {
	var req CreateAccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}

	cfg := config.GetConfig()
	if cfg.Dashboard.SharedSecret == "" || req.Secret != cfg.Dashboard.SharedSecret {
		Unauthorized(c, "Invalid secret")
		return
	}

	// 首次见到该用户时建档
	var user models.User
	err := database.DB.Where("owner_id = ?", req.OwnerID).
		Attrs(models.User{OwnerID: req.OwnerID, DisplayName: req.DisplayName, CurrencySymbol: "$"}).
		FirstOrCreate(&user).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create token"))
		return
	}

	token, err := h.store.Issue(req.OwnerID, cfg.Dashboard.AccessTokenTTL)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create token"))
		return
	}

	c.JSON(200, gin.H{
		"token":      token,
		"expires_in": int(cfg.Dashboard.AccessTokenTTL.Seconds()),
	})
}

// VerifyPin 校验 PIN，通过后签发会话令牌
// @Summary 校验 PIN
// @Description 持有效访问令牌并提供正确 PIN 后，签发 24 小时会话令牌
// @Tags 令牌
// @Accept json
// @Produce json
// @Param request body VerifyPinRequest true "PIN 校验请求"
// @Success 200 {object} map[string]interface{} "校验通过"
// @Failure 401 {object} ErrorResponse "令牌或 PIN 错误"
// @Router /api/verify-pin [post]
func (h *TokenHandler) VerifyPin(c *gin.Context) {
	var req VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Invalid request"))
		return
	}

	ownerID, ok := h.store.Resolve(req.Token)
	if !ok {
		Unauthorized(c, "Invalid or expired token")
		return
	}

	var user models.User
	if err := database.DB.Where("owner_id = ?", ownerID).First(&user).Error; err != nil {
		Unauthorized(c, "Invalid or expired token")
		return
	}

	if !user.HasPin() || !user.CheckPin(req.Pin) {
		Unauthorized(c, "Incorrect PIN")
		return
	}

	cfg := config.GetConfig()
	session, err := middleware.GenerateSessionToken(ownerID, cfg.Dashboard.SessionTTL)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create session"))
		return
	}

	c.JSON(200, gin.H{
		"session_token": session,
		"expires_in":    int(cfg.Dashboard.SessionTTL.Seconds()),
	})
}

// HasPin 查询当前用户是否已设置 PIN
// @Summary 查询 PIN 状态
// @Tags 令牌
// @Produce json
// @Param token query string true "访问令牌"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/has-pin [get]
func (h *TokenHandler) HasPin(c *gin.Context) {
	ownerID := middleware.GetCurrentOwnerID(c)

	var user models.User
	if err := database.DB.Where("owner_id = ?", ownerID).First(&user).Error; err != nil {
		NotFound(c, "User not found")
		return
	}

	c.JSON(200, gin.H{"has_pin": user.HasPin()})
}
