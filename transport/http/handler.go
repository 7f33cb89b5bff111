package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/bridge"
	"github.com/kochabx/jwekit/errors"
	"github.com/kochabx/jwekit/transport/http/response"
)

// ReasonInvalidArgument 请求参数校验失败
const ReasonInvalidArgument = "INVALID_ARGUMENT"

// EncryptRequest 加密请求，data 为明文
type EncryptRequest struct {
	KeyID      string `json:"keyId" validate:"omitempty,kid"`
	PublicKey  string `json:"publicKey" validate:"required,p256pub"`
	PrivateKey string `json:"privateKey" validate:"required,p256priv"`
	Data       string `json:"data"`
}

// DecryptRequest 解密请求，data 为紧凑 JWE
// serverPublicKey 可选，用于校验可信签发方签名的内层 JWT
// 密钥只校验非空：kid 不匹配必须先于任何密钥解析返回，密钥格式由 bridge 在 kid 校验之后检查
type DecryptRequest struct {
	KeyID           string `json:"keyId" validate:"required,kid"`
	PublicKey       string `json:"publicKey" validate:"required"`
	PrivateKey      string `json:"privateKey" validate:"required"`
	ServerPublicKey string `json:"serverPublicKey"`
	Data            string `json:"data" validate:"required,jwe"`
}

// Handler 会话加解密接口
type Handler struct {
	bridge *bridge.Bridge
}

func NewHandler(b *bridge.Bridge) *Handler {
	if b == nil {
		b = bridge.Default
	}
	return &Handler{bridge: b}
}

// Register 注册 /v1/session 路由，middlewares 只作用于该分组
func (h *Handler) Register(r gin.IRouter, middlewares ...gin.HandlerFunc) {
	g := r.Group("/v1/session", middlewares...)
	g.POST("/keypair", h.KeyPair)
	g.POST("/encrypt", h.Encrypt)
	g.POST("/decrypt", h.Decrypt)
}

// KeyPair 生成会话密钥对
func (h *Handler) KeyPair(c *gin.Context) {
	response.GinJSON(c, h.bridge.CreateKeyPair())
}

// Encrypt 加密明文
func (h *Handler) Encrypt(c *gin.Context) {
	var req EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.GinJSONE(c, bindError(err))
		return
	}

	token, err := h.bridge.Encrypt(req.KeyID, req.PrivateKey, req.PublicKey, req.Data)
	if err != nil {
		response.GinJSONE(c, err)
		return
	}
	response.GinJSON(c, token)
}

// Decrypt 解密 JWE
func (h *Handler) Decrypt(c *gin.Context) {
	var req DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.GinJSONE(c, bindError(err))
		return
	}

	var opts []bridge.DecryptOption
	if req.ServerPublicKey != "" {
		opts = append(opts, bridge.WithServerPublicKey(req.ServerPublicKey))
	}

	data, err := h.bridge.Decrypt(req.KeyID, req.PrivateKey, req.PublicKey, req.Data, opts...)
	if err != nil {
		response.GinJSONE(c, err)
		return
	}
	response.GinJSON(c, data)
}

// bindError 校验错误的消息已翻译且不含字段值，可以直接返回
func bindError(err error) error {
	return errors.BadRequest("%s", err.Error()).WithReason(ReasonInvalidArgument).WithCause(err)
}
