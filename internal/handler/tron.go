package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"tron-wallet-core/internal/handler/response"
	"tron-wallet-core/pkg/errno"
	"tron-wallet-core/pkg/wallet/types"
)

// Signer 是 HTTP 桥接依赖的签名服务
type Signer interface {
	SignTx(ctx context.Context, req *types.SignTxRequest) (*types.SignedTx, error)
	GetAddress(ctx context.Context, path []uint32, show bool) (*types.Address, error)
}

type TronHandler struct {
	signer Signer
}

func NewTronHandler(signer Signer) *TronHandler {
	return &TronHandler{signer: signer}
}

// SignTx 签名交易
// POST /api/v1/tron/sign
func (h *TronHandler) SignTx(c *gin.Context) {
	var req types.SignTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(err.Error()))
		return
	}

	// 请求断开时 ctx 被取消，等待中的确认随之结束
	signed, err := h.signer.SignTx(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, signed)
}

// GetAddress 返回派生地址
// POST /api/v1/tron/address
func (h *TronHandler) GetAddress(c *gin.Context) {
	var req types.GetAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(err.Error()))
		return
	}

	addr, err := h.signer.GetAddress(c.Request.Context(), req.AddressN, req.ShowDisplay)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, addr)
}
