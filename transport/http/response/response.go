package response

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/jwekit/errors"
)

const (
	// 成功响应常量
	defaultSuccessMsg = "success"
	successCode       = http.StatusOK

	// 错误响应常量
	defaultErrorMsg  = "operation failed"
	defaultErrorCode = http.StatusInternalServerError
)

// Response 统一响应结构 {"code","msg","data"}
// HTTP 状态码固定为 200，业务码放在 code 中
type Response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg,omitempty"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// reset 清空所有字段用于对象池复用
func (r *Response) reset() {
	*r = Response{}
}

var responsePool = sync.Pool{
	New: func() any {
		return &Response{}
	},
}

func acquireResponse() *Response {
	return responsePool.Get().(*Response)
}

func releaseResponse(r *Response) {
	if r != nil {
		r.reset()
		responsePool.Put(r)
	}
}

// GinJSON 写入成功响应
//
//	GinJSON(c, bridge.KeyPair{...})
//	// {"code":200,"msg":"success","data":{"pub":"...","pvt":"..."}}
func GinJSON(c *gin.Context, data any) {
	if c == nil {
		return
	}

	resp := acquireResponse()
	defer releaseResponse(resp)

	resp.Code = successCode
	resp.Msg = defaultSuccessMsg
	resp.Data = data
	c.JSON(http.StatusOK, resp)
}

// GinJSONE 写入错误响应并终止后续处理
// 只输出 errors.Error 的 code、reason 和 message，cause 记录到 gin 上下文供访问日志使用
//
//	GinJSONE(c, errors.Conflict("keyId does not match"))
//	// {"code":409,"msg":"keyId does not match"}
func GinJSONE(c *gin.Context, err error) {
	if c == nil {
		return
	}

	defer c.Abort()

	resp := acquireResponse()
	defer releaseResponse(resp)

	if err == nil {
		resp.Code = defaultErrorCode
		resp.Msg = defaultErrorMsg
		c.JSON(http.StatusOK, resp)
		return
	}

	_ = c.Error(err)

	e := errors.FromError(err)
	resp.Code = e.Code
	resp.Msg = e.Message
	resp.Reason = e.Reason
	if e.Reason == errors.UnknownReason && e.GetCause() == err {
		// 未编码的错误不向调用方暴露内部信息
		resp.Msg = defaultErrorMsg
	}
	c.JSON(http.StatusOK, resp)
}

// Success 构造成功响应
func Success(data any) *Response {
	return &Response{Code: successCode, Msg: defaultSuccessMsg, Data: data}
}

// Failure 构造失败响应
func Failure(code int, msg string) *Response {
	return &Response{Code: code, Msg: msg}
}
