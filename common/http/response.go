package http

import "net/http"

// Response 统一响应结构
// 成功标志 + 消息 + 数据，统计接口对外的固定契约
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, &Response{Success: true, Data: data})
}

// SuccessWithCount 成功响应，附带条目数
func (c *Context) SuccessWithCount(count int, data interface{}) {
	c.JSON(http.StatusOK, &Response{Success: true, Count: &count, Data: data})
}

// BadRequest 400 参数错误
func (c *Context) BadRequest(message string) {
	c.JSON(http.StatusBadRequest, &Response{Success: false, Message: message})
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	c.JSON(http.StatusNotFound, &Response{Success: false, Message: message})
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	c.JSON(http.StatusInternalServerError, &Response{Success: false, Message: message})
}
