package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
)

// Serve 在指定地址启动 statsviz 运行时监控（阻塞）
// 访问 /debug/statsviz/ 查看
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
