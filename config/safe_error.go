package config

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露；
// debug 模式或配置未初始化时返回原始错误，方便开发排查
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig == nil || GlobalConfig.Server.Mode == "debug" {
		return err.Error()
	}
	return fallback
}
