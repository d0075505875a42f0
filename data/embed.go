package data

import (
	_ "embed"
)

// SeedContent 是首次启动时写入的默认页面、区块与站点设置。
//
//go:embed seed.yaml
var SeedContent []byte
