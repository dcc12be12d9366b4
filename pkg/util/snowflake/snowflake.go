package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	initID   int64 = 1
)

// Init 初始化雪花算法节点
// 应在程序启动时调用一次，machineID 范围 0-1023，分布式部署时每台机器需唯一
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			machineID = 1 // 默认节点 ID
			zap.L().Warn("无效的 MachineID 配置，使用默认值 1")
		}
		initID = machineID
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("雪花节点初始化失败", zap.Error(err))
		}
	})
}

// GenerateID 生成雪花 ID (int64)
// 同一节点内单调递增，可用作消息的插入序 tie-break
func GenerateID() int64 {
	if node == nil {
		Init(initID)
	}
	return node.Generate().Int64()
}

// GenerateIDString 生成雪花 ID (string)
// 用于 JSON 序列化，避免 JavaScript 精度丢失
func GenerateIDString() string {
	if node == nil {
		Init(initID)
	}
	return node.Generate().String()
}
