package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"echoverse_server/internal/config"
	dao "echoverse_server/internal/dao/mysql"
	myredis "echoverse_server/internal/dao/redis"
	"echoverse_server/internal/handler"
	"echoverse_server/internal/https_server"
	"echoverse_server/internal/infrastructure/logger"
	"echoverse_server/internal/service"
	"echoverse_server/internal/service/chat"
	"echoverse_server/pkg/util/jwt"
	"echoverse_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花算法
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	zap.L().Info("JWT 与雪花算法初始化成功")

	// 6. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("参数校验翻译器初始化失败", zap.Error(err))
	}

	// 7. 初始化 Service 层（依赖注入）
	service.InitServices(dao.Repos, myredis.GetCacheService())
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化 ChatServer，根据配置选择 channel 或 kafka 模式
	chatServer := chat.NewChatServer(chat.ChatServerConfig{
		Mode:            conf.KafkaConfig.MessageMode,
		MessageRepo:     dao.Repos.Message,
		ParticipantRepo: dao.Repos.Participant,
		UserRepo:        dao.Repos.User,
		CacheService:    myredis.GetCacheService(),
	})
	if conf.KafkaConfig.MessageMode == "kafka" {
		chatServer.InitKafka()
	}
	chat.GlobalBroker = chatServer.GetBroker()
	chatServer.Start()
	zap.L().Info("ChatServer 初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 9. 初始化 HTTP 服务器
	engine := https_server.Init(handler.NewHandlers(service.Svc))
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
