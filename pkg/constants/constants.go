package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	ROOM_CODE_LENGTH           = 6   // 房间码长度
	DEFAULT_MAX_PARTICIPANTS   = 20  // 房间默认人数上限
	MESSAGE_HISTORY_PAGE_LIMIT = 50  // 历史消息单页最大条数
	REDIS_TIMEOUT              = 30  // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
