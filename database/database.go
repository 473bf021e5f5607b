package database

import (
	"fmt"
	"log"
	"time"

	"spendbot/config"
	"spendbot/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.RecurringExpense{},
		&models.AccessToken{},
	); err != nil {
		return err
	}

	// 兼容历史数据：老版本没有 currency_symbol 字段，默认补为 $
	_ = DB.Model(&models.User{}).
		Where("currency_symbol IS NULL OR currency_symbol = ''").
		Update("currency_symbol", "$").Error

	// 启动时清理已过期的仪表盘令牌（平时靠发放时顺带清扫）
	if res := DB.Where("expires_at <= ?", time.Now()).Delete(&models.AccessToken{}); res.Error == nil && res.RowsAffected > 0 {
		log.Printf("已清理过期仪表盘令牌 %d 条", res.RowsAffected)
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
