// internal/service/product/infrastructure/mysql.go
package infrastructure

import (
	"time"

	"catalog/internal/pkg/config"

	driver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewMysqlDB 建立到库存库的 gorm 连接。
func NewMysqlDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := driver.Config{
		User:                 cfg.Mysql.User,
		Passwd:               cfg.Mysql.Password,
		Net:                  "tcp",
		Addr:                 cfg.Mysql.Addr,
		DBName:               cfg.Mysql.Database,
		ParseTime:            true,
		Loc:                  time.UTC,
		AllowNativePasswords: true,
	}

	db, err := gorm.Open(gormmysql.Open(dsn.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to mysql at %s", cfg.Mysql.Addr)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
