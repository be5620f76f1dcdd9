package database

import (
	"strings"
	"time"

	"github.com/fenghaojiang/BRC20S/config"
	"github.com/fenghaojiang/BRC20S/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var db *gorm.DB

type gormLogger struct{}

func (*gormLogger) Printf(format string, v ...interface{}) {
	format = strings.Replace(format, "\n", " ", 1)
	log.Sugar.Infof(format, v...)
}

// NewMysql connect to mysql
func NewMysql() {
	var err error
	_mysql := config.GetConfig().Mysql

	databaseURL := _mysql.Url
	newLogger := logger.New(
		&gormLogger{},
		logger.Config{
			SlowThreshold:             time.Second * time.Duration(_mysql.SlowThreshold),
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  false,
		},
	)

	mysqlConfig := gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   _mysql.Prefix,
			SingularTable: true,
		},
		Logger: newLogger,
	}
	db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       databaseURL,
		DefaultStringSize:         255,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &mysqlConfig)
	if err != nil {
		panic(err)
	}
	mysqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	mysqlDB.SetMaxOpenConns(_mysql.MaxOpenConns)
	mysqlDB.SetMaxIdleConns(_mysql.MaxIdleConns)
	mysqlDB.SetConnMaxLifetime(time.Second * time.Duration(_mysql.ConnMaxLifetime))
}

// Mysql get a connection for mysql
func Mysql() *gorm.DB {
	return db
}

// DisconnectMysql disconnect mysql
func DisconnectMysql() {
	mysqlDB, _ := db.DB()
	if mysqlDB != nil {
		_ = mysqlDB.Close()
	}
}
