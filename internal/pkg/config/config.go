// internal/pkg/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config 聚合了 product-api 启动所需的全部配置。
// 优先级: 环境变量 > yaml 配置文件 > 默认值。
type Config struct {
	Service struct {
		Name string `yaml:"name"`
		Port int    `yaml:"port"`
	} `yaml:"service"`

	Mysql struct {
		Addr     string `yaml:"addr"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"mysql"`

	Kafka struct {
		Brokers               []string `yaml:"brokers"`
		ProductStockTopic     string   `yaml:"product_stock_topic"`
		SalesConfirmationTopic string  `yaml:"sales_confirmation_topic"`
		GroupID               string   `yaml:"group_id"`
		ConsumerWorkers       int      `yaml:"consumer_workers"`
	} `yaml:"kafka"`

	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`

	Jaeger struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"jaeger"`

	SalesAPI struct {
		URL string `yaml:"url"`
	} `yaml:"sales_api"`

	Auth struct {
		APISecret string `yaml:"api_secret"`
	} `yaml:"auth"`
}

// Load 读取配置文件并应用环境变量覆盖。
// 配置文件不存在时不报错，允许纯环境变量启动（容器场景）。
func Load() (*Config, error) {
	cfg := defaults()

	path := getEnv("CONFIG_PATH", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	applyEnvOverrides(cfg)

	if cfg.Kafka.ConsumerWorkers <= 0 {
		cfg.Kafka.ConsumerWorkers = 1
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Service.Name = "product-api"
	cfg.Service.Port = 8081
	cfg.Mysql.Addr = "localhost:3306"
	cfg.Mysql.User = "root"
	cfg.Mysql.Password = "root"
	cfg.Mysql.Database = "product_db"
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.ProductStockTopic = "product-stock-update"
	cfg.Kafka.SalesConfirmationTopic = "sales-confirmation"
	cfg.Kafka.GroupID = "product-api-stock-group"
	cfg.Kafka.ConsumerWorkers = 2
	cfg.Redis.Addr = "localhost:6379"
	cfg.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.SalesAPI.URL = "http://localhost:8082"
	cfg.Auth.APISecret = "YXBwLXRva2Vu"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Service.Port = port
		}
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("MYSQL_ADDR"); ok {
		cfg.Mysql.Addr = v
	}
	if v, ok := os.LookupEnv("MYSQL_USER"); ok {
		cfg.Mysql.User = v
	}
	if v, ok := os.LookupEnv("MYSQL_PASSWORD"); ok {
		cfg.Mysql.Password = v
	}
	if v, ok := os.LookupEnv("MYSQL_DATABASE"); ok {
		cfg.Mysql.Database = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("JAEGER_ENDPOINT"); ok {
		cfg.Jaeger.Endpoint = v
	}
	if v, ok := os.LookupEnv("SALES_API_URL"); ok {
		cfg.SalesAPI.URL = v
	}
	if v, ok := os.LookupEnv("API_SECRET"); ok {
		cfg.Auth.APISecret = v
	}
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
