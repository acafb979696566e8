package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env      string
	LogLevel string

	Database     DatabaseConfigs
	ApiServer    APIServerConfigs
	Auth         AuthConfigs
	Session      SessionConfigs
	Storage      S3Configs
	File         FileConfigs
	Redis        RedisConfigs
	Kafka        KafkaConfigs
	Classifier   ClassifierConfigs
	Notification NotificationConfigs
	Bounty       BountyConfigs
	Redemption   RedemptionConfigs
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// File is the sqlite database path.
	File string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int
	DefaultLimit int
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	SSLDisabled    bool
	Bucket         string
}

type FileConfigs struct {
	MaxSize           int64
	AllowedExtensions []string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type ClassifierConfigs struct {
	Endpoint string
	Timeout  time.Duration
}

type NotificationConfigs struct {
	Enable        bool
	Topic         string
	RelayEndpoint string
}

type BountyConfigs struct {
	CleanerMultiplier int
	LabelScores       map[string]int
	DefaultLabelScore int
}

type RedemptionConfigs struct {
	Wallets              []string
	PointsToCurrencyRate int
}

// ProximityRadiusMeters is the geofence used by claim and complete.
// Deployments cannot override it.
const ProximityRadiusMeters = 100.0

// Scoring and payout defaults copied into Configs by Default.
const (
	CleanerMultiplier    = 2
	DefaultLabelScore    = 1
	PointsToCurrencyRate = 1
)

func DefaultLabelScores() map[string]int {
	return map[string]int{
		"PET_Bottles":       3,
		"Aluminium_Cans":    3,
		"HDPE_Milk_Bottles": 2,
	}
}

func DefaultWallets() []string {
	return []string{"DANA", "OVO", "GOPAY", "SHOPEEPAY"}
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver: "sqlite",
			File:   "wastebounty.db",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{
				Port:           "8080",
				AllowedOrigins: []string{"*"},
			},
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Name: "wastebounty_session",
		},
		File: FileConfigs{
			MaxSize:           10 << 20,
			AllowedExtensions: []string{"png", "jpg", "jpeg"},
		},
		Classifier: ClassifierConfigs{
			Timeout: 30 * time.Second,
		},
		Notification: NotificationConfigs{
			Topic: "bounty_notification",
		},
		Bounty: BountyConfigs{
			CleanerMultiplier: CleanerMultiplier,
			LabelScores:       DefaultLabelScores(),
			DefaultLabelScore: DefaultLabelScore,
		},
		Redemption: RedemptionConfigs{
			Wallets:              DefaultWallets(),
			PointsToCurrencyRate: PointsToCurrencyRate,
		},
	}
}

// Load reads a toml file on top of the defaults. The path in the
// WASTEBOUNTY_CONFIG environment variable wins over the argument.
func Load(path string) (Configs, error) {
	if env := os.Getenv("WASTEBOUNTY_CONFIG"); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}
