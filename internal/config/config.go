package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Email      EmailConfig
	S3         S3Config
	Push       PushConfig
	Compositor CompositorConfig `validate:"required"`
	Membership MembershipConfig
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level string `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AuthConfig struct {
	// Secret signs the HS256 member/admin JWTs.
	Secret string `validate:"required"`
	// Super admin credentials checked verbatim against the login request.
	AdminEmail    string
	AdminPassword string
	// OTPExpiry bounds how long verification / recovery codes stay valid.
	OTPExpiry time.Duration
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
}

type S3Config struct {
	Enabled bool
	Region  string
	// Documents holds rendered statement/invoice PDFs, Gallery the event images.
	Documents BucketConfig
	Gallery   BucketConfig
}

type BucketConfig struct {
	Bucket    string
	KeyPrefix string
}

type PushConfig struct {
	Enabled bool
	// ProjectID is the Firebase project; the send endpoint is derived from it.
	ProjectID string
	// CredentialsFile is the service-account JSON used to mint OAuth tokens.
	CredentialsFile string
	// BroadcastTopic receives club-wide announcements.
	BroadcastTopic string
}

type CompositorConfig struct {
	// AssetsDir contains the two logo files below.
	AssetsDir      string `validate:"required"`
	LeftLogoFile   string `validate:"required"`
	RightLogoFile  string `validate:"required"`
	OrgName        string
	DefaultAddress string
}

type MembershipConfig struct {
	// SweepInterval is how often expired memberships are deactivated.
	SweepInterval time.Duration
}

func NewConfig() (*Configuration, error) {
	// Local development keeps secrets in .env; missing file is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pcist")

	v.SetEnvPrefix("PCIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":4000")
	v.SetDefault("logging.level", "info")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("auth.otpexpiry", 10*time.Minute)
	v.SetDefault("compositor.assetsdir", "./assets/logos")
	v.SetDefault("compositor.leftlogofile", "IST_logo.png")
	v.SetDefault("compositor.rightlogofile", "pcIST_logo.png")
	v.SetDefault("compositor.orgname", "Programming Club of IST (pcIST)")
	v.SetDefault("compositor.defaultaddress", "Institute of Science & Technology (IST), Dhaka")
	v.SetDefault("push.broadcasttopic", "all_users")
	v.SetDefault("membership.sweepinterval", time.Hour)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:  ServerConfig{Address: ":4000"},
		Logging: LoggingConfig{Level: "debug"},
		Auth:    AuthConfig{Secret: "test-secret", OTPExpiry: 10 * time.Minute},
		Compositor: CompositorConfig{
			AssetsDir:      "./assets/logos",
			LeftLogoFile:   "IST_logo.png",
			RightLogoFile:  "pcIST_logo.png",
			OrgName:        "Programming Club of IST (pcIST)",
			DefaultAddress: "Institute of Science & Technology (IST), Dhaka",
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
