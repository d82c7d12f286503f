package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB holds the doctor records.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google Calendar.
	GoogleCredentialsFile string        `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleCalendarID      string        `mapstructure:"GOOGLE_CALENDAR_ID"`
	CalendarTimeout       time.Duration `mapstructure:"CALENDAR_TIMEOUT"`

	// Scheduling.
	TimeZone        string        `mapstructure:"TIMEZONE"`
	WorkdayStart    string        `mapstructure:"WORKDAY_START"`
	WorkdayEnd      string        `mapstructure:"WORKDAY_END"`
	SlotMinutes     int           `mapstructure:"SLOT_MINUTES"`
	LookaheadOffset time.Duration `mapstructure:"LOOKAHEAD_OFFSET"`
	LookaheadSpan   time.Duration `mapstructure:"LOOKAHEAD_SPAN"`
	BookingRecheck  bool          `mapstructure:"BOOKING_RECHECK"`
	BookingLockTTL  time.Duration `mapstructure:"BOOKING_LOCK_TTL"`
	BookingLockWait time.Duration `mapstructure:"BOOKING_LOCK_WAIT"`

	// Default doctor, seeded at startup when DOCTOR_EMAIL is set.
	DoctorID     string `mapstructure:"DOCTOR_ID"`
	DoctorName   string `mapstructure:"DOCTOR_NAME"`
	DoctorEmail  string `mapstructure:"DOCTOR_EMAIL"`
	DoctorChatID string `mapstructure:"DOCTOR_CHAT_ID"`

	// Telegram.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramAPIURL   string `mapstructure:"TELEGRAM_API_URL"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every key so AutomaticEnv can override it on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "cardioconsult")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	v.SetDefault("CALENDAR_TIMEOUT", "10s")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("WORKDAY_START", "10:00")
	v.SetDefault("WORKDAY_END", "17:30")
	v.SetDefault("SLOT_MINUTES", 15)
	v.SetDefault("LOOKAHEAD_OFFSET", "1h")
	v.SetDefault("LOOKAHEAD_SPAN", "3h")
	v.SetDefault("BOOKING_RECHECK", true)
	v.SetDefault("BOOKING_LOCK_TTL", "30s")
	v.SetDefault("BOOKING_LOCK_WAIT", "5s")
	v.SetDefault("DOCTOR_ID", "1")
	v.SetDefault("DOCTOR_NAME", "")
	v.SetDefault("DOCTOR_EMAIL", "")
	v.SetDefault("DOCTOR_CHAT_ID", "")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves TIMEZONE, falling back to the process's local zone.
func (c Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time: %v", c.TimeZone, err)
		return time.Local
	}
	return loc
}

// SlotDuration returns the configured slot length.
func (c Config) SlotDuration() time.Duration {
	if c.SlotMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.SlotMinutes) * time.Minute
}
