package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"photodesk/models"
)

var (
	DB        *gorm.DB
	AppConfig Config
	envLoaded bool
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// IdentityConfig points at the hosted auth service. The service key unlocks
// the admin directory endpoints (invites, user listing); it is optional and
// its absence only degrades those features.
type IdentityConfig struct {
	URL        string `json:"url"`
	AnonKey    string `json:"-"`
	ServiceKey string `json:"-"`
}

// StorageConfig points at the hosted object storage service that issues
// signed URLs for private photo objects.
type StorageConfig struct {
	URL    string `json:"url"`
	Bucket string `json:"bucket"`
}

type Config struct {
	Environment    string         `json:"environment"`
	ServerPort     string         `json:"server_port"`
	JWTSecret      string         `json:"-"`
	DBHost         string         `json:"db_host"`
	DBPort         string         `json:"db_port"`
	DBUser         string         `json:"db_user"`
	DBPassword     string         `json:"-"`
	DBName         string         `json:"db_name"`
	DBSSLMode      string         `json:"db_ssl_mode"`
	DBMaxIdleConns int            `json:"db_max_idle_conns"`
	DBMaxOpenConns int            `json:"db_max_open_conns"`
	Identity       IdentityConfig `json:"identity"`
	Storage        StorageConfig  `json:"storage"`
	SentryDSN      string         `json:"-"`
	RateLimitLogin int            `json:"rate_limit_login"`
	Redis          RedisConfig    `json:"redis"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "photodesk"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		Identity: IdentityConfig{
			URL:        getEnv("IDENTITY_URL", ""),
			AnonKey:    getEnv("IDENTITY_ANON_KEY", ""),
			ServiceKey: getEnv("IDENTITY_SERVICE_ROLE_KEY", ""),
		},
		Storage: StorageConfig{
			URL:    getEnv("STORAGE_URL", ""),
			Bucket: getEnv("STORAGE_BUCKET", "photos"),
		},
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		RateLimitLogin: getEnvAsInt("RATE_LIMIT_LOGIN", 10),
		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ADDRESS", "") != "",
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}

	// Validate required configurations
	if AppConfig.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if AppConfig.Identity.ServiceKey == "" {
		// Not fatal: user listing hides emails and invites are rejected
		// with a configuration error until the key is provided.
		log.Println("⚠️ IDENTITY_SERVICE_ROLE_KEY not configured; directory features are disabled")
	}

	if AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         AppConfig.SentryDSN,
			Environment: AppConfig.Environment,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	log.Println("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	log.Println("Using connection string:", maskPassword(dsn))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("✅ Successfully connected to the database")
	log.Println("🔄 Starting database migration...")
	if err := MigrateDB(DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("✅ Database migration completed")

	if err := models.SeedChecklistTemplates(DB); err != nil {
		return fmt.Errorf("template seeding failed: %w", err)
	}
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		log.Printf("⚠️ Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Database: %s@%s:%s/%s",
		AppConfig.DBUser,
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBName)
	log.Printf("Identity service: configured(%t), directory(%t)",
		AppConfig.Identity.URL != "",
		AppConfig.Identity.ServiceKey != "")
	log.Printf("Storage service: configured(%t), bucket=%s",
		AppConfig.Storage.URL != "",
		AppConfig.Storage.Bucket)
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.Profile{},
		&models.Project{},
		&models.Photo{},
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Report{},
		&models.Group{},
		&models.GroupMember{},
		&models.Label{},
		&models.Page{},
		&models.ProjectDocument{},
		&models.ChecklistTemplate{},
	)
}
