package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURI      string
	RabbitExchange string

	JWTSecret      string
	JWTExpiryHours int

	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioUseSSL       bool
	SubmissionBucket  string
	ImageBucket       string
	CertificateBucket string

	SendgridKey string
	EmailFrom   string
	AppName     string

	CertificateFont string

	AllowedOrigins []string
}

func New() *Config {
	expiry, _ := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "8"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "learning_service"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PWD", ""),
		RedisDB:       redisDB,

		RabbitURI:      getEnv("RABBITMQ_URI", ""),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "learning.events"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiryHours: expiry,

		MinioEndpoint:     getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:    getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:       getEnv("MINIO_USE_SSL", "false") == "true",
		SubmissionBucket:  getEnv("MINIO_SUBMISSION_BUCKET", "activity-submissions"),
		ImageBucket:       getEnv("MINIO_IMAGE_BUCKET", "platform-images"),
		CertificateBucket: getEnv("MINIO_CERTIFICATE_BUCKET", "certificates"),

		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:   getEnv("EMAIL_FROM", "no-reply@learning.local"),
		AppName:     getEnv("APP_NAME", "Learning Platform"),

		CertificateFont: getEnv("CERTIFICATE_FONT", ""),

		AllowedOrigins: []string{getEnv("FE_ADDR", "http://localhost:3000")},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
