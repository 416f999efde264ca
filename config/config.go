package config

import (
	"os"
)

// Config хранит все конфигурации приложения
type Config struct {
	// DatabaseURL — строка подключения PostgreSQL. Если пусто, работаем на SQLite.
	DatabaseURL string
	// SQLitePath — путь к локальному файлу базы (embedded-режим).
	SQLitePath string
	JwtSecret  string
	ServerPort string
}

// NewConfig создает и возвращает новый экземпляр Config
func NewConfig() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/shift_manager.db"),
		JwtSecret:   getEnv("JWT_SECRET", "shift-backend-dev-secret"), // Измените в продакшене!
		ServerPort:  getEnv("SERVER_PORT", "3000"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
