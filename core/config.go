package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug            bool
	TestMode         bool
	Env              string // DEV (local; default), TEST, QA, PROD
	Build            string
	AppName          string
	SecretKey        string
	WorkDir          string
	DefaultFromEmail mail.Address
	AdminEmail       mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	Server struct {
		Host                      string
		Addr                      string
		DebugAddr                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Storage struct {
		Path string // JSON key-value blob mirroring all persisted app state
	}

	Advisor struct {
		APIKey  string
		Model   string
		Timeout time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "EduPro")
	v.SetDefault("secretKey", "d3m0-s3cr3t-k3y-n0t-f0r-pr0d-us3!")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("adminEmail", "admin@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":4000")
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("storagePath", filepath.Join(Getwd(), "edupro.json"))
	v.SetDefault("advisorModel", "gemini-3-flash-preview")
	v.SetDefault("advisorTimeout", 30*time.Second)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          Getwd(),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		AdminEmail:       mail.Address{Address: v.GetString("adminEmail")},
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.DebugAddr = v.GetString("serverDebugAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	conf.Storage.Path = v.GetString("storagePath")
	conf.Advisor.APIKey = v.GetString("advisorApiKey")
	conf.Advisor.Model = v.GetString("advisorModel")
	conf.Advisor.Timeout = v.GetDuration("advisorTimeout")
	return conf
}
