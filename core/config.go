package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (default), TEST, QA, PROD
		Build            string
		AppName          string
		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address

		Server   serverConfig
		Database databaseConfig

		SendgridAPIKey string
		RollbarToken   string
	}

	serverConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	databaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (c serverConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c databaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// IsLive is true for environments where all secrets must be provided.
func (c *Config) IsLive() bool {
	return c.Env == "QA" || c.Env == "PROD"
}

// Validate checks that settings without safe defaults are provided.
// Only enforced in live environments.
func (c *Config) Validate() error {
	if !c.IsLive() {
		return nil
	}
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.SecretKey, "SECRET_KEY"),
		vala.StringNotEmpty(c.Database.User, "DATABASE_USER"),
		vala.StringNotEmpty(c.Database.Password, "DATABASE_PASSWORD"),
		vala.StringNotEmpty(c.SendgridAPIKey, "SENDGRID_API_KEY"),
		vala.StringNotEmpty(c.RollbarToken, "ROLLBAR_TOKEN"),
	).Check()
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "GradeGo")
	v.SetDefault("secretKey", "o0p$-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "gradego")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		Env:             env,
		Build:           v.GetString("build"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		WorkDir:         wd,
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		Server: serverConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetString("serverPort"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
			ShutdownTimeout:    v.GetDuration("shutdownTimeout"),
		},
		Database: databaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}

	if err := Conf.Validate(); err != nil {
		log.Fatal(fmt.Errorf("config.Validate: %v", err))
	}
}
