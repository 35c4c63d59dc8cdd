package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the console.
type Config struct {
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool
	Build    string

	// APIBaseURL is the base URL of the Shule REST backend, eg. http://localhost:5000/api
	APIBaseURL     string
	RequestTimeout time.Duration

	// StateDir is where the signed-in session is persisted. Defaults to ~/.shulectl
	StateDir string

	RollbarToken string
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Shule Console")
	conf.SetDefault("build", "dev")
	conf.SetDefault("apiBaseUrl", "http://localhost:5000/api")
	conf.SetDefault("requestTimeout", 15*time.Second)
	conf.SetDefault("stateDir", defaultStateDir())
	conf.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:        conf.GetString("appName"),
		Env:            env,
		Debug:          conf.GetBool("debug"),
		TestMode:       conf.GetBool("testMode"),
		Build:          conf.GetString("build"),
		APIBaseURL:     strings.TrimRight(conf.GetString("apiBaseUrl"), "/"),
		RequestTimeout: conf.GetDuration("requestTimeout"),
		StateDir:       conf.GetString("stateDir"),
		RollbarToken:   conf.GetString("rollbarToken"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shulectl"
	}
	return filepath.Join(home, ".shulectl")
}

// Getwd returns the app's root directory.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}
	return wd
}
