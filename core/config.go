package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address              string
		TokenExpirationDelta time.Duration
		ShutdownTimeout      time.Duration
	}

	StoreConfig struct {
		SeedDelay      time.Duration
		SuccessTimeout time.Duration
		ErrorTimeout   time.Duration
	}

	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string
		PageSize     int
		FixturesPath string
		Server       ServerConfig
		Store        StoreConfig
	}
)

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "SchoolHub")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "k9t2-vbn)qe$+81=hs&pa(x3!m)#*d4(#zr7^$wf)u2qa")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("pageSize", 10)
	v.SetDefault("fixturesPath", "")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("tokenExpirationDelta", 7*24*time.Hour)
	v.SetDefault("shutdownTimeout", 5*time.Second)
	v.SetDefault("seedDelay", time.Second)
	v.SetDefault("successTimeout", 3*time.Second)
	v.SetDefault("errorTimeout", 5*time.Second)
}

// NewConfig reads the configuration for the current ENV (DEV by default).
// Values come from defaults, an optional config/.env.<env> file under workDir and
// <ENV>_-prefixed environment variables, in increasing order of precedence.
func NewConfig(workDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if workDir != "" {
		dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		PageSize:     v.GetInt("pageSize"),
		FixturesPath: v.GetString("fixturesPath"),
		Server: ServerConfig{
			Address:              v.GetString("serverAddress"),
			TokenExpirationDelta: v.GetDuration("tokenExpirationDelta"),
			ShutdownTimeout:      v.GetDuration("shutdownTimeout"),
		},
		Store: StoreConfig{
			SeedDelay:      v.GetDuration("seedDelay"),
			SuccessTimeout: v.GetDuration("successTimeout"),
			ErrorTimeout:   v.GetDuration("errorTimeout"),
		},
	}
	if conf.PageSize < 1 {
		return nil, errors.Errorf("pageSize must be positive, got %d", conf.PageSize)
	}
	return conf, nil
}
