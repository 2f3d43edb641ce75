package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env            string  `mapstructure:"env"`             // current application environment (local, production)
	QuizURL        string  `mapstructure:"quiz_url"`        // page hosting the quiz
	TotalQuestions int     `mapstructure:"total_questions"` // questions are numbered 1..TotalQuestions
	ImageDir       string  `mapstructure:"image_dir"`       // downloaded question images
	DataPath       string  `mapstructure:"data_path"`       // intermediate JSON file
	DeckPath       string  `mapstructure:"deck_path"`       // Anki CSV output
	LogFile        string  `mapstructure:"log_file"`        // run log, written alongside stderr
	Browser        Browser `mapstructure:"browser"`         // browser automation section
	HTTP           HTTP    `mapstructure:"http"`            // image download section
}

// Browser contains browser automation parameters.
type Browser struct {
	Headless           bool          `mapstructure:"headless"`
	InstallBrowsers    bool          `mapstructure:"install_browsers"`     // download Chromium on first run
	WaitTimeout        time.Duration `mapstructure:"wait_timeout"`         // bound for every wait
	PollInterval       time.Duration `mapstructure:"poll_interval"`        // how often a wait re-checks
	OptionClickTimeout time.Duration `mapstructure:"option_click_timeout"` // bound for clicking one answer option
}

// HTTP contains image download parameters.
type HTTP struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Load reads configuration from an optional config file, .env and environment variables.
// An empty path looks for ./config.yaml and ./config/config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvPrefix("QUIZDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting files or the environment.
func Default() *Config {
	return &Config{
		Env:            "local",
		QuizURL:        DefaultQuizURL,
		TotalQuestions: 600,
		ImageDir:       "quiz_images",
		DataPath:       "quiz_data.json",
		DeckPath:       "anki_quiz_deck.csv",
		LogFile:        "run.log",
		Browser: Browser{
			Headless:           true,
			WaitTimeout:        10 * time.Second,
			PollInterval:       200 * time.Millisecond,
			OptionClickTimeout: time.Second,
		},
		HTTP: HTTP{
			Timeout:   10 * time.Second,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		},
	}
}

const DefaultQuizURL = "https://taplai.com/hoc-ly-thuyet-600-cau-lai-xe-o-to-truc-tuyen-moi-nhat.html"

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("env", d.Env)
	v.SetDefault("quiz_url", d.QuizURL)
	v.SetDefault("total_questions", d.TotalQuestions)
	v.SetDefault("image_dir", d.ImageDir)
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("deck_path", d.DeckPath)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("browser.headless", d.Browser.Headless)
	v.SetDefault("browser.install_browsers", d.Browser.InstallBrowsers)
	v.SetDefault("browser.wait_timeout", d.Browser.WaitTimeout)
	v.SetDefault("browser.poll_interval", d.Browser.PollInterval)
	v.SetDefault("browser.option_click_timeout", d.Browser.OptionClickTimeout)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
}

// Override merges every non-zero field of o into c. Booleans cannot be
// cleared this way; callers set them directly.
func (c *Config) Override(o Config) error {
	if err := mergo.Merge(c, o, mergo.WithOverride); err != nil {
		return fmt.Errorf("error merging overrides: %w", err)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.QuizURL == "" {
		return fmt.Errorf("%w: quiz_url is required", ErrInvalidConfig)
	}
	if c.TotalQuestions <= 0 {
		return fmt.Errorf("%w: total_questions must be positive, got %d", ErrInvalidConfig, c.TotalQuestions)
	}
	if c.Browser.WaitTimeout <= 0 || c.Browser.PollInterval <= 0 || c.Browser.OptionClickTimeout <= 0 {
		return fmt.Errorf("%w: browser timeouts must be positive", ErrInvalidConfig)
	}
	if c.Browser.PollInterval > c.Browser.WaitTimeout {
		return fmt.Errorf("%w: poll_interval exceeds wait_timeout", ErrInvalidConfig)
	}
	if c.DataPath == "" || c.DeckPath == "" || c.ImageDir == "" {
		return fmt.Errorf("%w: file paths must not be empty", ErrInvalidConfig)
	}
	return nil
}
