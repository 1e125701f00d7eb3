package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Slack    SlackConfig
	Columns  ColumnsConfig
	Fields   FieldsConfig
	Cache    CacheConfig
	Poller   PollerConfig
	Timeline TimelineConfig

	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type SlackConfig struct {
	UserToken            string // Lists API requires a user token
	BaseURL              string
	Timeout              time.Duration
	RatePerMinute        int
	RetryCount           int
	DownloadPollAttempts int
	DownloadPollInterval time.Duration
	ListIDs              []string
}

// ColumnsConfig holds the human-readable column labels of the list.
type ColumnsConfig struct {
	Name           string
	StartDate      string
	EndDate        string
	Notes          string
	Category       string
	OptionPrefix   string
	IgnoredColumns []string
}

// FieldsConfig pins field keys when discovery cannot find them.
type FieldsConfig struct {
	Name            string
	StartDate       string
	EndDate         string
	Notes           string
	Category        string
	CategoryOptions map[string]string // option id -> label
}

type CacheConfig struct {
	TTL  time.Duration
	Size int
}

type PollerConfig struct {
	IntervalMinutes int
	Schedule        string
}

type TimelineConfig struct {
	Title            string
	Timezone         string
	DefaultTaskColor string
	CategoryColors   map[string]string // category label -> color
}

type RateLimitConfig struct {
	PerMinute int
}

// Load reads config.yaml (optional), the env file (optional, ".env" when empty) and the
// environment. Legacy flat variables such as LIST_NAME_COLUMN or CHART_TITLE override
// the structured keys.
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/list-timeline/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	if port := viper.GetInt("port"); port != 0 {
		cfg.HTTPServer.Port = port
	}
	if viper.GetBool("debug") {
		cfg.HTTPServer.Mode = "debug"
		cfg.Logger.Level = "debug"
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = viper.GetString("logger.level")
	}
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Slack.UserToken = expandEnvVar(viper.GetString("slack.user_token"))
	cfg.Slack.BaseURL = viper.GetString("slack.base_url")
	cfg.Slack.Timeout = viper.GetDuration("slack.timeout")
	cfg.Slack.RatePerMinute = viper.GetInt("slack.rate_per_minute")
	cfg.Slack.RetryCount = viper.GetInt("slack.retry_count")
	cfg.Slack.DownloadPollAttempts = viper.GetInt("slack.download_poll_attempts")
	cfg.Slack.DownloadPollInterval = viper.GetDuration("slack.download_poll_interval")
	cfg.Slack.ListIDs = splitList(viper.GetString("slack.list_ids"))
	if listID := strings.TrimSpace(viper.GetString("slack_list_id")); listID != "" && !contains(cfg.Slack.ListIDs, listID) {
		cfg.Slack.ListIDs = append([]string{listID}, cfg.Slack.ListIDs...)
	}

	cfg.Columns.Name = firstNonEmpty(viper.GetString("list_name_column"), viper.GetString("columns.name"))
	cfg.Columns.StartDate = firstNonEmpty(viper.GetString("list_start_date_column"), viper.GetString("columns.start_date"))
	cfg.Columns.EndDate = firstNonEmpty(viper.GetString("list_end_date_column"), viper.GetString("columns.end_date"))
	cfg.Columns.Notes = firstNonEmpty(viper.GetString("list_notes_column"), viper.GetString("columns.notes"))
	cfg.Columns.Category = firstNonEmpty(viper.GetString("list_category_column"), viper.GetString("columns.category"))
	cfg.Columns.OptionPrefix = viper.GetString("columns.option_prefix")
	cfg.Columns.IgnoredColumns = splitList(viper.GetString("columns.ignored"))

	cfg.Fields.Name = firstNonEmpty(viper.GetString("list_name_field"), viper.GetString("fields.name"))
	cfg.Fields.StartDate = firstNonEmpty(viper.GetString("list_start_date_field"), viper.GetString("fields.start_date"))
	cfg.Fields.EndDate = firstNonEmpty(viper.GetString("list_end_date_field"), viper.GetString("fields.end_date"))
	cfg.Fields.Notes = firstNonEmpty(viper.GetString("list_notes_field"), viper.GetString("fields.notes"))
	cfg.Fields.Category = firstNonEmpty(viper.GetString("list_category_field"), viper.GetString("fields.category"))
	cfg.Fields.CategoryOptions = stringMap("fields.category_options", "category_options")

	cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	cfg.Cache.Size = viper.GetInt("cache.size")

	cfg.Poller.IntervalMinutes = viper.GetInt("poller.interval_minutes")
	if minutes := viper.GetInt("poll_interval_minutes"); minutes != 0 {
		cfg.Poller.IntervalMinutes = minutes
	}
	cfg.Poller.Schedule = viper.GetString("poller.schedule")

	cfg.Timeline.Title = firstNonEmpty(viper.GetString("chart_title"), viper.GetString("timeline.title"))
	cfg.Timeline.Timezone = firstNonEmpty(viper.GetString("timezone"), viper.GetString("timeline.timezone"))
	cfg.Timeline.DefaultTaskColor = firstNonEmpty(viper.GetString("default_task_color"), viper.GetString("timeline.default_task_color"))
	cfg.Timeline.CategoryColors = stringMap("timeline.category_colors", "category_colors")

	cfg.RateLimit.PerMinute = viper.GetInt("rate_limit.per_minute")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ColumnOverrides returns the configured field key per column label.
func (c *Config) ColumnOverrides() map[string]string {
	overrides := map[string]string{}
	pairs := [][2]string{
		{c.Columns.Name, c.Fields.Name},
		{c.Columns.StartDate, c.Fields.StartDate},
		{c.Columns.EndDate, c.Fields.EndDate},
		{c.Columns.Notes, c.Fields.Notes},
		{c.Columns.Category, c.Fields.Category},
	}
	for _, p := range pairs {
		if p[0] != "" && p[1] != "" {
			overrides[p[0]] = p[1]
		}
	}
	return overrides
}

// Missing lists required settings that are not configured. The service still starts
// without them; every fetch reports a failed status instead.
func (c *Config) Missing() []string {
	var missing []string
	if c.Slack.UserToken == "" {
		missing = append(missing, "SLACK_USER_TOKEN")
	}
	return missing
}

func (c *Config) validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTPServer.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if c.Poller.IntervalMinutes < 0 {
		return fmt.Errorf("poll interval must not be negative")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 3000)
	viper.SetDefault("http_server.mode", "release")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("slack.base_url", "https://slack.com/api")
	viper.SetDefault("slack.timeout", "30s")
	viper.SetDefault("slack.rate_per_minute", 50)
	viper.SetDefault("slack.retry_count", 2)
	viper.SetDefault("slack.download_poll_attempts", 5)
	viper.SetDefault("slack.download_poll_interval", "1s")

	viper.SetDefault("columns.name", "Name")
	viper.SetDefault("columns.start_date", "Start Date")
	viper.SetDefault("columns.end_date", "End Date")
	viper.SetDefault("columns.notes", "notes")
	viper.SetDefault("columns.category", "category")
	viper.SetDefault("columns.option_prefix", "Opt")
	viper.SetDefault("columns.ignored", "Created")

	viper.SetDefault("cache.ttl", "60s")
	viper.SetDefault("cache.size", 256)

	viper.SetDefault("poller.interval_minutes", 0)

	viper.SetDefault("timeline.title", "Project Timeline")
	viper.SetDefault("timeline.timezone", "Local")
	viper.SetDefault("timeline.default_task_color", "#3498db")

	viper.SetDefault("rate_limit.per_minute", 120)
}

// loadEnvFile loads KEY=VALUE pairs into the process environment. A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// expandEnvVar resolves "${NAME}" placeholders used in config.yaml.
func expandEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}

// stringMap reads a map from the structured key (a YAML mapping) and layers the flat key on
// top, which uses the "key1:value1,key2:value2" form.
func stringMap(structuredKey, flatKey string) map[string]string {
	out := map[string]string{}
	if viper.IsSet(structuredKey) {
		if m, ok := viper.Get(structuredKey).(map[string]interface{}); ok {
			for k, v := range m {
				if s, ok := v.(string); ok {
					out[k] = s
				}
			}
		} else {
			for k, v := range parsePairs(viper.GetString(structuredKey)) {
				out[k] = v
			}
		}
	}
	for k, v := range parsePairs(viper.GetString(flatKey)) {
		out[k] = v
	}
	return out
}

// parsePairs parses "key1:value1,key2:value2". Entries without a colon are ignored and the
// value may itself contain colons.
func parsePairs(raw string) map[string]string {
	out := map[string]string{}
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "" {
			out[key] = value
		}
	}
	return out
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in order, for stable log output.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
