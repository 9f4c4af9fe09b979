package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"impactAdminWs/internal/shared/normalization"
)

// Config aggregates every setting the console gateway reads at startup.
type Config struct {
	Server   ServerConfig
	REST     RESTConfig
	Security SecurityConfig
	Kafka    KafkaConfig
	Console  ConsoleConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port string
}

// RESTConfig points at the Impact Club REST API.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SecurityConfig struct {
	// JWTSecret enables HS256 verification of operator tokens when set.
	JWTSecret string
	// JWTPublicKey enables RS256 verification; it wins over JWTSecret.
	JWTPublicKey string
	TokenCookie  string
	CookieSecure bool
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics maps a resource name to the topics that carry its change events.
	Topics map[string][]string
}

// ConsoleConfig tunes the per-session query and notification behaviour.
type ConsoleConfig struct {
	StaleTime       time.Duration
	SearchDebounce  time.Duration
	ToastTTL        time.Duration
	CacheMaxEntries int
	SendBuffer      int
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

// Load resolves configuration from the process environment using viper defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: strings.TrimSpace(v.GetString("PORT")),
		},
		REST: RESTConfig{
			BaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("REST_BASE_URL")), "/"),
			Timeout: v.GetDuration("REST_TIMEOUT"),
		},
		Security: SecurityConfig{
			JWTSecret:    v.GetString("JWT_SECRET"),
			JWTPublicKey: v.GetString("JWT_PUBLIC_KEY"),
			TokenCookie:  strings.TrimSpace(v.GetString("TOKEN_COOKIE")),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstNonEmpty(v.GetString("KAFKA_BROKERS"), v.GetString("KAFKA_BROKER"))),
			GroupID: strings.TrimSpace(v.GetString("KAFKA_GROUP_ID")),
		},
		Console: ConsoleConfig{
			StaleTime:       v.GetDuration("CONSOLE_STALE_TIME"),
			SearchDebounce:  v.GetDuration("CONSOLE_SEARCH_DEBOUNCE"),
			ToastTTL:        v.GetDuration("CONSOLE_TOAST_TTL"),
			CacheMaxEntries: v.GetInt("CONSOLE_CACHE_MAX_ENTRIES"),
			SendBuffer:      v.GetInt("CONSOLE_SEND_BUFFER"),
		},
		Logging: LoggingConfig{
			Directory: v.GetString("LOG_DIR"),
			Level:     v.GetString("LOG_LEVEL"),
			Format:    v.GetString("LOG_FORMAT"),
		},
	}

	topics, err := parseTopics(v.GetString("KAFKA_TOPICS"))
	if err != nil {
		return nil, err
	}
	cfg.Kafka.Topics = topics

	if cfg.REST.BaseURL == "" {
		return nil, fmt.Errorf("REST_BASE_URL must not be empty")
	}
	if cfg.Console.SearchDebounce < 0 || cfg.Console.ToastTTL <= 0 || cfg.Console.StaleTime < 0 {
		return nil, fmt.Errorf("console timings must be positive")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("REST_BASE_URL", "http://localhost:5000")
	v.SetDefault("REST_TIMEOUT", 10*time.Second)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("TOKEN_COOKIE", "admin_token")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_GROUP_ID", "impact-admin-console")
	v.SetDefault("KAFKA_TOPICS", "")
	v.SetDefault("CONSOLE_STALE_TIME", 60*time.Second)
	v.SetDefault("CONSOLE_SEARCH_DEBOUNCE", 400*time.Millisecond)
	v.SetDefault("CONSOLE_TOAST_TTL", 3*time.Second)
	v.SetDefault("CONSOLE_CACHE_MAX_ENTRIES", 256)
	v.SetDefault("CONSOLE_SEND_BUFFER", 64)
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// parseTopics reads "users:impact.users,impact.users.audit;courses:impact.courses".
// Resource names accept the same aliases as change events ("booking", "AUDIT_LOG").
func parseTopics(raw string) (map[string][]string, error) {
	topics := make(map[string][]string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return topics, nil
	}
	for _, group := range strings.Split(raw, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		entity, list, found := strings.Cut(group, ":")
		entity = strings.TrimSpace(entity)
		if !found || entity == "" {
			return nil, fmt.Errorf("invalid KAFKA_TOPICS entry %q", group)
		}
		if !normalization.IsValidEntity(entity) {
			return nil, fmt.Errorf("KAFKA_TOPICS entry %q names an unknown resource (known: %s)", entity, strings.Join(normalization.GetAllValidEntities(), ", "))
		}
		entity = normalization.NormalizeEntity(entity)
		names := splitList(list)
		if len(names) == 0 {
			return nil, fmt.Errorf("KAFKA_TOPICS entry %q has no topics", entity)
		}
		topics[entity] = append(topics[entity], names...)
	}
	return topics, nil
}

// TopicNames flattens the topic map into a sorted, de-duplicated list.
func (k KafkaConfig) TopicNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, list := range k.Topics {
		for _, topic := range list {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			names = append(names, topic)
		}
	}
	sort.Strings(names)
	return names
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// ResourcesByTopic inverts Topics so one consumer per topic can invalidate
// every resource that topic feeds.
func (k KafkaConfig) ResourcesByTopic() map[string][]string {
	out := make(map[string][]string)
	resources := make([]string, 0, len(k.Topics))
	for resource := range k.Topics {
		resources = append(resources, resource)
	}
	sort.Strings(resources)
	for _, resource := range resources {
		for _, topic := range k.Topics[resource] {
			out[topic] = append(out[topic], resource)
		}
	}
	return out
}
