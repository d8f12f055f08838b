package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
	Paths    PathsConfig  `mapstructure:"paths"`
	Server   ServerConfig `mapstructure:"server"`
	TTS      TTSConfig    `mapstructure:"tts"`
	Live     LiveConfig   `mapstructure:"live"`
}

type GeminiConfig struct {
	APIKey        string `mapstructure:"api_key"`
	SpeechModel   string `mapstructure:"speech_model"`
	AnalysisModel string `mapstructure:"analysis_model"`
}

type PathsConfig struct {
	VoicesPath string `mapstructure:"voices_path"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	Workers         int    `mapstructure:"workers"`
}

type TTSConfig struct {
	Voice       string `mapstructure:"voice"`
	Emotion     string `mapstructure:"emotion"`
	CustomStyle string `mapstructure:"custom_style"`
	Concurrency int    `mapstructure:"concurrency"`
}

type LiveConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Gemini: GeminiConfig{
			APIKey:        "",
			SpeechModel:   "gemini-2.5-flash-preview-tts",
			AnalysisModel: "gemini-2.5-pro",
		},
		Paths: PathsConfig{
			VoicesPath: "voices/custom.json",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    4096,
			RequestTimeout:  60,
			ShutdownTimeout: 30,
			Workers:         2,
		},
		TTS: TTSConfig{
			Voice:       "Kore",
			Emotion:     "neutrally",
			CustomStyle: "",
			Concurrency: 4,
		},
		Live: LiveConfig{
			DebounceMS: 800,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("gemini-speech-model", defaults.Gemini.SpeechModel, "Gemini speech synthesis model")
	fs.String("gemini-analysis-model", defaults.Gemini.AnalysisModel, "Gemini transcription/analysis model")
	fs.String("paths-voices-path", defaults.Paths.VoicesPath, "Path to custom voice manifest")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum text size accepted by POST /tts")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request synthesis deadline in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown drain period in seconds")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent synthesis requests served")
	fs.String("tts-voice", defaults.TTS.Voice, "Default voice ID")
	fs.String("tts-emotion", defaults.TTS.Emotion, "Default emotion style phrase (or 'custom')")
	fs.String("tts-custom-style", defaults.TTS.CustomStyle, "Custom style text used when emotion is 'custom'")
	fs.Int("tts-concurrency", defaults.TTS.Concurrency, "Max concurrent dialogue line syntheses")
	fs.Int("live-debounce-ms", defaults.Live.DebounceMS, "Live mode input debounce in milliseconds")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("VOICESTUDIO")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("gemini.api_key", "VOICESTUDIO_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind api key env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("voicestudio")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("gemini.api_key", c.Gemini.APIKey)
	v.SetDefault("gemini.speech_model", c.Gemini.SpeechModel)
	v.SetDefault("gemini.analysis_model", c.Gemini.AnalysisModel)
	v.SetDefault("paths.voices_path", c.Paths.VoicesPath)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("tts.voice", c.TTS.Voice)
	v.SetDefault("tts.emotion", c.TTS.Emotion)
	v.SetDefault("tts.custom_style", c.TTS.CustomStyle)
	v.SetDefault("tts.concurrency", c.TTS.Concurrency)
	v.SetDefault("live.debounce_ms", c.Live.DebounceMS)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("gemini.speech_model", "gemini-speech-model")
	v.RegisterAlias("gemini.analysis_model", "gemini-analysis-model")
	v.RegisterAlias("paths.voices_path", "paths-voices-path")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.request_timeout", "server-request-timeout")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("tts.voice", "tts-voice")
	v.RegisterAlias("tts.emotion", "tts-emotion")
	v.RegisterAlias("tts.custom_style", "tts-custom-style")
	v.RegisterAlias("tts.concurrency", "tts-concurrency")
	v.RegisterAlias("live.debounce_ms", "live-debounce-ms")
}
