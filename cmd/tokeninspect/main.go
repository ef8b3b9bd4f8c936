package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Wang-tianhao/token-inspector-go/tokeninspect"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Exit codes
const (
	exitValid       = 0
	exitExpired     = 1
	exitAbsent      = 2
	exitMalformed   = 3
	exitConfigError = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tokeninspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "Config file (default: ./tokeninspect.yaml if present)")
	// Values below are read back through viper, see loadConfig.
	fs.String("store", "file", "Token store: file, redis, memcache")
	fs.String("file", "storage.json", "JSON storage file for the file store")
	fs.String("redis-addr", "localhost:6379", "Redis address for the redis store")
	fs.String("memcache-addr", "localhost:11211", "Memcached address for the memcache store")
	fs.String("prefix", "", "Key prefix for redis/memcache stores")
	fs.String("key", tokeninspect.DefaultStorageKey, "Storage key holding the token")
	fs.String("token", "", "Inspect this token instead of reading a store")
	fs.String("secret", "", "HS256 secret for optional signature verification")
	fs.String("rsa-public-key", "", "PEM file for optional RS256 signature verification")
	fs.String("layout", time.RFC3339, "Go time layout for rendered timestamps")
	fs.String("log-format", "text", "Diagnostic log format: text, json, none")
	if err := fs.Parse(args); err != nil {
		return exitConfigError
	}

	v, err := loadConfig(fs, *configFile)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return exitConfigError
	}

	store, err := buildStore(v)
	if err != nil {
		fmt.Fprintf(stderr, "store error: %v\n", err)
		return exitConfigError
	}

	opts := []tokeninspect.Option{
		tokeninspect.WithStorageKey(v.GetString("key")),
		tokeninspect.WithTimeLayout(v.GetString("layout")),
	}
	if logger := buildLogger(v.GetString("log-format"), stderr); logger != nil {
		opts = append(opts, tokeninspect.WithLogger(logger))
	}
	if secret := v.GetString("secret"); secret != "" {
		opts = append(opts, tokeninspect.WithHS256([]byte(secret)))
	}
	if path := v.GetString("rsa-public-key"); path != "" {
		key, err := tokeninspect.LoadRSAPublicKey(path)
		if err != nil {
			fmt.Fprintf(stderr, "key error: %v\n", err)
			return exitConfigError
		}
		opts = append(opts, tokeninspect.WithRS256(key))
	}

	insp, err := tokeninspect.NewInspector(store, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitConfigError
	}

	report := insp.Inspect(context.Background())
	printReport(stdout, report)

	switch report.Status {
	case tokeninspect.StatusAbsent:
		return exitAbsent
	case tokeninspect.StatusPresent:
		if report.Expired {
			return exitExpired
		}
		return exitValid
	}
	return exitMalformed
}

// loadConfig layers explicitly set flags over TOKENINSPECT_* environment
// variables over the optional YAML config file over flag defaults.
func loadConfig(fs *flag.FlagSet, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TOKENINSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *flag.Flag) {
		v.SetDefault(f.Name, f.DefValue)
	})

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tokeninspect")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})

	return v, nil
}

func buildStore(v *viper.Viper) (tokeninspect.Store, error) {
	if token := v.GetString("token"); token != "" {
		return tokeninspect.NewMemoryStore(map[string]string{v.GetString("key"): token}), nil
	}

	switch kind := v.GetString("store"); kind {
	case "file":
		return tokeninspect.NewFileStore(v.GetString("file")), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr: v.GetString("redis-addr"),
		})
		return tokeninspect.NewRedisStore(rdb, v.GetString("prefix")), nil
	case "memcache":
		mc := memcache.New(v.GetString("memcache-addr"))
		return tokeninspect.NewMemcacheStore(mc, v.GetString("prefix")), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want file, redis or memcache)", kind)
	}
}

func buildLogger(format string, w io.Writer) *slog.Logger {
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "none":
		return nil
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

func printReport(w io.Writer, report tokeninspect.Report) {
	fmt.Fprintf(w, "token:      %s (%s)\n", report.Status, report.Source)

	switch report.Status {
	case tokeninspect.StatusPresent:
		if report.Algorithm != "" {
			fmt.Fprintf(w, "algorithm:  %s\n", report.Algorithm)
		}
		if claims, err := json.MarshalIndent(report.Claims, "            ", "  "); err != nil {
			fmt.Fprintf(w, "claims:     <unprintable: %v>\n", err)
		} else {
			fmt.Fprintf(w, "claims:     %s\n", claims)
		}
		fmt.Fprintf(w, "expires at: %s\n", report.ExpiresAtString())
		fmt.Fprintf(w, "now:        %s\n", report.NowString())
		fmt.Fprintf(w, "expired:    %t\n", report.Expired)
		if report.Verified {
			fmt.Fprintf(w, "signature:  verified\n")
		} else if report.VerifyErr != nil {
			fmt.Fprintf(w, "signature:  %v\n", report.VerifyErr)
		}
	case tokeninspect.StatusAbsent:
		fmt.Fprintf(w, "now:        %s\n", report.NowString())
	default:
		fmt.Fprintf(w, "error:      %v\n", report.Err)
	}
}
