package composite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/loss-mitigation/internal/config"
	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
)

// FactSource supplies default borrower facts extracted from servicing
// documents. A borrower with no facts yields an empty map, not an error.
type FactSource interface {
	Facts(ctx context.Context, borrowerID string) (map[string]any, error)
}

// NoFacts is a FactSource that never has facts.
type NoFacts struct{}

// Facts returns an empty map.
func (NoFacts) Facts(context.Context, string) (map[string]any, error) {
	return map[string]any{}, nil
}

// StaticFacts serves facts held in memory, keyed by borrower ID.
type StaticFacts map[string]map[string]any

// Facts returns a copy of the borrower's facts.
func (s StaticFacts) Facts(_ context.Context, borrowerID string) (map[string]any, error) {
	out := make(map[string]any, len(s[borrowerID]))
	for k, v := range s[borrowerID] {
		out[k] = v
	}
	return out, nil
}

// FileFacts reads <Dir>/<borrowerID>.yaml documents.
type FileFacts struct {
	Dir string
}

// Facts reads and parses the borrower's YAML document.
func (f FileFacts) Facts(_ context.Context, borrowerID string) (map[string]any, error) {
	if err := checkBorrowerID(borrowerID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(f.Dir, borrowerID+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, calcerr.Wrap(calcerr.CodeFactSource, "", "failed to read borrower facts", err)
	}

	facts := map[string]any{}
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, calcerr.Wrap(calcerr.CodeFactSource, "", fmt.Sprintf("failed to parse facts for borrower %s", borrowerID), err)
	}
	return facts, nil
}

// RedisGetter is the subset of the go-redis client used to read documents.
type RedisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisFacts reads JSON fact documents stored under <prefix><borrowerID>.
type RedisFacts struct {
	client RedisGetter
	prefix string
}

// NewRedisFacts constructs a RedisFacts reading through client.
func NewRedisFacts(client RedisGetter, prefix string) *RedisFacts {
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisFacts{client: client, prefix: prefix}
}

// Facts fetches and decodes the borrower's document. Numbers are kept as
// json.Number so amounts survive without float rounding.
func (r *RedisFacts) Facts(ctx context.Context, borrowerID string) (map[string]any, error) {
	if err := checkBorrowerID(borrowerID); err != nil {
		return nil, err
	}

	val, err := r.client.Get(ctx, r.prefix+borrowerID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]any{}, nil
		}
		return nil, calcerr.Wrap(calcerr.CodeFactSource, "", "failed to read borrower facts from redis", err)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(val)))
	dec.UseNumber()
	facts := map[string]any{}
	if err := dec.Decode(&facts); err != nil {
		return nil, calcerr.Wrap(calcerr.CodeFactSource, "", fmt.Sprintf("failed to parse facts for borrower %s", borrowerID), err)
	}
	return facts, nil
}

// NewFactSource builds the configured fact source. The returned close
// function releases any connection the source holds.
func NewFactSource(logger *zap.Logger, conf config.FactsConfig) (FactSource, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch conf.Backend {
	case "", constants.FactBackendNone:
		return NoFacts{}, noop, nil
	case constants.FactBackendFile:
		if conf.Directory == "" {
			return NoFacts{}, noop, nil
		}
		logger.Info(fmt.Sprintf("reading borrower facts from %s", conf.Directory),
			zap.String("op", "composite.NewFactSource"),
		)
		return FileFacts{Dir: conf.Directory}, noop, nil
	case constants.FactBackendRedis:
		if conf.RedisAddress == "" {
			return NoFacts{}, noop, nil
		}
		client := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddress,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		})
		logger.Info(fmt.Sprintf("reading borrower facts from redis at %s", conf.RedisAddress),
			zap.String("op", "composite.NewFactSource"),
		)
		return NewRedisFacts(client, conf.RedisKeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown facts backend %q", conf.Backend)
	}
}

// checkBorrowerID rejects IDs that cannot name a single document.
func checkBorrowerID(borrowerID string) error {
	if borrowerID == "" || strings.ContainsAny(borrowerID, `/\`) || strings.Contains(borrowerID, "..") {
		return calcerr.Newf(calcerr.CodeInvalidInput, "borrowerId", "invalid borrower ID %q", borrowerID)
	}
	return nil
}
