package adapter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/queue/port"
	"go-tawk/pkg/logger"
)

// ===================== Client =====================

// AsynqClient implements port.Client on top of asynq and Redis.
type AsynqClient struct {
	client *asynq.Client
}

// NewAsynqClient builds a client for the given redis:// URL.
func NewAsynqClient(redisURL string) (*AsynqClient, error) {
	opt, err := parseRedis(redisURL)
	if err != nil {
		return nil, err
	}
	return &AsynqClient{client: asynq.NewClient(opt)}, nil
}

var _ port.Client = (*AsynqClient)(nil)

func (a *AsynqClient) Enqueue(ctx context.Context, t port.Task, opts ...port.EnqueueOption) (string, error) {
	if t.Type == "" {
		return "", errors.New("asynq: task type is required")
	}
	info, err := a.client.EnqueueContext(ctx, asynq.NewTask(t.Type, t.Payload), toAsynqOptions(opts)...)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (a *AsynqClient) Close() error {
	return a.client.Close()
}

// toAsynqOptions folds opts in order; a later non-zero field overrides an
// earlier one.
func toAsynqOptions(opts []port.EnqueueOption) []asynq.Option {
	var merged port.EnqueueOption
	for _, op := range opts {
		if op.Queue != "" {
			merged.Queue = op.Queue
		}
		if op.MaxRetry > 0 {
			merged.MaxRetry = op.MaxRetry
		}
		if op.Retention > 0 {
			merged.Retention = op.Retention
		}
	}
	var out []asynq.Option
	if merged.Queue != "" {
		out = append(out, asynq.Queue(merged.Queue))
	}
	if merged.MaxRetry > 0 {
		out = append(out, asynq.MaxRetry(merged.MaxRetry))
	}
	if merged.Retention > 0 {
		out = append(out, asynq.Retention(merged.Retention))
	}
	return out
}

// ===================== Server =====================

// AsynqServer implements port.Server with asynq.
type AsynqServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewAsynqServer builds a worker server. Queue weights come from a CSV such
// as "critical=6,default=3,low=1"; concurrency defaults to 10.
func NewAsynqServer(redisURL string, cfg config.Queue, log *logger.Logger) (*AsynqServer, error) {
	opt, err := parseRedis(redisURL)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	queues := map[string]int{"default": 1, "presence": 1}
	if parsed := parseQueueWeights(cfg.Queues); len(parsed) > 0 {
		queues = parsed
	}

	if log == nil {
		log = &logger.Logger{}
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("asynq task failed", "type", task.Type(), "err", err)
		}),
	})
	return &AsynqServer{server: srv, mux: asynq.NewServeMux()}, nil
}

var _ port.Server = (*AsynqServer)(nil)

func (s *AsynqServer) Register(taskType string, h port.Handler) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		return h(ctx, port.Task{Type: t.Type(), Payload: t.Payload()})
	})
}

// Run starts the server and blocks until ctx is canceled, then shuts down.
func (s *AsynqServer) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return nil
}

func (s *AsynqServer) Stop(_ context.Context) error {
	s.server.Shutdown()
	return nil
}

func parseRedis(redisURL string) (asynq.RedisConnOpt, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, errors.New("asynq: REDIS_URL is not set")
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse REDIS_URL: %w", err)
	}
	return opt, nil
}

// parseQueueWeights parses strings like "critical=6,default=3,low=1" into a map.
func parseQueueWeights(s string) map[string]int {
	res := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		w := 1
		if len(kv) == 2 {
			if i, err := strconv.Atoi(strings.TrimSpace(kv[1])); err == nil && i > 0 {
				w = i
			}
		}
		res[name] = w
	}
	return res
}
