package fraud

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"swiftflow/internal/fraud/metrics"
	"swiftflow/internal/swift"
)

const (
	// DefaultWorkers bounds the scoring pool.
	DefaultWorkers = 8

	// DefaultTaskTimeout is how long the join step waits for one agent's
	// result before dropping it.
	DefaultTaskTimeout = 5 * time.Second
)

// Scheduler fans N messages out across A agents as N*A independent tasks on
// a bounded worker pool, joins each message's results in submission order,
// and writes the aggregated verdict back onto the message.
type Scheduler struct {
	agents      []Agent
	aggregator  *Aggregator
	workers     int64
	taskTimeout time.Duration
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithWorkers overrides the pool size.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = int64(n)
		}
	}
}

// WithTaskTimeout overrides the per-task join timeout.
func WithTaskTimeout(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.taskTimeout = d
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(logger zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) SchedulerOption {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// NewScheduler constructs a fan-out scheduler over the given agents.
func NewScheduler(agents []Agent, aggregator *Aggregator, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		agents:      agents,
		aggregator:  aggregator,
		workers:     DefaultWorkers,
		taskTimeout: DefaultTaskTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessBatch blocks until every message's tasks resolve or time out, then
// returns the same slice with fraud fields populated. Processing order
// across messages is unspecified; one message's total failure never halts
// the others.
func (s *Scheduler) ProcessBatch(ctx context.Context, messages []*swift.Message) []*swift.Message {
	start := time.Now()
	s.logger.Info().
		Int("messages", len(messages)).
		Int("agents", len(s.agents)).
		Msg("starting parallel fraud scoring")

	sem := semaphore.NewWeighted(s.workers)
	var g errgroup.Group

	for _, msg := range messages {
		// Submit all of this message's tasks before its join starts, so
		// result order follows submission order, not completion order.
		futures := make([]<-chan swift.AgentScore, len(s.agents))
		for i, agent := range s.agents {
			futures[i] = s.submit(ctx, sem, agent, msg)
		}

		g.Go(func() error {
			s.join(ctx, msg, futures)
			return nil
		})
	}
	_ = g.Wait()

	flagged := 0
	for _, msg := range messages {
		if msg.FraudStatus == swift.FraudFraudulent {
			flagged++
		}
	}
	s.logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("flagged", flagged).
		Int("total", len(messages)).
		Msg("parallel fraud scoring complete")

	return messages
}

// submit schedules one agent/message task on the pool. The task gets its own
// copy of the message, so scoring needs no locking. The returned channel is
// buffered: an abandoned task can still complete and release its worker slot
// without anyone receiving the result.
func (s *Scheduler) submit(ctx context.Context, sem *semaphore.Weighted, agent Agent, msg *swift.Message) <-chan swift.AgentScore {
	ch := make(chan swift.AgentScore, 1)
	task := msg.Clone()

	go func() {
		if err := sem.Acquire(ctx, 1); err != nil {
			close(ch)
			return
		}
		defer sem.Release(1)

		start := time.Now()
		ch <- s.runAgent(agent, task)
		s.metrics.ObserveTaskDuration(agent.Name(), time.Since(start))
	}()

	return ch
}

// runAgent converts any agent panic into a zero-risk, error-tagged score so
// a misbehaving scorer never takes the batch down.
func (s *Scheduler) runAgent(agent Agent, msg *swift.Message) (score swift.AgentScore) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("agent", agent.Name()).
				Str("message_id", msg.ID).
				Msgf("agent panicked: %v", r)
			score = swift.AgentScore{
				Agent:        agent.Name(),
				RiskScore:    0,
				FraudReasons: []string{},
				MessageID:    msg.ID,
				Error:        fmt.Sprintf("agent failure: %v", r),
			}
		}
	}()

	score = agent.Analyze(msg)
	if score.MessageID == "" {
		score.MessageID = msg.ID
	}
	return score
}

// join collects one message's results in submission order, dropping tasks
// that time out, then aggregates and writes the verdict. This is the single
// mutation point for the message and runs strictly after all of its futures
// resolved or were abandoned.
func (s *Scheduler) join(ctx context.Context, msg *swift.Message, futures []<-chan swift.AgentScore) {
	results := make([]swift.AgentScore, 0, len(futures))

	for i, future := range futures {
		timer := time.NewTimer(s.taskTimeout)
		select {
		case score, ok := <-future:
			if ok {
				results = append(results, score)
			} else {
				s.metrics.IncTaskDropped(s.agents[i].Name(), "canceled")
			}
		case <-timer.C:
			// Best-effort abandonment: the result is discarded but the
			// task itself is not interrupted.
			s.metrics.IncTaskDropped(s.agents[i].Name(), "timeout")
			s.logger.Warn().
				Str("agent", s.agents[i].Name()).
				Str("message_id", msg.ID).
				Dur("timeout", s.taskTimeout).
				Msg("scoring task timed out, dropping result")
		case <-ctx.Done():
			s.metrics.IncTaskDropped(s.agents[i].Name(), "canceled")
		}
		timer.Stop()
	}

	verdict := s.aggregator.Aggregate(results)

	msg.FraudAnalysis = results
	msg.FraudScore = verdict.Confidence
	msg.FraudReasons = verdict.AggregatedReasons
	if verdict.IsFraudulent {
		msg.FraudStatus = swift.FraudFraudulent
	} else {
		msg.FraudStatus = swift.FraudClean
	}
	s.metrics.IncVerdict(string(msg.FraudStatus))
}
