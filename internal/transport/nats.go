// Package transport serves the orchestrator over NATS request/reply. It
// owns everything the pure core must not do: schema validation, context
// snapshot merging, delegated LLM resolution, metrics and logging.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/voiceking/voiceking-orchestrator/internal/config"
	"github.com/voiceking/voiceking-orchestrator/internal/contextstore"
	"github.com/voiceking/voiceking-orchestrator/internal/llm"
	"github.com/voiceking/voiceking-orchestrator/internal/metrics"
	"github.com/voiceking/voiceking-orchestrator/internal/models"
	"github.com/voiceking/voiceking-orchestrator/internal/orchestrator"
	"github.com/voiceking/voiceking-orchestrator/internal/prompts"
	"github.com/voiceking/voiceking-orchestrator/internal/validation"
)

// CommandRequest is the wire envelope around the core request. SessionID
// and RequestID exist for correlation and snapshot lookup only; the core
// never sees them.
type CommandRequest struct {
	SessionID string `json:"session_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	models.Request
}

// CommandReply is the wire envelope around the core response.
type CommandReply struct {
	SessionID string `json:"session_id,omitempty"`
	RequestID string `json:"request_id"`
	models.Response
}

// ErrorReply reports a transport-level failure; the core was not invoked.
type ErrorReply struct {
	SessionID string `json:"session_id,omitempty"`
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

const errInvalidRequest = "invalid_request"

type NATSTransport struct {
	conn     *nats.Conn
	cfg      *config.Config
	core     *orchestrator.Orchestrator
	store    contextstore.Store // nil disables snapshot merging
	provider llm.Provider       // nil disables delegated resolution
	metrics  *metrics.Metrics
	logger   *zap.Logger

	commandSub *nats.Subscription
	contextSub *nats.Subscription
}

func NewNATSTransport(
	cfg *config.Config,
	core *orchestrator.Orchestrator,
	store contextstore.Store,
	provider llm.Provider,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	logger.Info("connected to NATS", zap.String("url", cfg.NatsURL))

	return &NATSTransport{
		conn:     conn,
		cfg:      cfg,
		core:     core,
		store:    store,
		provider: provider,
		metrics:  m,
		logger:   logger,
	}, nil
}

// Start subscribes to the command subject and, when a store is configured,
// to the context-snapshot subject.
func (nt *NATSTransport) Start() error {
	sub, err := nt.conn.Subscribe(nt.cfg.NatsRequestSubject, nt.handleCommand)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", nt.cfg.NatsRequestSubject, err)
	}
	nt.commandSub = sub
	nt.logger.Info("subscribed", zap.String("subject", nt.cfg.NatsRequestSubject))

	if nt.store != nil {
		sub, err := nt.conn.Subscribe(nt.cfg.NatsContextSubject, nt.handleContextUpdate)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", nt.cfg.NatsContextSubject, err)
		}
		nt.contextSub = sub
		nt.logger.Info("subscribed", zap.String("subject", nt.cfg.NatsContextSubject))
	}
	return nil
}

func (nt *NATSTransport) handleCommand(msg *nats.Msg) {
	start := time.Now()
	defer func() {
		nt.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	}()

	if err := validation.ValidateRequest(msg.Data); err != nil {
		nt.metrics.ParseFailures.Inc()
		nt.logger.Warn("rejected request document", zap.Error(err))
		nt.replyError(msg, "", err)
		return
	}

	var request CommandRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.metrics.ParseFailures.Inc()
		nt.logger.Warn("unparseable request document", zap.Error(err))
		nt.replyError(msg, "", err)
		return
	}
	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	logger := nt.logger.With(
		zap.String("request_id", request.RequestID),
		zap.String("session_id", request.SessionID),
	)

	nt.mergeSnapshot(&request, logger)

	response := nt.core.Process(&request.Request)
	nt.metrics.RequestsTotal.WithLabelValues(response.Log.IntentDetected).Inc()
	if deniedByPolicy(response) {
		nt.metrics.PolicyDenials.Inc()
	}

	response = nt.resolveDelegated(&request, response, logger)

	logger.Info("command processed",
		zap.String("intent", response.Log.IntentDetected),
		zap.String("action", response.Action),
		zap.Float64("confidence", response.Log.Confidence),
	)

	nt.reply(msg, &CommandReply{
		SessionID: request.SessionID,
		RequestID: request.RequestID,
		Response:  *response,
	})
}

// mergeSnapshot fills context the request omitted from the session's
// latest published snapshot, when a store is configured.
func (nt *NATSTransport) mergeSnapshot(request *CommandRequest, logger *zap.Logger) {
	if nt.store == nil || request.SessionID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), nt.cfg.NatsTimeout)
	defer cancel()

	snapshot, err := nt.store.Load(ctx, request.SessionID)
	if err != nil {
		logger.Warn("context snapshot load failed", zap.Error(err))
		return
	}
	if snapshot != nil {
		snapshot.Merge(&request.Request)
	}
}

func (nt *NATSTransport) resolveDelegated(request *CommandRequest, response *models.Response, logger *zap.Logger) *models.Response {
	if nt.provider == nil {
		return response
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.cfg.LLMTimeout)
	defer cancel()

	resolved, err := delegateAndReenter(ctx, nt.core, nt.provider, &request.Request, response)
	if err != nil {
		nt.metrics.LLMResolutions.WithLabelValues("error").Inc()
		logger.Warn("delegated resolution failed",
			zap.String("provider", nt.provider.Name()), zap.Error(err))
		return response
	}
	if resolved != response {
		nt.metrics.LLMResolutions.WithLabelValues("ok").Inc()
	}
	return resolved
}

// delegateAndReenter performs the delegate-and-re-enter loop: when the core
// hands off an llm_query or llm_summarize action, the prompt is resolved
// through the provider and the core re-run with the summary, yielding the
// final speak_results response. Non-delegated responses pass through
// untouched. On provider failure the delegated descriptor is returned
// unchanged alongside the error so the backend can retry on its side.
func delegateAndReenter(ctx context.Context, core *orchestrator.Orchestrator, provider llm.Provider, req *models.Request, resp *models.Response) (*models.Response, error) {
	var prompt string
	switch resp.Action {
	case models.ActionLLMQuery:
		prompt, _ = resp.Params["prompt"].(string)
	case models.ActionLLMSummarize:
		prompt = prompts.BuildSummarizePrompt(req.ResultSet)
	default:
		return resp, nil
	}
	if prompt == "" {
		return resp, nil
	}

	summary, err := provider.Resolve(ctx, prompt)
	if err != nil {
		return resp, err
	}

	followUp := *req
	followUp.Transcript = ""
	followUp.LLMSummary = summary
	return core.Process(&followUp), nil
}

func (nt *NATSTransport) handleContextUpdate(msg *nats.Msg) {
	var snapshot contextstore.Snapshot
	if err := json.Unmarshal(msg.Data, &snapshot); err != nil {
		nt.metrics.ParseFailures.Inc()
		nt.logger.Warn("unparseable context snapshot", zap.Error(err))
		return
	}
	if snapshot.SessionID == "" {
		nt.logger.Warn("context snapshot without session_id dropped")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.cfg.NatsTimeout)
	defer cancel()

	if err := nt.store.Save(ctx, &snapshot); err != nil {
		nt.logger.Error("context snapshot save failed",
			zap.String("session_id", snapshot.SessionID), zap.Error(err))
		return
	}
	nt.logger.Debug("context snapshot stored", zap.String("session_id", snapshot.SessionID))
}

func deniedByPolicy(response *models.Response) bool {
	for _, code := range response.Log.Errors {
		if code == models.ErrorPolicyViolation {
			return true
		}
	}
	return false
}

func (nt *NATSTransport) reply(msg *nats.Msg, reply *CommandReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		nt.logger.Error("marshal reply failed", zap.Error(err))
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error("send reply failed", zap.Error(err))
	}
}

func (nt *NATSTransport) replyError(msg *nats.Msg, sessionID string, cause error) {
	data, err := json.Marshal(&ErrorReply{
		SessionID: sessionID,
		RequestID: uuid.NewString(),
		Error:     errInvalidRequest,
		Message:   cause.Error(),
	})
	if err != nil {
		nt.logger.Error("marshal error reply failed", zap.Error(err))
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error("send error reply failed", zap.Error(err))
	}
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		nt.conn.Close()
		nt.logger.Info("NATS connection closed")
	}
	return nil
}
