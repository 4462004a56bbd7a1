package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/service/qa"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	bearerProtocol         = "bearer"
	maxDecodeErrorsPerConn = 3
	maxFramePayloadBytes   = 64 << 10
	defaultMaxInflight     = 8

	msgInvalidFrame = "Format pesan tidak valid"
	msgUnknownFrame = "Jenis pesan tidak dikenal"
	msgBusy         = "Terlalu banyak pertanyaan yang sedang diproses, coba lagi sebentar"
)

type channelKey struct{}

// Handler upgrades authenticated requests to session channels.
type Handler struct {
	authority   core.SessionAuthority
	answerer    core.Answerer
	metrics     *metrics.Collector
	maxInflight int
	server      websocket.Server
}

func NewHandler(cfg *config.QAConfig, authority core.SessionAuthority, answerer core.Answerer, mc *metrics.Collector) *Handler {
	h := &Handler{
		authority:   authority,
		answerer:    answerer,
		metrics:     mc,
		maxInflight: cfg.MaxInflight,
	}
	if h.maxInflight <= 0 {
		h.maxInflight = defaultMaxInflight
	}
	h.server = websocket.Server{
		Handshake: handshake,
		Handler:   h.serveConn,
	}
	return h
}

// ServeHTTP verifies the token before the upgrade. A refused request gets
// a plain 401 and never becomes a websocket.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger := log.FromCtx(r.Context())
	ch := NewChannel()

	identity, err := h.authority.VerifyToken(tokenFromRequest(r))
	if err != nil || !ch.Authenticate(identity) {
		ch.Close()
		h.metrics.ChannelAuthFailures.Inc()
		logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("session channel refused")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	ctx := context.WithValue(r.Context(), channelKey{}, ch)
	h.server.ServeHTTP(w, r.WithContext(ctx))
}

// tokenFromRequest reads "Authorization: Bearer <t>" or, for browsers that
// cannot set headers, "Sec-WebSocket-Protocol: bearer, <t>".
func tokenFromRequest(r *http.Request) string {
	if v := r.Header.Get("Authorization"); v != "" {
		scheme, token, ok := strings.Cut(strings.TrimSpace(v), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}

	protocols := splitProtocols(r.Header.Get("Sec-WebSocket-Protocol"))
	for i, p := range protocols {
		if p == bearerProtocol && i+1 < len(protocols) {
			return protocols[i+1]
		}
	}
	return ""
}

func splitProtocols(header string) []string {
	var out []string
	for _, p := range strings.Split(header, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// handshake accepts any origin and echoes only the bearer sub-protocol so
// the token is never reflected back.
func handshake(cfg *websocket.Config, r *http.Request) error {
	cfg.Origin, _ = websocket.Origin(cfg, r)

	var selected []string
	for _, p := range cfg.Protocol {
		if p == bearerProtocol {
			selected = []string{bearerProtocol}
			break
		}
	}
	cfg.Protocol = selected
	return nil
}

type connSender struct {
	conn *websocket.Conn
}

func (s connSender) Send(frame Frame) error {
	return websocket.JSON.Send(s.conn, frame)
}

func (h *Handler) serveConn(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	conn.MaxPayloadBytes = maxFramePayloadBytes

	ch, ok := conn.Request().Context().Value(channelKey{}).(*Channel)
	if !ok || !ch.Open(connSender{conn: conn}) {
		return
	}
	identity := ch.Identity()

	logger := log.FromCtx(conn.Request().Context()).With().
		Str("channel_id", ch.ID()).
		Str("user_id", identity.ID).
		Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(conn.Request().Context()))

	h.metrics.ChannelsActive.Inc()
	logger.Info().Msg("session channel open")

	var g errgroup.Group
	g.SetLimit(h.maxInflight)

	defer func() {
		ch.Close()
		cancel()
		_ = g.Wait()
		h.metrics.ChannelsActive.Dec()
		logger.Info().Msg("session channel closed")
	}()

	decodeErrors := 0
	for {
		var frame Frame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			// The rest of an oversized frame is drained by the next Receive.
			if errors.Is(err, websocket.ErrFrameTooLarge) {
				logger.Debug().Msg("frame too large")
				_ = ch.Emit(errorFrame("", qa.ClientMessage(qa.ErrQueryTooLong)))
				continue
			}
			if !isDecodeError(err) {
				return
			}
			decodeErrors++
			_ = ch.Emit(errorFrame("", msgInvalidFrame))
			if decodeErrors >= maxDecodeErrorsPerConn {
				logger.Warn().Msg("too many invalid frames, closing channel")
				return
			}
			continue
		}
		decodeErrors = 0

		switch frame.Type {
		case FrameSubmitQuery:
			var text string
			if err := json.Unmarshal(frame.Payload, &text); err != nil {
				_ = ch.Emit(errorFrame(frame.RequestID, msgInvalidFrame))
				continue
			}
			requestID := frame.RequestID
			started := g.TryGo(func() error {
				h.answer(ctx, ch, identity, requestID, text)
				return nil
			})
			if !started {
				_ = ch.Emit(errorFrame(requestID, msgBusy))
			}
		default:
			_ = ch.Emit(errorFrame(frame.RequestID, msgUnknownFrame))
		}
	}
}

// answer runs one query. Failures become a queryError on the same channel
// and never close it.
func (h *Handler) answer(ctx context.Context, ch *Channel, identity core.Identity, requestID, text string) {
	logger := log.FromCtx(ctx)

	answer, err := h.answerer.Ask(ctx, &identity, text)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			logger.Debug().Err(err).Str("request_id", requestID).Msg("query rejected")
		} else {
			logger.Error().Err(err).Str("request_id", requestID).Msg("query failed")
		}
		_ = ch.Emit(errorFrame(requestID, qa.ClientMessage(err)))
		return
	}

	if err := ch.Emit(answerFrame(requestID, answer)); err != nil {
		logger.Debug().Err(err).Str("request_id", requestID).Msg("failed to deliver answer")
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
