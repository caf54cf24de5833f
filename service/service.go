// Package service exposes a Converter over NATS request-reply. Each
// operation of the core API maps to one subject with JSON request and
// response payloads; errors travel as a kind/message envelope so callers
// in any language can classify failures without parsing messages.
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/curies"
	"github.com/c360/curies/errors"
)

// QueueGroup is the queue group shared by service instances, so
// conversion load balances across replicas serving the same registry.
const QueueGroup = "curies"

// Service serves a Converter over NATS. The wrapped Converter is treated
// as read-only for the lifetime of the service; handlers only call its
// query methods.
type Service struct {
	converter *curies.Converter
	conn      *nats.Conn
	logger    *slog.Logger
	metrics   *Metrics

	// pendingRegisterer is applied at the end of New so option order
	// does not matter.
	pendingRegisterer prometheus.Registerer

	mu      sync.Mutex
	subs    []*nats.Subscription
	started bool
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRegisterer registers the service metrics with reg. Without this
// option metrics are still collected but not exported. Registration
// errors surface from New.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Service) {
		s.pendingRegisterer = reg
	}
}

// New creates a conversion service for the given connection and
// converter.
func New(conn *nats.Conn, converter *curies.Converter, opts ...Option) (*Service, error) {
	if conn == nil {
		return nil, errors.InvalidFormat("service requires a NATS connection")
	}
	if converter == nil {
		return nil, errors.InvalidFormat("service requires a converter")
	}
	s := &Service{
		converter: converter,
		conn:      conn,
		logger:    slog.Default(),
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pendingRegisterer != nil {
		if err := s.metrics.Register(s.pendingRegisterer); err != nil {
			return nil, errors.Wrap(err, "Service", "New", "metrics registration")
		}
	}
	s.metrics.RegistryRecords.Set(float64(converter.Len()))
	return s, nil
}

// Start subscribes to all conversion subjects.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.InvalidFormat("service already started")
	}

	handlers := []struct {
		subject string
		handle  func([]byte) (any, error)
	}{
		{SubjectExpand, s.handleExpand},
		{SubjectCompress, s.handleCompress},
		{SubjectExpandList, s.handleExpandList},
		{SubjectCompressList, s.handleCompressList},
		{SubjectStandardizePrefix, s.handleStandardizePrefix},
		{SubjectStandardizeCURIE, s.handleStandardizeCURIE},
		{SubjectStandardizeURI, s.handleStandardizeURI},
		{SubjectPrefixMap, s.handlePrefixMap},
	}
	for _, h := range handlers {
		h := h
		sub, err := s.conn.QueueSubscribe(h.subject, QueueGroup, func(msg *nats.Msg) {
			s.respond(msg, h.subject, h.handle)
		})
		if err != nil {
			s.unsubscribeLocked()
			return errors.Wrap(err, "Service", "Start", "subscribe "+h.subject)
		}
		s.subs = append(s.subs, sub)
	}
	s.started = true
	s.logger.Info("conversion service started",
		"subjects", len(handlers), "records", s.converter.Len())
	return nil
}

// Stop unsubscribes from all subjects.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return errors.InvalidFormat("service not started")
	}
	s.unsubscribeLocked()
	s.started = false
	s.logger.Info("conversion service stopped")
	return nil
}

func (s *Service) unsubscribeLocked() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = nil
}

// respond runs a handler, records metrics, and replies on the message.
func (s *Service) respond(msg *nats.Msg, operation string, handle func([]byte) (any, error)) {
	requestID := uuid.NewString()
	start := time.Now()

	result, err := handle(msg.Data)
	status := "success"
	var payload []byte
	if err != nil {
		status = "error"
		payload = mustMarshal(errorResponse{Error: errorInfo(err)})
	} else {
		payload = mustMarshal(result)
	}
	s.metrics.observe(operation, status, time.Since(start))

	if respondErr := msg.Respond(payload); respondErr != nil {
		s.logger.Error("failed to respond",
			"operation", operation, "request_id", requestID, "error", respondErr)
		return
	}
	s.logger.Debug("handled request",
		"operation", operation, "request_id", requestID, "status", status,
		"duration", time.Since(start))
}

// mustMarshal encodes a response payload. The payload types contain only
// marshalable fields, so failure indicates a programming error.
func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprintf(`{"error":{"kind":"internal","message":%q}}`, err.Error()))
	}
	return data
}

func decodeConvertRequest(data []byte) (ConvertRequest, error) {
	var req ConvertRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.InvalidFormatf("request: %v", err)
	}
	return req, nil
}

func decodeListRequest(data []byte) (ListRequest, error) {
	var req ListRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.InvalidFormatf("request: %v", err)
	}
	return req, nil
}

func (req ListRequest) passthrough() bool {
	if req.Passthrough == nil {
		return true
	}
	return *req.Passthrough
}

func (s *Service) handleExpand(data []byte) (any, error) {
	req, err := decodeConvertRequest(data)
	if err != nil {
		return nil, err
	}
	uri, err := s.converter.Expand(req.Input)
	if err != nil {
		return nil, err
	}
	return ConvertResponse{Output: uri}, nil
}

func (s *Service) handleCompress(data []byte) (any, error) {
	req, err := decodeConvertRequest(data)
	if err != nil {
		return nil, err
	}
	curie, err := s.converter.Compress(req.Input)
	if err != nil {
		return nil, err
	}
	return ConvertResponse{Output: curie}, nil
}

func (s *Service) handleExpandList(data []byte) (any, error) {
	req, err := decodeListRequest(data)
	if err != nil {
		return nil, err
	}
	return ListResponse{Outputs: s.converter.ExpandList(req.Inputs, req.passthrough())}, nil
}

func (s *Service) handleCompressList(data []byte) (any, error) {
	req, err := decodeListRequest(data)
	if err != nil {
		return nil, err
	}
	return ListResponse{Outputs: s.converter.CompressList(req.Inputs, req.passthrough())}, nil
}

func (s *Service) handleStandardizePrefix(data []byte) (any, error) {
	req, err := decodeConvertRequest(data)
	if err != nil {
		return nil, err
	}
	prefix, err := s.converter.StandardizePrefix(req.Input)
	if err != nil {
		return nil, err
	}
	return ConvertResponse{Output: prefix}, nil
}

func (s *Service) handleStandardizeCURIE(data []byte) (any, error) {
	req, err := decodeConvertRequest(data)
	if err != nil {
		return nil, err
	}
	curie, err := s.converter.StandardizeCURIE(req.Input)
	if err != nil {
		return nil, err
	}
	return ConvertResponse{Output: curie}, nil
}

func (s *Service) handleStandardizeURI(data []byte) (any, error) {
	req, err := decodeConvertRequest(data)
	if err != nil {
		return nil, err
	}
	uri, err := s.converter.StandardizeURI(req.Input)
	if err != nil {
		return nil, err
	}
	return ConvertResponse{Output: uri}, nil
}

func (s *Service) handlePrefixMap([]byte) (any, error) {
	return PrefixMapResponse{PrefixMap: s.converter.WritePrefixMap()}, nil
}
