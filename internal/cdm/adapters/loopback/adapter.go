// Package loopback is an in-process adapter without cryptography. It lets the
// daemon and tests drive the coordination layer end to end: license messages
// announce key statuses, and decrypt succeeds only for usable keys.
package loopback

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
)

// KeySystem is the key system name the loopback adapter serves.
const KeySystem = "org.ocdm.loopback"

var defaultTypes = []string{"video/mp4", "audio/mp4", "video/webm", "audio/webm"}

// Adapter implements ports.Adapter.
type Adapter struct {
	logger *slog.Logger
	types  []string

	mu   sync.RWMutex
	cert []byte
}

type Option func(*Adapter)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTypes replaces the supported container types.
func WithTypes(types ...string) Option {
	return func(a *Adapter) { a.types = types }
}

func New(opts ...Option) *Adapter {
	a := &Adapter{logger: slog.Default(), types: defaultTypes}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) KeySystem() string { return KeySystem }

func (a *Adapter) Metadata() string {
	raw, _ := json.Marshal(struct {
		KeySystem string   `json:"key_system"`
		Types     []string `json:"types"`
	}{KeySystem, a.types})
	return string(raw)
}

// IsTypeSupported accepts an empty type or one of the configured container
// types; codec parameters are ignored.
func (a *Adapter) IsTypeSupported(mimeType string) bool {
	if mimeType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return false
	}
	return slices.Contains(a.types, strings.ToLower(mediaType))
}

func (a *Adapter) SupportsServerCertificate() bool { return true }

func (a *Adapter) SetServerCertificate(_ context.Context, cert []byte) error {
	if len(cert) == 0 {
		return models.CodeInvalidArg
	}
	a.mu.Lock()
	a.cert = slices.Clone(cert)
	a.mu.Unlock()
	return nil
}

// Certificate returns the server certificate applied last, if any.
func (a *Adapter) Certificate() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.cert)
}

// CreateSession builds a session. Init data of type "keyids" announces its
// key ids as pending before the session is returned.
func (a *Adapter) CreateSession(_ context.Context, req models.SessionRequest, events ports.SessionEvents) (ports.AdapterSession, error) {
	if events == nil {
		return nil, models.CodeInvalidArg
	}
	var announced []models.KeyID
	if req.InitDataType == "keyids" && len(req.InitData) > 0 {
		ids, err := parseKeyIDs(req.InitData)
		if err != nil {
			return nil, err
		}
		announced = ids
	}

	id := uuid.NewString()
	s := &session{
		id:       id,
		bufferID: "loopback-" + id[:8],
		events:   events,
		logger:   a.logger,
	}
	for _, kid := range announced {
		s.report(kid, models.KeyStatusPending)
	}
	return s, nil
}

// parseKeyIDs decodes the W3C "keyids" init data format:
// {"kids":["<base64url>", ...]}.
func parseKeyIDs(data []byte) ([]models.KeyID, error) {
	var doc struct {
		KIDs []string `json:"kids"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode keyids init data: %w", models.CodeInvalidArg)
	}
	out := make([]models.KeyID, 0, len(doc.KIDs))
	for _, kid := range doc.KIDs {
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(kid, "="))
		if err != nil || len(raw) == 0 {
			return nil, fmt.Errorf("decode key id %q: %w", kid, models.CodeInvalidArg)
		}
		out = append(out, raw)
	}
	return out, nil
}
