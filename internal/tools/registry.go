// Package tools exposes catalog operations as named tools taking JSON
// arguments and returning a single JSON text payload.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"feedscout/internal/models"
)

var ErrUnknownTool = errors.New("unknown tool")

// Handler runs one tool call. The returned value is encoded as the result
// payload; a returned error is mapped with FromError.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// Info describes a registered tool.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry holds the tools available to one process. It is built once at
// startup and shared by the CLI and the HTTP server.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tool must have a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, Info{Name: t.Name, Description: t.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Call runs the named tool. Tool failures come back as error results, not Go
// errors; the only error returned is ErrUnknownTool.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()

	logger := log.WithFields(log.Fields{
		"call_id": uuid.NewString(),
		"tool":    name,
	})
	if !ok {
		logger.Warn("unknown tool requested")
		return ErrorResult(CodeUnknownTool, fmt.Sprintf("no tool named %q", name), nil), ErrUnknownTool
	}

	start := time.Now()
	logger.Debug("tool call started")

	var res Result
	v, err := t.Handler(ctx, args)
	if err == nil {
		res, err = JSONResult(v)
	}
	if err != nil {
		res = FromError(err)
		logger.WithError(err).Warn("tool call failed")
	}

	logger.WithFields(log.Fields{
		"duration": time.Since(start),
		"is_error": res.IsError,
	}).Info("tool call finished")
	return res, nil
}

// decodeArgs unmarshals a tool's argument object. Missing or null arguments
// leave dst untouched. Numbers decode as json.Number when dst holds any.
func decodeArgs(args json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid arguments: %v", models.ErrValidation, err)
	}
	return nil
}
