package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/httputil"
	"github.com/go-sod/kdst/internal/logging"
	"github.com/go-sod/kdst/internal/registry"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

const maxBodyBytes = 1024 * 1024

type rangeRequest struct {
	Rect *geom.Rect `json:"rect"`
}

type rangeResponse struct {
	Rect   geom.Rect    `json:"rect"`
	Points []geom.Point `json:"points"`
}

type nearestRequest struct {
	Data []struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"data"`
}

type nearestResponse struct {
	Data []registry.Neighbor `json:"data"`
}

func NewRangeHandler(cfg *Config, reg *registry.Registry) (http.Handler, error) {
	if reg == nil {
		return nil, fmt.Errorf("range handler requires a registry")
	}
	return &rangeHandler{cfg: cfg, registry: reg}, nil
}

type rangeHandler struct {
	registry *registry.Registry
	cfg      *Config
}

func (h *rangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rangeRequest
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if !httputil.CheckJSONPost(ctx, w, r) {
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}
	if req.Rect == nil {
		httputil.RespBadRequest(ctx, w, `{"error": "rect is required"}`)
		return
	}

	points, err := h.registry.Range(ctx, *req.Rect)
	if err != nil {
		respQueryErr(ctx, w, err)
		return
	}
	logging.FromContext(ctx).Debugf("range %s matched %d points", *req.Rect, len(points))
	httputil.RespJSON(ctx, w, http.StatusOK, rangeResponse{Rect: *req.Rect, Points: points})
}

func NewNearestHandler(cfg *Config, reg *registry.Registry) (http.Handler, error) {
	if reg == nil {
		return nil, fmt.Errorf("nearest handler requires a registry")
	}
	return &nearestHandler{cfg: cfg, registry: reg}, nil
}

type nearestHandler struct {
	registry *registry.Registry
	cfg      *Config
}

func (h *nearestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req nearestRequest
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if !httputil.CheckJSONPost(ctx, w, r) {
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Data) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	queries := make([]geom.Point, len(req.Data))
	for i, dat := range req.Data {
		if dat.X == nil || dat.Y == nil {
			httputil.RespBadRequest(ctx, w, `{"error": "item %d: point requires x and y"}`, i)
			return
		}
		queries[i] = geom.NewPoint(*dat.X, *dat.Y)
	}

	resp := nearestResponse{Data: make([]registry.Neighbor, len(queries))}
	errGrp, grpCtx := errgroup.WithContext(ctx)
	for i := range queries {
		i := i
		errGrp.Go(func() error {
			neighbor, err := h.registry.Nearest(grpCtx, queries[i])
			if err != nil {
				return fmt.Errorf("nearest to item %d: %w", i, err)
			}
			resp.Data[i] = neighbor
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		respQueryErr(ctx, w, err)
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, resp)
}

func respQueryErr(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, symtab.ErrInvalidArgument) {
		httputil.RespErr(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespInternalError(ctx, w, `{"error": "query processing error, %v"}`, err)
}
