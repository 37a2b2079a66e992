package points

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-sod/kdst/internal/geom"
	"github.com/go-sod/kdst/internal/httputil"
	"github.com/go-sod/kdst/internal/logging"
	"github.com/go-sod/kdst/internal/registry"
	"github.com/go-sod/kdst/pkg/container/symtab"
)

const maxBodyBytes = 64 * 1024 * 1024

type request struct {
	Data []struct {
		X     *float64        `json:"x"`
		Y     *float64        `json:"y"`
		Value json.RawMessage `json:"value"`
	} `json:"data"`
}

type putResponse struct {
	Status string `json:"status"`
	Size   int    `json:"size"`
}

type getResponse struct {
	Point geom.Point     `json:"point"`
	Entry registry.Entry `json:"entry"`
}

type listResponse struct {
	Size   int          `json:"size"`
	Points []geom.Point `json:"points"`
}

func NewHandler(cfg *Config, reg *registry.Registry) (http.Handler, error) {
	if reg == nil {
		return nil, fmt.Errorf("points handler requires a registry")
	}
	return &handler{
		registry: reg,
		cfg:      cfg,
	}, nil
}

type handler struct {
	registry *registry.Registry
	cfg      *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if r.Method == http.MethodGet {
		h.get(ctx, w, r)
		return
	}
	if !httputil.CheckJSONPost(ctx, w, r) {
		return
	}
	h.put(ctx, w, r)
}

func (h *handler) put(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req request
	logger := logging.FromContext(ctx)

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Data) > h.cfg.MaxDataItemsLen {
		httputil.RespBadRequest(ctx, w, `{"error": "data items is too large, max allowed len is %d"}`, h.cfg.MaxDataItemsLen)
		return
	}

	items := make([]registry.Item, len(req.Data))
	for i, dat := range req.Data {
		if dat.X == nil || dat.Y == nil {
			httputil.RespBadRequest(ctx, w, `{"error": "item %d: point requires x and y"}`, i)
			return
		}
		items[i] = registry.Item{Point: geom.NewPoint(*dat.X, *dat.Y), Value: dat.Value}
	}

	if err := h.registry.Put(ctx, items...); err != nil {
		if errors.Is(err, symtab.ErrInvalidArgument) {
			httputil.RespErr(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		httputil.RespInternalError(ctx, w, `{"error": "put error, %v"}`, err)
		return
	}
	logger.Debugf("stored %d points", len(items))
	httputil.RespJSON(ctx, w, http.StatusOK, putResponse{Status: "ok", Size: h.registry.Len()})
}

func (h *handler) get(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("x") == "" && query.Get("y") == "" {
		points := h.registry.Points()
		httputil.RespJSON(ctx, w, http.StatusOK, listResponse{Size: len(points), Points: points})
		return
	}

	x, err := strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		httputil.RespErr(ctx, w, http.StatusBadRequest, "invalid x: "+query.Get("x"))
		return
	}
	y, err := strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		httputil.RespErr(ctx, w, http.StatusBadRequest, "invalid y: "+query.Get("y"))
		return
	}
	p := geom.NewPoint(x, y)
	entry, ok, err := h.registry.Get(ctx, p)
	if err != nil {
		httputil.RespErr(ctx, w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		httputil.RespNotFound(ctx, w, `{"error": "point %s not found"}`, p)
		return
	}
	httputil.RespJSON(ctx, w, http.StatusOK, getResponse{Point: p, Entry: entry})
}
